package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the learner's quiz statistics and subject mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		docs := st.DocumentRepo()
		p, err := progress.NewRepo(docs, nil).Load(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		u, err := account.NewSessions(docs, nil).Current(ctx)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u != nil {
			fmt.Printf("Learner:   %s (%s)\n", u.DisplayName(), u.PhoneNumber)
		} else {
			fmt.Println("Learner:   not signed in")
		}
		fmt.Printf("Grade:     %d\n", int(p.Grade))
		fmt.Printf("Quizzes:   %d\n", p.CompletedQuizzes)
		fmt.Printf("Average:   %d%%\n", p.AverageScore)
		fmt.Printf("Streak:    %d days\n", p.StreakDays)
		fmt.Printf("Overall:   %d%%\n", p.OverallMastery())

		fmt.Println()
		fmt.Printf("%-22s  %s\n", "Subject", "Mastery")
		fmt.Println(strings.Repeat("─", 50))
		for _, s := range syllabus.Subjects() {
			m := p.Mastery(s.ID)
			fmt.Printf("%-22s  %3d%%  %s\n", s.Name, m, strings.Repeat("█", m/5))
		}
		return nil
	},
}
