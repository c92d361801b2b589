package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/store"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

var materialsCmd = &cobra.Command{
	Use:     "materials",
	Aliases: []string{"downloads"},
	Short:   "Manage saved study materials",
}

func openMaterials(cmd *cobra.Command) (*store.Store, *material.DocumentStore, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New("prod")
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, material.NewDocumentStore(st.DocumentRepo(), log), nil
}

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved materials, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ms, err := openMaterials(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		kind, _ := cmd.Flags().GetString("type")
		items := ms.List(context.Background())
		if len(items) == 0 {
			fmt.Println("No downloads yet.")
			return nil
		}

		fmt.Printf("%-36s  %-10s  %-20s  %-5s  %-14s  %s\n", "ID", "Type", "Subject", "Grade", "Saved", "Title")
		fmt.Println(strings.Repeat("─", 110))
		for _, m := range items {
			if kind != "" && string(m.Kind) != kind {
				continue
			}
			fmt.Printf("%-36s  %-10s  %-20s  %-5d  %-14s  %s\n",
				m.ID, m.Kind, truncate(m.SubjectName, 20), int(m.Grade), humanize.Time(m.Timestamp), m.Title)
		}
		return nil
	},
}

var materialsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ms, err := openMaterials(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		m, ok := ms.Get(ctx, args[0])
		if !ok {
			return fmt.Errorf("material %s not found", args[0])
		}
		if err := ms.Delete(ctx, m.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q.\n", m.Title)
		return nil
	},
}

var materialsImportCmd = &cobra.Command{
	Use:   "import <file.pdf>",
	Short: "Save a PDF past paper under a syllabus topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectID, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		gradeFlag, _ := cmd.Flags().GetString("grade")

		subject, ok := syllabus.SubjectByID(subjectID)
		if !ok {
			return fmt.Errorf("unknown subject %q (one of %s)", subjectID, strings.Join(syllabus.SubjectIDs(), ", "))
		}
		if !subject.HasTopic(topic) {
			return fmt.Errorf("%s has no topic %q", subject.Name, topic)
		}
		grade, err := syllabus.ParseGrade(gradeFlag)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, ms, err := openMaterials(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		m, err := material.ImportPDF(context.Background(), ms, args[0], f, material.Classification{
			SubjectID: subject.ID, SubjectName: subject.Name, Topic: topic, Grade: grade,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Imported %s as %s.\n", m.Title, m.ID)
		return nil
	},
}

var materialsExportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export saved quizzes, flashcards and notes to a workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "zambezi-downloads.xlsx"
		if len(args) == 1 {
			path = args[0]
		}

		st, ms, err := openMaterials(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		sum, err := material.ExportWorkbook(ms.List(context.Background()), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s: %d questions, %d cards, %d notes", path, sum.Questions, sum.Cards, sum.Notes)
		if sum.Skipped > 0 {
			fmt.Printf(" (%d PDFs skipped)", sum.Skipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	materialsListCmd.Flags().StringP("type", "t", "", "Only show one type (quiz, note, flashcard, pdf)")

	materialsImportCmd.Flags().StringP("subject", "s", "", "Subject id, e.g. math")
	materialsImportCmd.Flags().String("topic", "", "Topic name, e.g. Sets")
	materialsImportCmd.Flags().StringP("grade", "g", "10", "Grade 8 to 12")
	_ = materialsImportCmd.MarkFlagRequired("subject")
	_ = materialsImportCmd.MarkFlagRequired("topic")

	materialsCmd.AddCommand(materialsListCmd)
	materialsCmd.AddCommand(materialsDeleteCmd)
	materialsCmd.AddCommand(materialsImportCmd)
	materialsCmd.AddCommand(materialsExportCmd)
}
