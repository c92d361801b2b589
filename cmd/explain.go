package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/config"
	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

var explainCmd = &cobra.Command{
	Use:   "explain <concept>",
	Short: "Explain a concept with everyday analogies",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := syllabus.ParseGrade(mustString(cmd, "grade"))
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo(), nil)
		if err != nil {
			return err
		}
		text, err := gateway.New(provider, gateway.DefaultConfig(), nil).
			ExplainConcept(cmd.Context(), strings.Join(args, " "), grade)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func init() {
	explainCmd.Flags().StringP("grade", "g", "10", "Grade 8 to 12")
}
