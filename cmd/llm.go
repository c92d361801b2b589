package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect generation requests sent to the AI provider",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-14s  %-11s  %-28s  %7s  %7s  %7s  %s\n",
			"ID", "When", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))
		for _, e := range events {
			ok := "yes"
			if !e.Success {
				ok = "no"
			}
			fmt.Printf("%-5d  %-14s  %-11s  %-28s  %7s  %7s  %7d  %s\n",
				e.ID, humanize.Time(e.Timestamp), e.Purpose, truncate(e.Model, 28),
				humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens)), e.LatencyMs, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its prompt and the raw response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("request %d not found", id)
		}

		status := "ok"
		if !e.Success {
			status = "failed: " + e.ErrorMessage
		}
		for _, row := range [][2]string{
			{"Request", strconv.Itoa(e.ID)},
			{"When", e.Timestamp.Local().Format(time.DateTime) + " (" + humanize.Time(e.Timestamp) + ")"},
			{"Provider", e.Provider + " / " + e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%s in, %s out", humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens)))},
			{"Latency", (time.Duration(e.LatencyMs) * time.Millisecond).String()},
			{"Status", status},
		} {
			fmt.Printf("%-9s %s\n", row[0]+":", row[1])
		}

		section("Prompt", e.RequestBody)
		section("Response", e.ResponseBody)
		return nil
	},
}

// section prints a titled body, indenting JSON so schema replies are
// readable.
func section(title, body string) {
	fmt.Printf("\n── %s %s\n", title, strings.Repeat("─", max(56-len(title), 4)))
	if body == "" {
		fmt.Println("(not captured)")
		return
	}
	var buf bytes.Buffer
	if json.Valid([]byte(body)) && json.Indent(&buf, []byte(body), "", "  ") == nil {
		fmt.Println(buf.String())
		return
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		rule := strings.Repeat("─", 70)
		fmt.Printf("%-14s  %6s  %11s  %11s  %11s  %7s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
		fmt.Println(rule)
		var calls, in, out int
		for _, u := range byPurpose {
			fmt.Printf("%-14s  %6d  %11s  %11s  %11s  %7d\n", u.Purpose, u.Calls,
				humanize.Comma(int64(u.InputTokens)), humanize.Comma(int64(u.OutputTokens)),
				humanize.Comma(int64(u.InputTokens+u.OutputTokens)), u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		fmt.Println(rule)
		fmt.Printf("%-14s  %6d  %11s  %11s  %11s\n", "all", calls,
			humanize.Comma(int64(in)), humanize.Comma(int64(out)), humanize.Comma(int64(in+out)))

		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printCosts(byModel)
		return nil
	},
}

func printCosts(usage []store.ModelUsage) {
	if len(usage) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-32s  %6s  %10s\n", "Model", "Calls", "Est. USD")
	fmt.Println(strings.Repeat("─", 52))

	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := llm.LookupCost(u.Model)
		if cost == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		total += c
		fmt.Printf("%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatCost(c))
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s\n", label, "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Printf("\nNo price list for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return "$" + humanize.CommafWithDigits(usd, 2)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only one purpose (quiz, notes, flashcards, tutor, explain)")
	llmListCmd.Flags().Duration("since", 0, "Only requests newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
