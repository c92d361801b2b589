package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/app"
	"github.com/zambezi-learn/zambezi/internal/config"
	"github.com/zambezi-learn/zambezi/internal/connectivity"
	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	log, err := logger.New(cfg.LogMode, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("open log %s: %w", cfg.LogPath(), err)
	}
	defer log.Sync()

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Saved materials work; generating new content will not.")
		log.Warn("llm provider unavailable", "error", err)
		provider = nil
	}

	monitor := connectivity.NewMonitor(cfg.Probe, nil, log)
	if err := monitor.Start(ctx); err != nil {
		return fmt.Errorf("start connectivity monitor: %w", err)
	}
	defer monitor.Stop()

	docs := st.DocumentRepo()
	state := session.New(session.Services{
		Accounts:  account.NewSessions(docs, log),
		Materials: material.NewDocumentStore(docs, log),
		Progress:  progress.NewRepo(docs, log),
		Gateway:   gateway.New(provider, gateway.DefaultConfig(), log),
		Monitor:   monitor,
		Log:       log,
	})
	state.Load(ctx)
	log.Info("starting", "db", cfg.DBPath, "online", state.Online, "model", state.Gateway.ModelID())

	return app.Run(state)
}
