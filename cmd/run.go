package cmd

import (
	"fmt"
	"os"

	"github.com/lernkraft/lernkraft/internal/app"
	"github.com/lernkraft/lernkraft/internal/llm"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// A missing provider is not fatal: the tutor service degrades to
	// its fallback content and the rest of the app keeps working.
	var provider llm.Provider
	p, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The AI tutor will answer with offline fallbacks.")
	} else {
		provider = p
	}

	opts := app.Options{
		Users:   st.UserRepo(),
		Session: st.SessionRepo(),
		Tutor:   tutor.NewService(provider, tutor.DefaultConfig()),
	}
	return app.Run(opts)
}
