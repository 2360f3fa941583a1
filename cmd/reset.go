package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Log out and clear the LLM event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.SessionRepo().ClearCurrentUser(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := s.ClearLLMEvents(ctx); err != nil {
			return fmt.Errorf("clear LLM events: %w", err)
		}
		fmt.Println("Session cleared and LLM event log emptied. User accounts are untouched.")
		return nil
	},
}
