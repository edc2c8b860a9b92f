package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move a ticket to a board status",
	Long: `Move a ticket to another status column on the project board.

The status is matched case-insensitively against the board's status
options, so "done" and "Done" select the same column. The ticket must
already be on the board; add it with 'tickctl project add' first.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectNumber, err := cmd.Flags().GetInt("project")
		if err != nil {
			return err
		}

		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.UpdateStatus(cmd.Context(), args[0], args[1], projectNumber)
		if err != nil {
			return err
		}

		logging.Info("updated status", "ticket", ticket.Number, "status", ticket.Status)
		printTicket(ticket)
		return nil
	},
}
