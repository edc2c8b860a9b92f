package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/pkg/models"
)

var assignCmd = &cobra.Command{
	Use:   "assign <id> [username]",
	Short: "Assign a ticket to a user, or to yourself when no username is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		var ticket *models.Ticket
		if len(args) == 2 {
			ticket, err = client.AssignTicket(cmd.Context(), args[0], args[1])
		} else {
			ticket, err = client.AssignToSelf(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		logging.Info("assigned ticket", "ticket", ticket.Number, "assignees", ticket.Assignees)
		printTicket(ticket)
		return nil
	},
}
