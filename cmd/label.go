package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Work with repository and ticket labels",
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the labels defined in the repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		labels, err := client.ListLabels(cmd.Context())
		if err != nil {
			return err
		}

		for _, label := range labels {
			printLabel(label)
		}
		return nil
	},
}

var labelShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "List the labels attached to a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		labels, err := client.TicketLabels(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, label := range labels {
			printLabel(label)
		}
		return nil
	},
}

var labelAddCmd = &cobra.Command{
	Use:   "add <id> <label-name>",
	Short: "Attach an existing repository label to a ticket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddLabel(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("added label", "ticket", ticket.Number, "label", args[1])
		printTicket(ticket)
		return nil
	},
}

func init() {
	labelCmd.AddCommand(labelListCmd)
	labelCmd.AddCommand(labelShowCmd)
	labelCmd.AddCommand(labelAddCmd)
}
