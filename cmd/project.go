package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project board membership",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a ticket to the project board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectNumber, err := cmd.Flags().GetInt("project")
		if err != nil {
			return err
		}

		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddToProject(cmd.Context(), args[0], projectNumber)
		if err != nil {
			return err
		}

		logging.Info("added ticket to project", "ticket", ticket.Number)
		printTicket(ticket)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
}
