package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "List milestones and set them on tickets",
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the repository's milestones, open and closed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		milestones, err := client.ListMilestones(cmd.Context())
		if err != nil {
			return err
		}

		for _, milestone := range milestones {
			printMilestone(milestone)
		}
		return nil
	},
}

var milestoneSetCmd = &cobra.Command{
	Use:   "set <id> <title>",
	Short: "Put a ticket in a milestone by title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.SetMilestone(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("set milestone", "ticket", ticket.Number, "milestone", ticket.Milestone)
		printTicket(ticket)
		return nil
	},
}

func init() {
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneSetCmd)
}
