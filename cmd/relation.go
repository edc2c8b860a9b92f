package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/internal/tracker"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Record relations between tickets",
	Long: `Record a relation between two tickets.

Relations are kept as structured comments on the tickets involved, so
they survive as plain text even on plans without native issue relations.`,
}

var linkParentCmd = &cobra.Command{
	Use:   "parent <id> <parent-id>",
	Short: "Mark a ticket as the child of another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddParent(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("linked parent", "ticket", ticket.Number, "parent", args[1])
		printTicket(ticket)
		return nil
	},
}

var linkBlockedByCmd = &cobra.Command{
	Use:   "blocked-by <id> <blocker-id>",
	Short: "Mark a ticket as blocked by another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddBlockedBy(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("linked blocked-by", "ticket", ticket.Number, "blocker", args[1])
		printTicket(ticket)
		return nil
	},
}

var linkBlockingCmd = &cobra.Command{
	Use:   "blocking <id> <blocked-id>",
	Short: "Mark a ticket as blocking another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddBlocking(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("linked blocking", "ticket", ticket.Number, "blocked", args[1])
		printTicket(ticket)
		return nil
	},
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Link and create subtasks of a ticket",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <parent-id> <subtask-id>",
	Short: "Link an existing ticket as a subtask of another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		parent, err := client.AddSubtask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logging.Info("linked subtask", "parent", parent.Number, "subtask", args[1])
		printTicket(parent)
		return nil
	},
}

var subtaskCreateCmd = &cobra.Command{
	Use:   "create <parent-id> <title>",
	Short: "Create a new ticket and link it as a subtask",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := cmd.Flags().GetString("body")
		if err != nil {
			return err
		}
		labels, err := cmd.Flags().GetStringSlice("label")
		if err != nil {
			return err
		}

		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		subtask, err := client.CreateSubtask(cmd.Context(), args[0], args[1], tracker.CreateOptions{
			Body:   body,
			Labels: labels,
		})
		if err != nil {
			return err
		}

		logging.Info("created subtask", "parent", args[0], "subtask", subtask.Number)
		printTicket(subtask)
		return nil
	},
}

func init() {
	linkCmd.AddCommand(linkParentCmd)
	linkCmd.AddCommand(linkBlockedByCmd)
	linkCmd.AddCommand(linkBlockingCmd)

	subtaskCreateCmd.Flags().String("body", "", "Subtask description")
	subtaskCreateCmd.Flags().StringSlice("label", nil, "Label to attach (repeatable)")

	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskCreateCmd)
}
