package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/internal/tracker"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Create, list and inspect tickets",
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := cmd.Flags().GetString("body")
		if err != nil {
			return err
		}
		labels, err := cmd.Flags().GetStringSlice("label")
		if err != nil {
			return err
		}
		assignee, err := cmd.Flags().GetString("assignee")
		if err != nil {
			return err
		}

		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.CreateTicket(cmd.Context(), args[0], tracker.CreateOptions{
			Body:     body,
			Labels:   labels,
			Assignee: assignee,
		})
		if err != nil {
			return err
		}

		logging.Info("created ticket", "number", ticket.Number)
		printTicket(ticket)
		return nil
	},
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets matching a filter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter tracker.Filter
		var err error
		if filter.Status, err = cmd.Flags().GetString("status"); err != nil {
			return err
		}
		if filter.Assignee, err = cmd.Flags().GetString("assignee"); err != nil {
			return err
		}
		if filter.Label, err = cmd.Flags().GetString("label"); err != nil {
			return err
		}
		if filter.Milestone, err = cmd.Flags().GetString("milestone"); err != nil {
			return err
		}
		if filter.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
			return err
		}

		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		tickets, err := client.ListTickets(cmd.Context(), filter)
		if err != nil {
			return err
		}

		for _, ticket := range tickets {
			printTicketRow(ticket)
		}
		return nil
	},
}

var ticketGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a ticket by number or node ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.GetTicket(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printTicket(ticket)
		return nil
	},
}

var ticketBranchCmd = &cobra.Command{
	Use:   "branch <id> <branch-name>",
	Short: "Attach a branch name to a ticket for this invocation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddBranch(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		printTicket(ticket)
		return nil
	},
}

var ticketPRCmd = &cobra.Command{
	Use:   "pr <id> <pull-request-url>",
	Short: "Attach a pull request URL to a ticket for this invocation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		ticket, err := client.AddPullRequest(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		printTicket(ticket)
		return nil
	},
}

func init() {
	ticketCreateCmd.Flags().String("body", "", "Ticket description")
	ticketCreateCmd.Flags().StringSlice("label", nil, "Label to attach (repeatable)")
	ticketCreateCmd.Flags().String("assignee", "", "Username to assign")

	ticketListCmd.Flags().String("status", "", "Filter by status (done/closed select closed tickets)")
	ticketListCmd.Flags().String("assignee", "", "Filter by assignee")
	ticketListCmd.Flags().String("label", "", "Filter by label")
	ticketListCmd.Flags().String("milestone", "", "Filter by milestone title")
	ticketListCmd.Flags().Int("limit", 0, "Maximum number of results")

	ticketCmd.AddCommand(ticketCreateCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketGetCmd)
	ticketCmd.AddCommand(ticketBranchCmd)
	ticketCmd.AddCommand(ticketPRCmd)
}
