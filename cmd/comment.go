package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickctl/tickctl/internal/github"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write ticket comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list <id>",
	Short: "List the comments on a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		comments, err := client.ListComments(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for i, comment := range comments {
			if i > 0 {
				fmt.Println()
			}
			printComment(comment)
		}
		return nil
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <id> <body>",
	Short: "Add a comment to a ticket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		comment, err := client.AddComment(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		printComment(comment)
		return nil
	},
}

func init() {
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
}
