package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tickctl",
	Short: "tickctl manages tickets on a GitHub-backed task board",
	Long: `tickctl is a CLI for working with GitHub issues as tickets on a
Projects V2 board. It covers the ticket lifecycle (create, list, comment,
label, assign), board status, milestones, and the relations between
tickets (parent, blocked-by, blocking, subtasks).

Configuration comes from the environment: GITHUB_TOKEN, GITHUB_OWNER,
GITHUB_REPO, and optionally GITHUB_PROJECT_NUMBER.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A project number given here overrides GITHUB_PROJECT_NUMBER for
	// commands that touch the board.
	rootCmd.PersistentFlags().IntP("project", "p", 0, "Project board number (overrides GITHUB_PROJECT_NUMBER)")

	rootCmd.AddCommand(ticketCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(milestoneCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(subtaskCmd)
}
