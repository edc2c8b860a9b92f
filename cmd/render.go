package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/tickctl/tickctl/pkg/models"
)

// printTicket writes the full field-by-field view of a ticket.
func printTicket(ticket *models.Ticket) {
	fmt.Printf("#%d %s\n", ticket.Number, ticket.Title)
	fmt.Printf("  Status:    %s\n", ticket.Status)
	if len(ticket.Labels) > 0 {
		fmt.Printf("  Labels:    %s\n", strings.Join(ticket.Labels, ", "))
	}
	if len(ticket.Assignees) > 0 {
		fmt.Printf("  Assignees: %s\n", strings.Join(ticket.Assignees, ", "))
	}
	if ticket.Milestone != "" {
		fmt.Printf("  Milestone: %s\n", ticket.Milestone)
	}
	if ticket.Branch != "" {
		fmt.Printf("  Branch:    %s\n", ticket.Branch)
	}
	for _, pr := range ticket.PullRequests {
		fmt.Printf("  PR:        %s\n", pr)
	}
	for _, subtask := range ticket.Subtasks {
		fmt.Printf("  Subtask:   #%s\n", subtask)
	}
	if ticket.CreatedAt != nil {
		fmt.Printf("  Created:   %s\n", ticket.CreatedAt.Format(time.RFC3339))
	}
	if ticket.UpdatedAt != nil {
		fmt.Printf("  Updated:   %s\n", ticket.UpdatedAt.Format(time.RFC3339))
	}
	if ticket.URL != "" {
		fmt.Printf("  URL:       %s\n", ticket.URL)
	}
	if ticket.Body != "" {
		fmt.Println()
		fmt.Println(ticket.Body)
	}
}

// printTicketRow writes the one-line listing form of a ticket.
func printTicketRow(ticket *models.Ticket) {
	extras := ""
	if len(ticket.Labels) > 0 {
		extras = "  [" + strings.Join(ticket.Labels, ", ") + "]"
	}
	fmt.Printf("#%-5d %-12s %s%s\n", ticket.Number, ticket.Status, ticket.Title, extras)
}

func printComment(comment *models.Comment) {
	when := ""
	if comment.CreatedAt != nil {
		when = " on " + comment.CreatedAt.Format(time.RFC3339)
	}
	fmt.Printf("%s%s:\n%s\n", comment.Author, when, comment.Body)
}

func printLabel(label *models.Label) {
	if label.Description != "" {
		fmt.Printf("%-20s #%s  %s\n", label.Name, label.Color, label.Description)
		return
	}
	fmt.Printf("%-20s #%s\n", label.Name, label.Color)
}

func printMilestone(milestone *models.Milestone) {
	due := ""
	if milestone.DueOn != nil {
		due = "  due " + milestone.DueOn.Format("2006-01-02")
	}
	fmt.Printf("%-8s %s%s\n", milestone.State, milestone.Title, due)
}
