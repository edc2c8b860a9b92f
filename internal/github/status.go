package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/internal/tracker"
	"github.com/tickctl/tickctl/pkg/models"
)

// UpdateStatus moves a ticket to the named status option on the project
// board. The desired status is matched case-insensitively against the
// board's option names; the ticket must already be on the board.
//
// The steps are sequential remote calls with no rollback: once the field
// mutation lands, the remote state has changed even if the final re-fetch
// fails.
func (c *Client) UpdateStatus(ctx context.Context, ticketID, status string, projectNumber int) (*models.Ticket, error) {
	fieldID, options, err := c.statusField(ctx, projectNumber)
	if err != nil {
		return nil, err
	}

	var matched *statusOption
	for i := range options {
		if strings.EqualFold(options[i].Name, status) {
			matched = &options[i]
			break
		}
	}
	if matched == nil {
		names := make([]string, len(options))
		for i, option := range options {
			names[i] = option.Name
		}
		return nil, fmt.Errorf("status %q, available options: %s: %w",
			status, strings.Join(names, ", "), tracker.ErrNotFound)
	}

	itemID, err := c.projectItemID(ctx, ticketID, projectNumber)
	if err != nil {
		return nil, err
	}
	projectID, err := c.projectID(ctx, projectNumber)
	if err != nil {
		return nil, err
	}

	mutation := `
	mutation($projectId: ID!, $itemId: ID!, $fieldId: ID!, $optionId: String!, $clientMutationId: String) {
		updateProjectV2ItemFieldValue(input: {
			projectId: $projectId
			itemId: $itemId
			fieldId: $fieldId
			value: {singleSelectOptionId: $optionId}
			clientMutationId: $clientMutationId
		}) {
			projectV2Item {
				id
			}
		}
	}`
	vars := map[string]any{
		"projectId": projectID,
		"itemId":    itemID,
		"fieldId":   fieldID,
		"optionId":  matched.ID,
	}
	if err := c.mutate(ctx, mutation, vars, nil); err != nil {
		return nil, err
	}

	logging.Debug("updated ticket status", "ticket", ticketID, "status", matched.Name)

	// The plain fetch path does not surface board status, so patch the
	// returned record with the option name that was just applied.
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("status %q was applied but the refreshed ticket could not be fetched: %w",
			matched.Name, err)
	}
	ticket.Status = matched.Name
	return ticket, nil
}
