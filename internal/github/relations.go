package github

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tickctl/tickctl/internal/tracker"
	"github.com/tickctl/tickctl/pkg/models"
)

// The backend stores no relationship edges, so parent/child, blocking and
// subtask links are emulated: both endpoints of the relationship are
// resolved, then one side receives a comment with a fixed sentence
// pattern. That comment is the only durable record. Existing repositories'
// comment history depends on these exact patterns; keep them stable.

// AddParent records a parent relationship on the child ticket.
func (c *Client) AddParent(ctx context.Context, ticketID, parentID string) (*models.Ticket, error) {
	if _, err := c.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	parent, err := c.GetTicket(ctx, parentID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Parent: #%d %s", parent.Number, parent.Title)
	if _, err := c.AddComment(ctx, ticketID, body); err != nil {
		return nil, err
	}

	return c.GetTicket(ctx, ticketID)
}

// AddBlockedBy marks a ticket as blocked by another ticket.
func (c *Client) AddBlockedBy(ctx context.Context, ticketID, blockingTicketID string) (*models.Ticket, error) {
	if _, err := c.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	blocker, err := c.GetTicket(ctx, blockingTicketID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Blocked by: #%d %s", blocker.Number, blocker.Title)
	if _, err := c.AddComment(ctx, ticketID, body); err != nil {
		return nil, err
	}

	return c.GetTicket(ctx, ticketID)
}

// AddBlocking marks a ticket as blocking another ticket.
func (c *Client) AddBlocking(ctx context.Context, ticketID, blockedTicketID string) (*models.Ticket, error) {
	if _, err := c.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	blocked, err := c.GetTicket(ctx, blockedTicketID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Blocking: #%d %s", blocked.Number, blocked.Title)
	if _, err := c.AddComment(ctx, ticketID, body); err != nil {
		return nil, err
	}

	return c.GetTicket(ctx, ticketID)
}

// AddSubtask links an existing ticket as a subtask of a parent. The
// subtask ID is also appended to the returned parent's subtask list; that
// list is ephemeral, only the comment persists.
func (c *Client) AddSubtask(ctx context.Context, parentID, subtaskID string) (*models.Ticket, error) {
	parent, err := c.GetTicket(ctx, parentID)
	if err != nil {
		return nil, err
	}
	subtask, err := c.GetTicket(ctx, subtaskID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Subtask: #%d %s", subtask.Number, subtask.Title)
	if _, err := c.AddComment(ctx, parentID, body); err != nil {
		return nil, err
	}

	parent.Subtasks = append(parent.Subtasks, subtaskID)
	return parent, nil
}

// CreateSubtask creates a new ticket already linked as a subtask of the
// parent: the body gets a "Part of #N" prefix line and the parent gets the
// subtask comment. The steps are not atomic; if linking fails after
// creation, the new ticket is left without a parent reference.
func (c *Client) CreateSubtask(ctx context.Context, parentID, title string, opts tracker.CreateOptions) (*models.Ticket, error) {
	parent, err := c.GetTicket(ctx, parentID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Part of #%d", parent.Number)
	if opts.Body != "" {
		body = body + "\n\n" + opts.Body
	}

	subtask, err := c.CreateTicket(ctx, title, tracker.CreateOptions{
		Body:   body,
		Labels: opts.Labels,
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.AddSubtask(ctx, parentID, strconv.Itoa(subtask.Number)); err != nil {
		return nil, err
	}

	return subtask, nil
}
