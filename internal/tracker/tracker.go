// Package tracker defines the capability contract for task tracking backends.
//
// Every backend adapter implements TaskManager; callers depend only on this
// interface and the canonical models, so a different issue tracker can be
// plugged in without touching them. Only the GitHub adapter exists today.
package tracker

import (
	"context"
	"errors"

	"github.com/tickctl/tickctl/pkg/models"
)

// ErrNotFound reports that a requested entity (ticket, label, milestone,
// project, status option, project membership) does not exist or is not
// reachable with the current scope. Wrapped errors carry a human-readable
// hint of what was searched; match with errors.Is.
var ErrNotFound = errors.New("not found")

// Filter narrows a ticket listing. Zero values mean "no constraint".
type Filter struct {
	// Status filters by board status. Any value recognized as done/closed
	// (case-insensitively) selects closed tickets; any other non-empty
	// value selects open tickets. Custom board statuses are not matched
	// in this query path since board status lives on the project, not on
	// the issue itself.
	Status string

	// Assignee filters by assignee username.
	Assignee string

	// Label filters by label name.
	Label string

	// Milestone filters by milestone title.
	Milestone string

	// Limit caps the number of results. Zero means the default page size;
	// values above the backend page maximum are clamped.
	Limit int
}

// CreateOptions holds the optional attributes of a new ticket.
type CreateOptions struct {
	Body     string
	Labels   []string
	Assignee string
}

// TaskManager is the contract every ticket tracking backend implements.
//
// All operations are synchronous round trips against the remote backend.
// Compound operations perform several dependent round trips with no
// cross-call atomicity: a later step failing can leave remote state
// half-applied, and callers reconcile by re-invoking.
type TaskManager interface {
	// CreateTicket creates a new ticket with the given title.
	CreateTicket(ctx context.Context, title string, opts CreateOptions) (*models.Ticket, error)

	// ListTickets returns up to one page of tickets matching the filter.
	ListTickets(ctx context.Context, filter Filter) ([]*models.Ticket, error)

	// GetTicket fetches a single ticket. The id may be either a
	// human-facing issue number or an opaque backend node ID.
	GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error)

	// ListComments returns all comments on a ticket.
	ListComments(ctx context.Context, ticketID string) ([]*models.Comment, error)

	// AddComment appends a comment to a ticket.
	AddComment(ctx context.Context, ticketID, body string) (*models.Comment, error)

	// ListLabels returns the labels available in the repository.
	ListLabels(ctx context.Context) ([]*models.Label, error)

	// TicketLabels returns the labels attached to a ticket.
	TicketLabels(ctx context.Context, ticketID string) ([]*models.Label, error)

	// AddLabel attaches an existing label to a ticket by name and returns
	// the refreshed ticket.
	AddLabel(ctx context.Context, ticketID, labelName string) (*models.Ticket, error)

	// UpdateStatus moves a ticket to the named status option on the
	// project board. The ticket must already be on the board. The match
	// against option names is case-insensitive; the returned ticket
	// carries the option's canonical display name.
	UpdateStatus(ctx context.Context, ticketID, status string, projectNumber int) (*models.Ticket, error)

	// AddBranch records a branch name on the fetched ticket. The link is
	// ephemeral: the backend has no branch-link API, so nothing is
	// written remotely.
	AddBranch(ctx context.Context, ticketID, branchName string) (*models.Ticket, error)

	// AddPullRequest records a pull request URL on the fetched ticket.
	// Ephemeral, like AddBranch.
	AddPullRequest(ctx context.Context, ticketID, prURL string) (*models.Ticket, error)

	// AddSubtask links an existing ticket as a subtask of a parent and
	// returns the parent.
	AddSubtask(ctx context.Context, parentID, subtaskID string) (*models.Ticket, error)

	// CreateSubtask creates a new ticket already linked as a subtask of
	// the parent and returns the new ticket.
	CreateSubtask(ctx context.Context, parentID, title string, opts CreateOptions) (*models.Ticket, error)

	// AssignTicket assigns a ticket to the named user.
	AssignTicket(ctx context.Context, ticketID, assignee string) (*models.Ticket, error)

	// AssignToSelf assigns a ticket to the authenticated user.
	AssignToSelf(ctx context.Context, ticketID string) (*models.Ticket, error)

	// ListMilestones returns the repository's milestones, open and closed.
	ListMilestones(ctx context.Context) ([]*models.Milestone, error)

	// SetMilestone puts a ticket into the milestone with the given title.
	SetMilestone(ctx context.Context, ticketID, milestoneTitle string) (*models.Ticket, error)

	// AddToProject adds a ticket to the project board.
	AddToProject(ctx context.Context, ticketID string, projectNumber int) (*models.Ticket, error)

	// AddParent records a parent relationship on the child ticket.
	AddParent(ctx context.Context, ticketID, parentID string) (*models.Ticket, error)

	// AddBlockedBy marks a ticket as blocked by another ticket.
	AddBlockedBy(ctx context.Context, ticketID, blockingTicketID string) (*models.Ticket, error)

	// AddBlocking marks a ticket as blocking another ticket.
	AddBlocking(ctx context.Context, ticketID, blockedTicketID string) (*models.Ticket, error)
}
