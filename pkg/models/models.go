// Package models defines the canonical data structures shared across the application.
package models

import (
	"time"
)

// Well-known status values. These are only a baseline: the live set of
// statuses for a ticket is whatever single-select options exist on the
// target project's "Status" field.
const (
	StatusTodo       = "Todo"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
	StatusBacklog    = "Backlog"
)

// GhostAuthor is reported for comments whose author no longer exists,
// e.g. a deleted account.
const GhostAuthor = "ghost"

// MetadataNodeID is the metadata key holding the raw backend node ID.
const MetadataNodeID = "github_node_id"

// Ticket is the canonical representation of an issue. It is a transient
// read model: valid at the moment of return, never stored locally.
type Ticket struct {
	// ID is the opaque backend node ID. Immutable once assigned.
	ID string

	// Number is the human-facing sequence number, 0 until the backend
	// assigns one.
	Number int

	// Title is the ticket's title or summary.
	Title string

	// Body is the full description text.
	Body string

	// Status is the board status. Defaults to StatusTodo when the backend
	// reports none.
	Status string

	// Labels holds label names in insertion order.
	Labels []string

	// Assignees holds assigned usernames in insertion order.
	Assignees []string

	// Milestone is the title of the associated milestone, if any.
	Milestone string

	// Branch is an associated git branch name, if any.
	Branch string

	// PullRequests holds linked pull request URLs.
	PullRequests []string

	// Subtasks holds the IDs of linked subtask tickets.
	Subtasks []string

	// CreatedAt is the creation timestamp, nil when not reported.
	CreatedAt *time.Time

	// UpdatedAt is the last-update timestamp, nil when not reported.
	UpdatedAt *time.Time

	// URL is the canonical web URL of the ticket.
	URL string

	// Metadata holds backend-specific extras, at minimum MetadataNodeID.
	Metadata map[string]string
}

// Comment represents a comment on a ticket.
type Comment struct {
	// ID is the opaque backend comment ID.
	ID string

	// TicketID is the ID of the owning ticket.
	TicketID string

	// Author is the comment author's username, GhostAuthor when the
	// backend reports no author.
	Author string

	// Body is the comment text.
	Body string

	// CreatedAt is the creation timestamp, nil when not reported.
	CreatedAt *time.Time

	// UpdatedAt is the last-update timestamp, nil when not reported.
	UpdatedAt *time.Time

	// URL is the comment's web URL.
	URL string
}

// Label represents a repository label.
type Label struct {
	// ID is the opaque backend label ID.
	ID string

	// Name is the label name, unique within a repository.
	Name string

	// Description is the optional label description.
	Description string

	// Color is the label color as a hex code without the leading '#'.
	Color string
}

// Milestone represents a repository milestone. The title doubles as the
// external-facing identifier since backend milestone node IDs are not
// usable with the resource-oriented update endpoint.
type Milestone struct {
	// ID is the opaque backend milestone ID.
	ID string

	// Title is the milestone title.
	Title string

	// Description is the optional milestone description.
	Description string

	// State is the milestone state, lower-cased ("open" or "closed").
	State string

	// DueOn is the due date, nil when none is set.
	DueOn *time.Time

	// URL is the milestone's web URL.
	URL string
}
