package github

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/go-github/v41/github"

	"github.com/tickctl/tickctl/pkg/models"
)

// The two backend endpoints emit two different shapes for the same logical
// entity: the structured query endpoint nests sub-collections in connection
// objects ({"nodes": [...]}), the resource-oriented endpoint emits flat
// lists. Each sub-collection is decoded shape-by-shape since the two
// endpoints are not necessarily used together consistently.

// stringID decodes a node identifier that may arrive as a GraphQL string
// ID or as a numeric REST database ID.
type stringID string

func (s *stringID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = stringID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = stringID(n.String())
	return nil
}

// decodeNameList decodes either collection shape into the ordered list of
// values found under key in each element.
func decodeNameList(data []byte, key string) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var elements []json.RawMessage
	if data[0] == '{' {
		var conn struct {
			Nodes []json.RawMessage `json:"nodes"`
		}
		if err := json.Unmarshal(data, &conn); err != nil {
			return nil, err
		}
		elements = conn.Nodes
	} else {
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(elements))
	for _, element := range elements {
		var fields map[string]any
		if err := json.Unmarshal(element, &fields); err != nil {
			return nil, err
		}
		if name, ok := fields[key].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// labelList holds label names from either collection shape.
type labelList []string

func (l *labelList) UnmarshalJSON(data []byte) error {
	names, err := decodeNameList(data, "name")
	if err != nil {
		return err
	}
	*l = names
	return nil
}

// userList holds user logins from either collection shape.
type userList []string

func (u *userList) UnmarshalJSON(data []byte) error {
	logins, err := decodeNameList(data, "login")
	if err != nil {
		return err
	}
	*u = logins
	return nil
}

// wireIssue is the issue-like payload shared by both endpoints.
type wireIssue struct {
	ID        stringID  `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
	URL       string    `json:"url"`
	Labels    labelList `json:"labels"`
	Assignees userList  `json:"assignees"`
	Milestone *struct {
		Title string `json:"title"`
	} `json:"milestone"`
}

// wireProjectItem is a ticket's membership record on a project board,
// carrying the board's custom field values.
type wireProjectItem struct {
	ID      string `json:"id"`
	Content struct {
		ID     stringID `json:"id"`
		Number int      `json:"number"`
	} `json:"content"`
	FieldValues struct {
		Nodes []struct {
			Typename string `json:"__typename"`
			Name     string `json:"name"`
		} `json:"nodes"`
	} `json:"fieldValues"`
}

// wireComment is a comment payload from the structured endpoint.
type wireComment struct {
	ID     string `json:"id"`
	Body   string `json:"body"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	URL       string `json:"url"`
}

// parseTime parses the wire timestamp format (UTC, "Z" suffix). Absent or
// malformed values yield nil rather than a sentinel date.
func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

// ticketFromWire normalizes an issue payload, optionally combined with its
// project item, into a canonical Ticket. Status comes from the first
// single-select field value on the project item; without one the ticket
// sits at the baseline status.
func ticketFromWire(issue *wireIssue, item *wireProjectItem) *models.Ticket {
	status := models.StatusTodo
	if item != nil {
		for _, fv := range item.FieldValues.Nodes {
			if fv.Typename == "ProjectV2ItemFieldSingleSelectValue" {
				if fv.Name != "" {
					status = fv.Name
				}
				break
			}
		}
	}

	ticket := &models.Ticket{
		ID:        string(issue.ID),
		Number:    issue.Number,
		Title:     issue.Title,
		Body:      issue.Body,
		Status:    status,
		Labels:    []string(issue.Labels),
		Assignees: []string(issue.Assignees),
		CreatedAt: parseTime(issue.CreatedAt),
		UpdatedAt: parseTime(issue.UpdatedAt),
		URL:       issue.URL,
		Metadata:  map[string]string{models.MetadataNodeID: string(issue.ID)},
	}
	if issue.Milestone != nil {
		ticket.Milestone = issue.Milestone.Title
	}
	return ticket
}

// ticketFromIssue normalizes a typed response from the resource-oriented
// endpoint into a canonical Ticket.
func ticketFromIssue(issue *github.Issue) *models.Ticket {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	assignees := make([]string, 0, len(issue.Assignees))
	for _, assignee := range issue.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	ticket := &models.Ticket{
		ID:        issue.GetNodeID(),
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		Status:    models.StatusTodo,
		Labels:    labels,
		Assignees: assignees,
		URL:       issue.GetHTMLURL(),
		Metadata:  map[string]string{models.MetadataNodeID: issue.GetNodeID()},
	}
	if issue.Milestone != nil {
		ticket.Milestone = issue.Milestone.GetTitle()
	}
	if issue.CreatedAt != nil {
		created := *issue.CreatedAt
		ticket.CreatedAt = &created
	}
	if issue.UpdatedAt != nil {
		updated := *issue.UpdatedAt
		ticket.UpdatedAt = &updated
	}
	return ticket
}

// commentFromWire normalizes a comment payload. A missing author, e.g. a
// deleted account, becomes the ghost identity.
func commentFromWire(comment *wireComment, ticketID string) *models.Comment {
	author := models.GhostAuthor
	if comment.Author != nil && comment.Author.Login != "" {
		author = comment.Author.Login
	}
	return &models.Comment{
		ID:        comment.ID,
		TicketID:  ticketID,
		Author:    author,
		Body:      comment.Body,
		CreatedAt: parseTime(comment.CreatedAt),
		UpdatedAt: parseTime(comment.UpdatedAt),
		URL:       comment.URL,
	}
}
