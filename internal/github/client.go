// Package github implements the tracker.TaskManager contract against the
// GitHub API: the GraphQL endpoint for reads and most mutations, and the
// REST endpoint for issue creation and milestone assignment. Projects V2
// board state (status) only exists behind GraphQL.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/tickctl/tickctl/internal/config"
	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/internal/tracker"
	"github.com/tickctl/tickctl/pkg/models"
)

const (
	defaultGraphQLURL = "https://api.github.com/graphql"

	// requestTimeout bounds every remote call. There is no retry policy:
	// a timeout surfaces as a transport failure to the caller.
	requestTimeout = 30 * time.Second

	defaultPageSize = 50
	maxPageSize     = 100
)

// Client is the GitHub adapter. One instance is meant to be owned by a
// single logical session; see the cache notes in resolve.go.
type Client struct {
	owner         string
	repo          string
	projectNumber int

	httpClient *http.Client
	rest       *github.Client
	graphqlURL string

	// write-once identifier caches
	mu            sync.Mutex
	repoID        string
	projID        string
	statusFieldID string
	statusOptions []statusOption
}

var _ tracker.TaskManager = (*Client)(nil)

// NewClient creates a new GitHub adapter using configuration from
// environment variables. Both transports share one bearer-authenticated
// HTTP client with a fixed per-request timeout.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Info("github configuration",
		"owner", cfg.GitHub.Owner,
		"repo", cfg.GitHub.Repo,
		"project_number", cfg.GitHub.ProjectNumber,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.GitHub.Token},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = requestTimeout

	return &Client{
		owner:         cfg.GitHub.Owner,
		repo:          cfg.GitHub.Repo,
		projectNumber: cfg.GitHub.ProjectNumber,
		httpClient:    httpClient,
		rest:          github.NewClient(httpClient),
		graphqlURL:    defaultGraphQLURL,
	}, nil
}

// issueFields is the selection shared by every issue-shaped query.
const issueFields = `
id
number
title
body
createdAt
updatedAt
url
labels(first: 20) {
	nodes {
		name
	}
}
assignees(first: 10) {
	nodes {
		login
	}
}
milestone {
	title
}`

// isNumeric reports whether id consists only of digits, i.e. looks like a
// human-facing issue number rather than an opaque node ID.
func isNumeric(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// fetchIssue retrieves the raw issue payload for a ticket ID, dispatching
// to a number-based or node-ID-based lookup.
func (c *Client) fetchIssue(ctx context.Context, ticketID string) (*wireIssue, error) {
	var issue *wireIssue

	if isNumeric(ticketID) {
		number, err := strconv.Atoi(ticketID)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket number %q: %w", ticketID, err)
		}
		query := fmt.Sprintf(`
		query($owner: String!, $repo: String!, $number: Int!) {
			repository(owner: $owner, name: $repo) {
				issue(number: $number) {%s
				}
			}
		}`, issueFields)
		var resp struct {
			Repository struct {
				Issue *wireIssue `json:"issue"`
			} `json:"repository"`
		}
		vars := map[string]any{"owner": c.owner, "repo": c.repo, "number": number}
		if err := c.graphql(ctx, query, vars, &resp); err != nil {
			return nil, err
		}
		issue = resp.Repository.Issue
	} else {
		query := fmt.Sprintf(`
		query($id: ID!) {
			node(id: $id) {
				... on Issue {%s
				}
			}
		}`, issueFields)
		var resp struct {
			Node *wireIssue `json:"node"`
		}
		if err := c.graphql(ctx, query, map[string]any{"id": ticketID}, &resp); err != nil {
			return nil, err
		}
		issue = resp.Node
	}

	if issue == nil || issue.ID == "" {
		return nil, fmt.Errorf("ticket %q: %w", ticketID, tracker.ErrNotFound)
	}
	return issue, nil
}

// CreateTicket creates an issue through the resource-oriented endpoint,
// populating only the fields the caller supplied.
func (c *Client) CreateTicket(ctx context.Context, title string, opts tracker.CreateOptions) (*models.Ticket, error) {
	req := &github.IssueRequest{Title: github.String(title)}
	if opts.Body != "" {
		req.Body = github.String(opts.Body)
	}
	if len(opts.Labels) > 0 {
		labels := opts.Labels
		req.Labels = &labels
	}
	if opts.Assignee != "" {
		req.Assignee = github.String(opts.Assignee)
	}

	issue, _, err := c.rest.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		logging.Error("failed to create ticket", "title", title, "error", err)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	logging.Debug("created ticket", "number", issue.GetNumber(), "title", title)
	return ticketFromIssue(issue), nil
}

// buildSearchQuery translates a filter into the backend's search syntax by
// conjunction of terms. Any status value not recognized as done/closed
// selects open tickets: board status lives on the project, not in issue
// search.
func buildSearchQuery(owner, repo string, filter tracker.Filter) string {
	terms := []string{fmt.Sprintf("repo:%s/%s", owner, repo), "is:issue"}
	if filter.Status != "" {
		switch strings.ToLower(filter.Status) {
		case "done", "closed":
			terms = append(terms, "is:closed")
		default:
			terms = append(terms, "is:open")
		}
	}
	if filter.Assignee != "" {
		terms = append(terms, "assignee:"+filter.Assignee)
	}
	if filter.Label != "" {
		terms = append(terms, "label:"+filter.Label)
	}
	if filter.Milestone != "" {
		terms = append(terms, "milestone:"+filter.Milestone)
	}
	return strings.Join(terms, " ")
}

// ListTickets returns one bounded page of tickets matching the filter.
func (c *Client) ListTickets(ctx context.Context, filter tracker.Filter) ([]*models.Ticket, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	query := fmt.Sprintf(`
	query($query: String!, $limit: Int!) {
		search(query: $query, type: ISSUE, first: $limit) {
			nodes {
				... on Issue {%s
				}
			}
		}
	}`, issueFields)
	var resp struct {
		Search struct {
			Nodes []*wireIssue `json:"nodes"`
		} `json:"search"`
	}
	searchQuery := buildSearchQuery(c.owner, c.repo, filter)
	logging.Debug("listing tickets", "query", searchQuery, "limit", limit)

	vars := map[string]any{"query": searchQuery, "limit": limit}
	if err := c.graphql(ctx, query, vars, &resp); err != nil {
		return nil, err
	}

	tickets := make([]*models.Ticket, 0, len(resp.Search.Nodes))
	for _, issue := range resp.Search.Nodes {
		// Pull requests match type ISSUE too but decode with no node ID.
		if issue == nil || issue.ID == "" {
			continue
		}
		tickets = append(tickets, ticketFromWire(issue, nil))
	}
	return tickets, nil
}

// GetTicket fetches a single ticket by issue number or node ID.
func (c *Client) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	issue, err := c.fetchIssue(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return ticketFromWire(issue, nil), nil
}

// ListComments returns all comments on a ticket, one bounded page.
func (c *Client) ListComments(ctx context.Context, ticketID string) ([]*models.Comment, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Number == 0 {
		return nil, fmt.Errorf("could not determine issue number for ticket %q", ticketID)
	}

	query := `
	query($owner: String!, $repo: String!, $number: Int!) {
		repository(owner: $owner, name: $repo) {
			issue(number: $number) {
				id
				comments(first: 100) {
					nodes {
						id
						body
						author {
							login
						}
						createdAt
						updatedAt
						url
					}
				}
			}
		}
	}`
	var resp struct {
		Repository struct {
			Issue struct {
				Comments struct {
					Nodes []wireComment `json:"nodes"`
				} `json:"comments"`
			} `json:"issue"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": c.owner, "repo": c.repo, "number": ticket.Number}
	if err := c.graphql(ctx, query, vars, &resp); err != nil {
		return nil, err
	}

	nodes := resp.Repository.Issue.Comments.Nodes
	comments := make([]*models.Comment, 0, len(nodes))
	for i := range nodes {
		comments = append(comments, commentFromWire(&nodes[i], ticket.ID))
	}
	return comments, nil
}

// AddComment appends a comment to a ticket.
func (c *Client) AddComment(ctx context.Context, ticketID, body string) (*models.Comment, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	mutation := `
	mutation($subjectId: ID!, $body: String!, $clientMutationId: String) {
		addComment(input: {subjectId: $subjectId, body: $body, clientMutationId: $clientMutationId}) {
			commentEdge {
				node {
					id
					body
					author {
						login
					}
					createdAt
					updatedAt
					url
				}
			}
		}
	}`
	var resp struct {
		AddComment struct {
			CommentEdge struct {
				Node wireComment `json:"node"`
			} `json:"commentEdge"`
		} `json:"addComment"`
	}
	vars := map[string]any{"subjectId": ticket.ID, "body": body}
	if err := c.mutate(ctx, mutation, vars, &resp); err != nil {
		return nil, err
	}

	return commentFromWire(&resp.AddComment.CommentEdge.Node, ticket.ID), nil
}

// ListLabels returns the repository's labels, one bounded page.
func (c *Client) ListLabels(ctx context.Context) ([]*models.Label, error) {
	query := `
	query($owner: String!, $repo: String!) {
		repository(owner: $owner, name: $repo) {
			labels(first: 100) {
				nodes {
					id
					name
					description
					color
				}
			}
		}
	}`
	var resp struct {
		Repository struct {
			Labels struct {
				Nodes []struct {
					ID          string `json:"id"`
					Name        string `json:"name"`
					Description string `json:"description"`
					Color       string `json:"color"`
				} `json:"nodes"`
			} `json:"labels"`
		} `json:"repository"`
	}
	if err := c.graphql(ctx, query, map[string]any{"owner": c.owner, "repo": c.repo}, &resp); err != nil {
		return nil, err
	}

	labels := make([]*models.Label, 0, len(resp.Repository.Labels.Nodes))
	for _, node := range resp.Repository.Labels.Nodes {
		labels = append(labels, &models.Label{
			ID:          node.ID,
			Name:        node.Name,
			Description: node.Description,
			Color:       node.Color,
		})
	}
	return labels, nil
}

// TicketLabels returns the labels attached to a ticket, computed
// client-side as the intersection of the repository's label set with the
// ticket's own label names.
func (c *Client) TicketLabels(ctx context.Context, ticketID string) ([]*models.Label, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	all, err := c.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	onTicket := make(map[string]bool, len(ticket.Labels))
	for _, name := range ticket.Labels {
		onTicket[name] = true
	}

	labels := make([]*models.Label, 0, len(ticket.Labels))
	for _, label := range all {
		if onTicket[label.Name] {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// AddLabel attaches an existing label to a ticket by exact name and
// returns the refreshed ticket.
func (c *Client) AddLabel(ctx context.Context, ticketID, labelName string) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	labels, err := c.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	var labelID string
	for _, label := range labels {
		if label.Name == labelName {
			labelID = label.ID
			break
		}
	}
	if labelID == "" {
		return nil, fmt.Errorf("label %q: %w", labelName, tracker.ErrNotFound)
	}

	mutation := `
	mutation($labelableId: ID!, $labelIds: [ID!]!, $clientMutationId: String) {
		addLabelsToLabelable(input: {labelableId: $labelableId, labelIds: $labelIds, clientMutationId: $clientMutationId}) {
			clientMutationId
		}
	}`
	vars := map[string]any{"labelableId": ticket.ID, "labelIds": []string{labelID}}
	if err := c.mutate(ctx, mutation, vars, nil); err != nil {
		return nil, err
	}

	return c.GetTicket(ctx, ticketID)
}

// AddBranch records a branch name on the fetched ticket. The backend has
// no branch-link API: the association is ephemeral and exists only on the
// returned record.
func (c *Client) AddBranch(ctx context.Context, ticketID, branchName string) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Branch = branchName
	return ticket, nil
}

// AddPullRequest records a pull request URL on the fetched ticket.
// Ephemeral, like AddBranch; the durable link is the PR mentioning the
// issue.
func (c *Client) AddPullRequest(ctx context.Context, ticketID, prURL string) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.PullRequests = append(ticket.PullRequests, prURL)
	return ticket, nil
}

// AssignTicket assigns a ticket to the named user.
func (c *Client) AssignTicket(ctx context.Context, ticketID, assignee string) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	userQuery := `
	query($login: String!) {
		user(login: $login) {
			id
		}
	}`
	var userResp struct {
		User *struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := c.graphql(ctx, userQuery, map[string]any{"login": assignee}, &userResp); err != nil {
		return nil, err
	}
	if userResp.User == nil || userResp.User.ID == "" {
		return nil, fmt.Errorf("user %q: %w", assignee, tracker.ErrNotFound)
	}

	mutation := `
	mutation($assignableId: ID!, $assigneeIds: [ID!]!, $clientMutationId: String) {
		addAssigneesToAssignable(input: {assignableId: $assignableId, assigneeIds: $assigneeIds, clientMutationId: $clientMutationId}) {
			clientMutationId
		}
	}`
	vars := map[string]any{"assignableId": ticket.ID, "assigneeIds": []string{userResp.User.ID}}
	if err := c.mutate(ctx, mutation, vars, nil); err != nil {
		return nil, err
	}

	return c.GetTicket(ctx, ticketID)
}

// AssignToSelf assigns a ticket to the authenticated user.
func (c *Client) AssignToSelf(ctx context.Context, ticketID string) (*models.Ticket, error) {
	query := `
	query {
		viewer {
			login
		}
	}`
	var resp struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	if err := c.graphql(ctx, query, nil, &resp); err != nil {
		return nil, err
	}

	return c.AssignTicket(ctx, ticketID, resp.Viewer.Login)
}

// ListMilestones returns the repository's milestones, open and closed.
func (c *Client) ListMilestones(ctx context.Context) ([]*models.Milestone, error) {
	query := `
	query($owner: String!, $repo: String!) {
		repository(owner: $owner, name: $repo) {
			milestones(first: 100, states: [OPEN, CLOSED]) {
				nodes {
					id
					title
					description
					state
					dueOn
					url
				}
			}
		}
	}`
	var resp struct {
		Repository struct {
			Milestones struct {
				Nodes []struct {
					ID          string `json:"id"`
					Title       string `json:"title"`
					Description string `json:"description"`
					State       string `json:"state"`
					DueOn       string `json:"dueOn"`
					URL         string `json:"url"`
				} `json:"nodes"`
			} `json:"milestones"`
		} `json:"repository"`
	}
	if err := c.graphql(ctx, query, map[string]any{"owner": c.owner, "repo": c.repo}, &resp); err != nil {
		return nil, err
	}

	milestones := make([]*models.Milestone, 0, len(resp.Repository.Milestones.Nodes))
	for _, node := range resp.Repository.Milestones.Nodes {
		milestones = append(milestones, &models.Milestone{
			ID:          node.ID,
			Title:       node.Title,
			Description: node.Description,
			State:       strings.ToLower(node.State),
			DueOn:       parseTime(node.DueOn),
			URL:         node.URL,
		})
	}
	return milestones, nil
}

// SetMilestone puts a ticket into the milestone with the given title. The
// resource-oriented endpoint wants the milestone's sequence number, not
// its node ID, so the title is re-resolved through a REST listing.
func (c *Client) SetMilestone(ctx context.Context, ticketID, milestoneTitle string) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Number == 0 {
		return nil, fmt.Errorf("could not determine issue number for ticket %q", ticketID)
	}

	milestones, err := c.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, milestone := range milestones {
		if milestone.Title == milestoneTitle {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("milestone %q: %w", milestoneTitle, tracker.ErrNotFound)
	}

	listOpts := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: maxPageSize},
	}
	restMilestones, _, err := c.rest.Issues.ListMilestones(ctx, c.owner, c.repo, listOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	var number int
	for _, milestone := range restMilestones {
		if milestone.GetTitle() == milestoneTitle {
			number = milestone.GetNumber()
			break
		}
	}
	if number == 0 {
		return nil, fmt.Errorf("could not find milestone number for %q: %w", milestoneTitle, tracker.ErrNotFound)
	}

	req := &github.IssueRequest{Milestone: github.Int(number)}
	if _, _, err := c.rest.Issues.Edit(ctx, c.owner, c.repo, ticket.Number, req); err != nil {
		return nil, fmt.Errorf("failed to set milestone: %w", err)
	}

	return c.GetTicket(ctx, ticketID)
}

// AddToProject adds a ticket to the project board. Required before the
// ticket's board status can be updated.
func (c *Client) AddToProject(ctx context.Context, ticketID string, projectNumber int) (*models.Ticket, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	projectID, err := c.projectID(ctx, projectNumber)
	if err != nil {
		return nil, err
	}

	mutation := `
	mutation($projectId: ID!, $contentId: ID!, $clientMutationId: String) {
		addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId, clientMutationId: $clientMutationId}) {
			item {
				id
			}
		}
	}`
	vars := map[string]any{"projectId": projectID, "contentId": ticket.ID}
	if err := c.mutate(ctx, mutation, vars, nil); err != nil {
		return nil, fmt.Errorf("failed to add ticket to project: %w", err)
	}

	return c.GetTicket(ctx, ticketID)
}
