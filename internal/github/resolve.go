package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/tickctl/tickctl/internal/logging"
	"github.com/tickctl/tickctl/internal/tracker"
)

// Identifier resolution maps convenient external handles (owner/repo,
// project number, status name) onto the opaque node IDs every mutation
// needs. Resolved IDs are cached write-once on the client instance; the
// mutex only guards the cache fields, so two callers racing on a cold
// cache may both resolve, with the last write winning.

// statusOption is one user-configured value of the project's single-select
// status field.
type statusOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// repositoryID resolves the configured repository's node ID, once per
// client lifetime.
func (c *Client) repositoryID(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.repoID != "" {
		id := c.repoID
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	query := `
	query($owner: String!, $repo: String!) {
		repository(owner: $owner, name: $repo) {
			id
		}
	}`
	var resp struct {
		Repository *struct {
			ID string `json:"id"`
		} `json:"repository"`
	}
	if err := c.graphql(ctx, query, map[string]any{"owner": c.owner, "repo": c.repo}, &resp); err != nil {
		return "", fmt.Errorf("failed to resolve repository id: %w", err)
	}
	if resp.Repository == nil || resp.Repository.ID == "" {
		return "", fmt.Errorf("repository %s/%s: %w", c.owner, c.repo, tracker.ErrNotFound)
	}

	c.mu.Lock()
	c.repoID = resp.Repository.ID
	c.mu.Unlock()
	return resp.Repository.ID, nil
}

const (
	repoProjectQuery = `
	query($owner: String!, $repo: String!, $number: Int!) {
		repository(owner: $owner, name: $repo) {
			projectV2(number: $number) {
				id
			}
		}
	}`
	userProjectQuery = `
	query($owner: String!, $number: Int!) {
		user(login: $owner) {
			projectV2(number: $number) {
				id
			}
		}
	}`
	orgProjectQuery = `
	query($owner: String!, $number: Int!) {
		organization(login: $owner) {
			projectV2(number: $number) {
				id
			}
		}
	}`
)

// projectID resolves a project board's node ID, trying the project scoped
// to the repository, then the owner as a user, then the owner as an
// organization. A scope answering with a graphql error list means "not
// this scope" and is swallowed; transport failures are not.
//
// The resolved ID is cached for the client's lifetime, and a cache hit
// ignores the requested project number. A client instance therefore only
// ever addresses the first project it resolved.
func (c *Client) projectID(ctx context.Context, projectNumber int) (string, error) {
	c.mu.Lock()
	if c.projID != "" {
		id := c.projID
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	number := projectNumber
	if number == 0 {
		number = c.projectNumber
	}
	if number == 0 {
		return "", errors.New("project number not specified")
	}

	scopes := []struct {
		name  string
		query string
		vars  map[string]any
	}{
		{"repository", repoProjectQuery, map[string]any{"owner": c.owner, "repo": c.repo, "number": number}},
		{"user", userProjectQuery, map[string]any{"owner": c.owner, "number": number}},
		{"organization", orgProjectQuery, map[string]any{"owner": c.owner, "number": number}},
	}

	for _, scope := range scopes {
		var resp map[string]*struct {
			ProjectV2 *struct {
				ID string `json:"id"`
			} `json:"projectV2"`
		}
		err := c.graphql(ctx, scope.query, scope.vars, &resp)
		if err != nil {
			var gqlErr *GraphQLError
			if errors.As(err, &gqlErr) {
				logging.Debug("project not found in scope, trying next",
					"scope", scope.name, "project_number", number)
				continue
			}
			return "", err
		}

		owner := resp[scope.name]
		if owner == nil || owner.ProjectV2 == nil {
			continue
		}

		c.mu.Lock()
		c.projID = owner.ProjectV2.ID
		c.mu.Unlock()
		return owner.ProjectV2.ID, nil
	}

	return "", fmt.Errorf("project %d not found in repository %s/%s, user %s, or organization %s: %w",
		number, c.owner, c.repo, c.owner, c.owner, tracker.ErrNotFound)
}

// statusField resolves the project's "Status" single-select field: its ID
// and the ordered set of options it offers. The field name match is exact
// and case-sensitive.
func (c *Client) statusField(ctx context.Context, projectNumber int) (string, []statusOption, error) {
	c.mu.Lock()
	if c.statusFieldID != "" {
		id, options := c.statusFieldID, c.statusOptions
		c.mu.Unlock()
		return id, options, nil
	}
	c.mu.Unlock()

	projectID, err := c.projectID(ctx, projectNumber)
	if err != nil {
		return "", nil, err
	}

	query := `
	query($projectId: ID!) {
		node(id: $projectId) {
			... on ProjectV2 {
				fields(first: 20) {
					nodes {
						... on ProjectV2SingleSelectField {
							id
							name
							options {
								id
								name
							}
						}
					}
				}
			}
		}
	}`
	var resp struct {
		Node struct {
			Fields struct {
				Nodes []struct {
					ID      string         `json:"id"`
					Name    string         `json:"name"`
					Options []statusOption `json:"options"`
				} `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}
	if err := c.graphql(ctx, query, map[string]any{"projectId": projectID}, &resp); err != nil {
		return "", nil, fmt.Errorf("failed to fetch project fields: %w", err)
	}

	for _, field := range resp.Node.Fields.Nodes {
		if field.Name == "Status" {
			c.mu.Lock()
			c.statusFieldID = field.ID
			c.statusOptions = field.Options
			c.mu.Unlock()
			return field.ID, field.Options, nil
		}
	}

	return "", nil, fmt.Errorf("project has no field named %q: %w", "Status", tracker.ErrNotFound)
}

// projectItemID finds the membership record linking a ticket to the
// project board, scanning one bounded page of board items. Status updates
// require the ticket to already be on the board.
func (c *Client) projectItemID(ctx context.Context, ticketID string, projectNumber int) (string, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return "", err
	}
	projectID, err := c.projectID(ctx, projectNumber)
	if err != nil {
		return "", err
	}

	query := `
	query($projectId: ID!) {
		node(id: $projectId) {
			... on ProjectV2 {
				items(first: 100) {
					nodes {
						id
						content {
							... on Issue {
								id
								number
							}
						}
					}
				}
			}
		}
	}`
	var resp struct {
		Node struct {
			Items struct {
				Nodes []wireProjectItem `json:"nodes"`
			} `json:"items"`
		} `json:"node"`
	}
	if err := c.graphql(ctx, query, map[string]any{"projectId": projectID}, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch project items: %w", err)
	}

	for _, item := range resp.Node.Items.Nodes {
		if string(item.Content.ID) == ticket.ID {
			return item.ID, nil
		}
	}

	return "", fmt.Errorf("ticket #%d is not on the project board, add it with AddToProject first: %w",
		ticket.Number, tracker.ErrNotFound)
}
