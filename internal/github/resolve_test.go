package github

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickctl/tickctl/internal/tracker"
)

func TestRepositoryIDMemoized(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		requests++
		assert.Equal(t, "octo", vars["owner"])
		assert.Equal(t, "demo", vars["repo"])
		return map[string]any{"repository": map[string]any{"id": "R_1"}}
	}, nil)

	ctx := context.Background()
	id, err := client.repositoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R_1", id)

	// Second resolution hits the cache.
	id, err = client.repositoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R_1", id)
	assert.Equal(t, 1, requests)
}

func TestRepositoryIDNotFound(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		return map[string]any{"repository": nil}
	}, nil)

	_, err := client.repositoryID(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Contains(t, err.Error(), "octo/demo")
}

func TestProjectIDScopeFallback(t *testing.T) {
	var scopesTried []string
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "repository(owner:"):
			scopesTried = append(scopesTried, "repository")
			return scopeNotFound
		case strings.Contains(query, "user(login:"):
			scopesTried = append(scopesTried, "user")
			return scopeNotFound
		case strings.Contains(query, "organization(login:"):
			scopesTried = append(scopesTried, "organization")
			return map[string]any{"organization": map[string]any{"projectV2": map[string]any{"id": "PVT_org"}}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	ctx := context.Background()
	id, err := client.projectID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "PVT_org", id)
	// The repository and user scopes were tried and their not-found
	// answers swallowed, in the fixed order.
	assert.Equal(t, []string{"repository", "user", "organization"}, scopesTried)

	// A cache hit ignores the requested project number.
	id, err = client.projectID(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "PVT_org", id)
	assert.Len(t, scopesTried, 3)
}

func TestProjectIDNullScopesFallThrough(t *testing.T) {
	// A scope can also answer with data but no project.
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "repository(owner:"):
			return map[string]any{"repository": map[string]any{"projectV2": nil}}
		case strings.Contains(query, "user(login:"):
			return map[string]any{"user": map[string]any{"projectV2": map[string]any{"id": "PVT_user"}}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	id, err := client.projectID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "PVT_user", id)
}

func TestProjectIDNotFoundAnywhere(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		return scopeNotFound
	}, nil)

	_, err := client.projectID(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	// The failure names all three scopes that were searched.
	assert.Contains(t, err.Error(), "repository octo/demo")
	assert.Contains(t, err.Error(), "user octo")
	assert.Contains(t, err.Error(), "organization octo")
}

func TestProjectIDRequiresNumber(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		t.Error("no request expected")
		return nil
	}, nil)
	client.projectNumber = 0

	_, err := client.projectID(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project number not specified")
}

func statusFieldsResponse() map[string]any {
	return map[string]any{"node": map[string]any{"fields": map[string]any{"nodes": []map[string]any{
		{}, // non-single-select fields decode empty
		{"id": "F_other", "name": "Priority", "options": []map[string]any{{"id": "O_hi", "name": "High"}}},
		{"id": "F_status", "name": "Status", "options": []map[string]any{
			{"id": "O_todo", "name": "Todo"},
			{"id": "O_prog", "name": "In Progress"},
			{"id": "O_done", "name": "Done"},
		}},
	}}}}
}

func TestStatusField(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "projectV2(number:"):
			return map[string]any{"repository": map[string]any{"projectV2": map[string]any{"id": "PVT_1"}}}
		case strings.Contains(query, "fields(first:"):
			requests++
			return statusFieldsResponse()
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	ctx := context.Background()
	fieldID, options, err := client.statusField(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "F_status", fieldID)
	require.Len(t, options, 3)
	assert.Equal(t, "O_prog", options[1].ID)
	assert.Equal(t, "In Progress", options[1].Name)

	// Memoized after the first resolution.
	_, _, err = client.statusField(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestStatusFieldMissing(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "projectV2(number:"):
			return map[string]any{"repository": map[string]any{"projectV2": map[string]any{"id": "PVT_1"}}}
		case strings.Contains(query, "fields(first:"):
			return map[string]any{"node": map[string]any{"fields": map[string]any{"nodes": []map[string]any{
				{"id": "F_other", "name": "Priority", "options": []map[string]any{}},
			}}}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	_, _, err := client.statusField(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Contains(t, err.Error(), "Status")
}

func TestProjectItemID(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "items(first:"):
			return map[string]any{"node": map[string]any{"items": map[string]any{"nodes": []map[string]any{
				{"id": "ITEM_1", "content": map[string]any{"id": "I_4", "number": 4}},
				{"id": "ITEM_2", "content": map[string]any{"id": "I_5", "number": 5}},
			}}}}
		case strings.Contains(query, "projectV2(number:"):
			return map[string]any{"repository": map[string]any{"projectV2": map[string]any{"id": "PVT_1"}}}
		case strings.Contains(query, "issue(number:"):
			return map[string]any{"repository": map[string]any{"issue": issueNode("I_5", 5, "Fix crash")}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	itemID, err := client.projectItemID(context.Background(), "5", 0)
	require.NoError(t, err)
	assert.Equal(t, "ITEM_2", itemID)
}

func TestProjectItemIDNotOnBoard(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "items(first:"):
			return map[string]any{"node": map[string]any{"items": map[string]any{"nodes": []map[string]any{}}}}
		case strings.Contains(query, "projectV2(number:"):
			return map[string]any{"repository": map[string]any{"projectV2": map[string]any{"id": "PVT_1"}}}
		case strings.Contains(query, "issue(number:"):
			return map[string]any{"repository": map[string]any{"issue": issueNode("I_5", 5, "Fix crash")}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}, nil)

	_, err := client.projectItemID(context.Background(), "5", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	// The failure tells the caller how to fix the precondition.
	assert.Contains(t, err.Error(), "AddToProject")
}
