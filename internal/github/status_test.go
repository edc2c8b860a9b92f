package github

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickctl/tickctl/internal/tracker"
)

// updateStatusHandler serves the full UpdateStatus flow: project and field
// resolution, board item lookup, the field mutation, and the re-fetch.
func updateStatusHandler(mutated *map[string]any) graphqlHandler {
	return func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "updateProjectV2ItemFieldValue"):
			*mutated = vars
			return map[string]any{"updateProjectV2ItemFieldValue": map[string]any{"projectV2Item": map[string]any{"id": "ITEM_2"}}}
		case strings.Contains(query, "fields(first:"):
			return statusFieldsResponse()
		case strings.Contains(query, "items(first:"):
			return map[string]any{"node": map[string]any{"items": map[string]any{"nodes": []map[string]any{
				{"id": "ITEM_2", "content": map[string]any{"id": "I_5", "number": 5}},
			}}}}
		case strings.Contains(query, "projectV2(number:"):
			return map[string]any{"repository": map[string]any{"projectV2": map[string]any{"id": "PVT_1"}}}
		case strings.Contains(query, "issue(number:"):
			return map[string]any{"repository": map[string]any{"issue": issueNode("I_5", 5, "Fix crash")}}
		}
		t.Errorf("unexpected query: %s", query)
		return nil
	}
}

func TestUpdateStatusCaseInsensitive(t *testing.T) {
	var mutated map[string]any
	client := newTestClient(t, updateStatusHandler(&mutated), nil)

	// Lower-case input matches the "Done" option.
	ticket, err := client.UpdateStatus(context.Background(), "5", "done", 0)
	require.NoError(t, err)

	assert.Equal(t, "PVT_1", mutated["projectId"])
	assert.Equal(t, "ITEM_2", mutated["itemId"])
	assert.Equal(t, "F_status", mutated["fieldId"])
	assert.Equal(t, "O_done", mutated["optionId"])

	// The caller-visible status is the option's canonical display name,
	// not the caller's spelling: the plain fetch path does not surface
	// board status.
	assert.Equal(t, "Done", ticket.Status)
}

func TestUpdateStatusUnknownOption(t *testing.T) {
	var mutated map[string]any
	client := newTestClient(t, updateStatusHandler(&mutated), nil)

	_, err := client.UpdateStatus(context.Background(), "5", "Shipped", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Nil(t, mutated, "no mutation may be issued for an unknown status")

	// The failure enumerates every valid option.
	assert.Contains(t, err.Error(), "Todo")
	assert.Contains(t, err.Error(), "In Progress")
	assert.Contains(t, err.Error(), "Done")
}

func TestUpdateStatusRequiresBoardMembership(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, query string, vars map[string]any) any {
		switch {
		case strings.Contains(query, "fields(first:"):
			return statusFieldsResponse()
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

	_, err := client.UpdateStatus(context.Background(), "5", "Todo", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
}
