package github

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualShapeCollections(t *testing.T) {
	// The structured endpoint nests sub-collections in connection
	// objects, the resource-oriented endpoint emits flat lists. Both
	// must normalize to the same ordered name lists.
	nested := `{
		"id": "I_1",
		"number": 1,
		"title": "Fix crash",
		"labels": {"nodes": [{"name": "bug"}, {"name": "urgent"}]},
		"assignees": {"nodes": [{"login": "octocat"}, {"login": "hubot"}]}
	}`
	flat := `{
		"id": "I_1",
		"number": 1,
		"title": "Fix crash",
		"labels": [{"id": 11, "name": "bug", "default": true}, {"id": 12, "name": "urgent"}],
		"assignees": [{"login": "octocat", "id": 1}, {"login": "hubot", "id": 2}]
	}`

	var fromNested, fromFlat wireIssue
	require.NoError(t, json.Unmarshal([]byte(nested), &fromNested))
	require.NoError(t, json.Unmarshal([]byte(flat), &fromFlat))

	assert.Equal(t, []string{"bug", "urgent"}, []string(fromNested.Labels))
	assert.Equal(t, fromNested.Labels, fromFlat.Labels)
	assert.Equal(t, []string{"octocat", "hubot"}, []string(fromNested.Assignees))
	assert.Equal(t, fromNested.Assignees, fromFlat.Assignees)
}

func TestMixedShapeCollections(t *testing.T) {
	// The two shapes may appear in one payload: each sub-collection is
	// decoded independently.
	mixed := `{
		"id": "I_2",
		"labels": {"nodes": [{"name": "bug"}]},
		"assignees": [{"login": "octocat"}]
	}`
	var issue wireIssue
	require.NoError(t, json.Unmarshal([]byte(mixed), &issue))
	assert.Equal(t, []string{"bug"}, []string(issue.Labels))
	assert.Equal(t, []string{"octocat"}, []string(issue.Assignees))
}

func TestStringID(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "GraphQL node ID", payload: `"I_kwDOAbc"`, expected: "I_kwDOAbc"},
		{name: "REST numeric ID", payload: `1296269`, expected: "1296269"},
		{name: "Null", payload: `null`, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var id stringID
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &id))
			assert.Equal(t, tc.expected, string(id))
		})
	}
}

func TestParseTime(t *testing.T) {
	parsed := parseTime("2024-05-01T10:30:00Z")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), parsed.UTC())

	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("yesterday"))
}

func TestTicketFromWireStatus(t *testing.T) {
	issue := &wireIssue{ID: "I_1", Number: 1, Title: "Fix crash"}

	// Without a project item the ticket sits at the baseline status.
	assert.Equal(t, "Todo", ticketFromWire(issue, nil).Status)

	// The first single-select field value wins; other value types are
	// skipped.
	item := &wireProjectItem{}
	item.FieldValues.Nodes = []struct {
		Typename string `json:"__typename"`
		Name     string `json:"name"`
	}{
		{Typename: "ProjectV2ItemFieldTextValue", Name: "ignored"},
		{Typename: "ProjectV2ItemFieldSingleSelectValue", Name: "In Progress"},
		{Typename: "ProjectV2ItemFieldSingleSelectValue", Name: "Done"},
	}
	assert.Equal(t, "In Progress", ticketFromWire(issue, item).Status)
}

func TestTicketFromWireFields(t *testing.T) {
	payload := `{
		"id": "I_3",
		"number": 3,
		"title": "Add search",
		"body": "Full text please",
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "",
		"url": "https://github.com/octo/demo/issues/3",
		"labels": {"nodes": [{"name": "feature"}]},
		"assignees": {"nodes": []},
		"milestone": {"title": "v1.0"}
	}`
	var issue wireIssue
	require.NoError(t, json.Unmarshal([]byte(payload), &issue))

	ticket := ticketFromWire(&issue, nil)
	assert.Equal(t, "I_3", ticket.ID)
	assert.Equal(t, 3, ticket.Number)
	assert.Equal(t, "Add search", ticket.Title)
	assert.Equal(t, "Full text please", ticket.Body)
	assert.Equal(t, "v1.0", ticket.Milestone)
	require.NotNil(t, ticket.CreatedAt)
	assert.Nil(t, ticket.UpdatedAt)
	assert.Equal(t, "I_3", ticket.Metadata["github_node_id"])
	assert.Empty(t, ticket.Assignees)
}

func TestCommentFromWireGhostAuthor(t *testing.T) {
	comment := commentFromWire(&wireComment{ID: "IC_1", Body: "hello"}, "I_1")
	assert.Equal(t, "ghost", comment.Author)
	assert.Equal(t, "I_1", comment.TicketID)
	assert.Nil(t, comment.CreatedAt)

	authored := commentFromWire(&wireComment{
		ID:   "IC_2",
		Body: "hi",
		Author: &struct {
			Login string `json:"login"`
		}{Login: "octocat"},
	}, "I_1")
	assert.Equal(t, "octocat", authored.Author)
}
