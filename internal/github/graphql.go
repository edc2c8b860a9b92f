package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tickctl/tickctl/internal/logging"
)

// GraphQLError reports that the structured endpoint answered the request
// but returned an error list instead of (or alongside) data. The raw error
// content is carried unparsed.
type GraphQLError struct {
	Errors json.RawMessage
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql errors: %s", e.Errors)
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// graphql posts a query document and variable map to the structured
// query/mutation endpoint and decodes the data payload into out. Transport
// failures and non-2xx statuses are returned as plain errors; an error list
// in the response body is returned as a *GraphQLError.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logging.Error("graphql request failed",
			"status_code", resp.StatusCode,
			"body", strings.TrimSpace(string(body)))
		return fmt.Errorf("graphql request failed with status %d", resp.StatusCode)
	}

	var gr graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(gr.Errors) > 0 && string(gr.Errors) != "null" {
		return &GraphQLError{Errors: gr.Errors}
	}

	if out != nil {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return fmt.Errorf("failed to decode graphql data: %w", err)
		}
	}
	return nil
}

// mutate runs a mutation document, supplying a generated clientMutationId
// so each write can be traced individually. Mutation documents must declare
// the $clientMutationId variable.
func (c *Client) mutate(ctx context.Context, mutation string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	variables["clientMutationId"] = uuid.NewString()
	return c.graphql(ctx, mutation, variables, out)
}
