package n8n

import (
	"context"
	"fmt"
	"net/url"

	kerrors "github.com/n8n-tools/n8n-export/internal/errors"
	"github.com/n8n-tools/n8n-export/internal/utils"
)

// Workflow is an opaque workflow document as returned by the API. The
// exporter never interprets its contents beyond "id" and "name".
type Workflow = map[string]any

// ListWorkflows returns the active workflow summaries. It prefers the
// versioned API and falls back to the legacy REST path for instances
// that predate it; if neither exists the run cannot proceed.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	payload, err := c.getWithFallback(ctx,
		"api/v1/workflows", "rest/workflows",
		url.Values{"active": {"true"}})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, kerrors.ErrNoListingEndpoint
	}
	return extractList(payload), nil
}

// GetWorkflow fetches the full definition for one workflow id, with the
// same versioned-then-legacy fallback as ListWorkflows.
func (c *Client) GetWorkflow(ctx context.Context, id string) (Workflow, error) {
	safe := utils.SafeID(id)

	payload, err := c.getWithFallback(ctx,
		"api/v1/workflows/"+safe, "rest/workflows/"+safe, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("workflow id=%s: %w", id, kerrors.ErrWorkflowNotFound)
	}

	detail, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("workflow id=%s: unexpected response shape %T", id, payload)
	}
	return detail, nil
}

// extractList handles both listing response generations: a bare array,
// or an object wrapping the array under "data" or "items".
func extractList(payload any) []Workflow {
	var raw []any
	switch v := payload.(type) {
	case []any:
		raw = v
	case map[string]any:
		if data, ok := v["data"].([]any); ok && len(data) > 0 {
			raw = data
		} else if items, ok := v["items"].([]any); ok {
			raw = items
		}
	}

	summaries := make([]Workflow, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			summaries = append(summaries, m)
		}
	}
	return summaries
}
