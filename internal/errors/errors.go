package errors

import "errors"

// Configuration errors indicate required settings are missing or malformed.
// They are fatal at startup, before any request is made.
var (
	// ErrMissingBaseURL indicates N8N_BASE_URL is unset or blank.
	ErrMissingBaseURL = errors.New("N8N_BASE_URL is not set (example: https://your-n8n.up.railway.app)")

	// ErrMissingAPIKey indicates N8N_API_KEY is unset or blank.
	ErrMissingAPIKey = errors.New("N8N_API_KEY is not set")
)

// API errors indicate the n8n instance rejected a request or lacks an
// endpoint this tool depends on. None of them are retried.
var (
	// ErrUnauthorized indicates the instance returned 401 Unauthorized.
	ErrUnauthorized = errors.New("401 Unauthorized: check N8N_API_KEY and that the public API is enabled")

	// ErrNoListingEndpoint indicates neither API generation exposes a
	// workflow listing endpoint.
	ErrNoListingEndpoint = errors.New("found neither /api/v1/workflows nor /rest/workflows")

	// ErrWorkflowNotFound indicates a workflow could not be fetched from
	// either API generation.
	ErrWorkflowNotFound = errors.New("workflow not found on /api/v1 or /rest")
)
