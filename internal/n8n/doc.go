// Package n8n is a minimal client for the two generations of the n8n
// REST API: the versioned public API under /api/v1 and the legacy
// unversioned paths under /rest kept by older instances.
//
// The client knows only the two operations the exporter needs, listing
// workflow summaries and fetching one workflow's definition, and treats
// workflow documents as opaque JSON. A 404 from one API generation is a
// control-flow signal meaning "try the other one", not an error; every
// other failure aborts the caller's run.
package n8n
