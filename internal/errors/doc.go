// Package errors defines the sentinel errors shared across n8n-export.
//
// Every error here is fatal: nothing catches one and continues. They
// propagate, wrapped with %w, up to the command layer, which prints a
// single message and exits non-zero. The only non-fatal condition in the
// whole tool, a 404 from one API generation, is not an error at all and
// is represented as a nil payload by the client.
package errors
