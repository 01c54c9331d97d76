// Package workflows implements the export pipeline behind the CLI.
//
// The cmd/ package stays a thin layer that parses flags, loads settings,
// and formats results; this package owns the actual sequence: enumerate
// active workflows, fetch each definition, write the per-workflow files,
// and produce the aggregated bundle in both of its locations.
//
// The pipeline is deliberately sequential and all-or-nothing: there is
// no retry, no skip-and-continue, and no cleanup of files already
// written when a later step fails.
package workflows
