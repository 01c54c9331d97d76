// Package logger provides verbosity-gated logging for n8n-export commands.
//
// Behavior is controlled by the command flags:
//
//   - --verbose: shows info messages (per-workflow progress lines)
//   - --debug: shows everything, including request-level detail
//
// Without either flag only warnings and errors are printed, and the
// export command shows a spinner instead of progress lines.
//
// Commands create a logger in their PersistentPreRun and hand it down to
// the workflow layer:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Exported: %s", filename)
package logger
