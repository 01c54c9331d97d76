// Package audit keeps an append-only record of export runs.
//
// Each completed export appends one JSON line to a log inside the output
// directory, so operators can see when exports ran and how much they
// pulled. Logging is best-effort: an export never fails because its
// audit record could not be written.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LogFilename is the run log kept inside the export directory.
const LogFilename = ".export_log.jsonl"

// Entry represents a single export run.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"`

	Found      int    `json:"found"`    // Summaries returned by the listing endpoint.
	Exported   int    `json:"exported"` // Workflows actually written.
	OutputDir  string `json:"output_dir,omitempty"`
	BundlePath string `json:"bundle_path,omitempty"`
}

// Log appends an entry to the run log in dir.
// If logging fails it returns silently; the export already succeeded.
func Log(dir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := filepath.Join(dir, LogFilename)

	// #nosec G306 -- the run log holds no secrets.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}
