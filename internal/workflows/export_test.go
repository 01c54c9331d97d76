package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/n8n-tools/n8n-export/internal/audit"
	"github.com/n8n-tools/n8n-export/internal/configs"
	kerrors "github.com/n8n-tools/n8n-export/internal/errors"
	logger "github.com/n8n-tools/n8n-export/internal/logging"
	"github.com/n8n-tools/n8n-export/internal/n8n"
)

// chdirTemp moves the test into a fresh directory so the working-directory
// bundle lands somewhere disposable.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
	return dir
}

func newTestClient(t *testing.T, server *httptest.Server) *n8n.Client {
	t.Helper()
	client, err := n8n.NewClient(&configs.Settings{
		BaseURL:   server.URL + "/",
		APIKey:    "test-key",
		VerifyTLS: true,
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func readJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
}

func TestExportEndToEnd(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/workflows":
			w.Write([]byte(`[{"id":"1","name":"Foo/Bar"},{"id":"2","name":""},{"name":"no id, skipped"}]`))
		case "/api/v1/workflows/1":
			w.Write([]byte(`{"id":"1","name":"Foo/Bar","nodes":[]}`))
		case "/api/v1/workflows/2":
			w.Write([]byte(`{"id":"2","nodes":[]}`))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	outputDir := "exported"
	result, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: outputDir,
		Logger:    logger.Logger{},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if result.Found != 3 {
		t.Errorf("Found = %d, want 3", result.Found)
	}
	if result.Exported != 2 {
		t.Errorf("Exported = %d, want 2 (summary without id is skipped)", result.Exported)
	}

	wantFiles := []string{"Foo_Bar.json", "workflow.json"}
	if len(result.Files) != len(wantFiles) {
		t.Fatalf("Files = %v, want %v", result.Files, wantFiles)
	}
	for i, want := range wantFiles {
		if result.Files[i] != want {
			t.Errorf("Files[%d] = %q, want %q", i, result.Files[i], want)
		}
	}

	// The sanitized name comes from the detail; the second workflow has
	// no name anywhere and falls back to "workflow".
	var first map[string]any
	readJSONFile(t, filepath.Join(outputDir, "Foo_Bar.json"), &first)
	if first["name"] != "Foo/Bar" {
		t.Errorf("Foo_Bar.json name = %v, want the unmodified detail", first["name"])
	}

	var second map[string]any
	readJSONFile(t, filepath.Join(outputDir, "workflow.json"), &second)
	if second["id"] != "2" {
		t.Errorf("workflow.json id = %v, want 2", second["id"])
	}

	// The bundle holds both details in fetch order, in both locations.
	for _, path := range []string{result.BundlePath, result.RootBundlePath} {
		var bundle []map[string]any
		readJSONFile(t, path, &bundle)
		if len(bundle) != 2 {
			t.Fatalf("bundle %s has %d entries, want 2", path, len(bundle))
		}
		if bundle[0]["id"] != "1" || bundle[1]["id"] != "2" {
			t.Errorf("bundle %s order = %v, want fetch order", path, bundle)
		}
	}

	if result.BundlePath != filepath.Join(outputDir, BundleFilename) {
		t.Errorf("BundlePath = %q, want inside output directory", result.BundlePath)
	}
	if result.RootBundlePath != BundleFilename {
		t.Errorf("RootBundlePath = %q, want working-directory bundle", result.RootBundlePath)
	}

	// The run log records the export.
	if _, err := os.Stat(filepath.Join(outputDir, audit.LogFilename)); err != nil {
		t.Errorf("run log not written: %v", err)
	}
}

func TestExportPreservesNonASCII(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/workflows":
			w.Write([]byte(`[{"id":"1","name":"Relatório"}]`))
		case "/api/v1/workflows/1":
			w.Write([]byte(`{"id":"1","name":"Relatório","nodes":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	_, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: "exported",
		Logger:    logger.Logger{},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join("exported", "Relatório.json"))
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("exported file is not valid JSON")
	}
	// Non-ASCII must be written as UTF-8, not \u escapes.
	if want := "Relatório"; !bytes.Contains(data, []byte(want)) {
		t.Errorf("exported JSON does not contain %q verbatim", want)
	}
}

func TestExportNumericLegacyIDs(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/workflows":
			w.WriteHeader(http.StatusNotFound)
		case "/rest/workflows":
			w.Write([]byte(`{"data":[{"id":7,"name":"Old Timer"}]}`))
		case "/api/v1/workflows/7":
			w.WriteHeader(http.StatusNotFound)
		case "/rest/workflows/7":
			w.Write([]byte(`{"id":7,"name":"Old Timer"}`))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	result, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: "exported",
		Logger:    logger.Logger{},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Exported != 1 {
		t.Errorf("Exported = %d, want 1", result.Exported)
	}
	if _, err := os.Stat(filepath.Join("exported", "Old Timer.json")); err != nil {
		t.Errorf("expected file for numeric-id workflow: %v", err)
	}
}

func TestExportNoListingEndpoint(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: "exported",
		Logger:    logger.Logger{},
	})
	if !errors.Is(err, kerrors.ErrNoListingEndpoint) {
		t.Fatalf("Export() error = %v, want ErrNoListingEndpoint", err)
	}

	// The directory may exist, but nothing was written into it.
	entries, err := os.ReadDir("exported")
	if err != nil {
		t.Fatalf("reading output directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output directory has %d entries, want none", len(entries))
	}
	if _, err := os.Stat(BundleFilename); !os.IsNotExist(err) {
		t.Error("working-directory bundle written despite fatal listing failure")
	}
}

func TestExportUnauthorizedWritesNothing(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: "exported",
		Logger:    logger.Logger{},
	})
	if !errors.Is(err, kerrors.ErrUnauthorized) {
		t.Fatalf("Export() error = %v, want ErrUnauthorized", err)
	}

	entries, err := os.ReadDir("exported")
	if err != nil {
		t.Fatalf("reading output directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output directory has %d entries, want none", len(entries))
	}
}

func TestExportFetchFailureAbortsRun(t *testing.T) {
	chdirTemp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/workflows":
			w.Write([]byte(`[{"id":"1","name":"First"},{"id":"2","name":"Second"}]`))
		case "/api/v1/workflows/1":
			w.Write([]byte(`{"id":"1","name":"First"}`))
		case "/api/v1/workflows/2":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	_, err := Export(context.Background(), newTestClient(t, server), ExportOptions{
		OutputDir: "exported",
		Logger:    logger.Logger{},
	})
	if err == nil {
		t.Fatal("Export() returned nil error after a failed detail fetch")
	}

	// The first workflow's file survives; no bundle is written.
	if _, err := os.Stat(filepath.Join("exported", "First.json")); err != nil {
		t.Errorf("first workflow file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join("exported", BundleFilename)); !os.IsNotExist(err) {
		t.Error("bundle written despite mid-run failure")
	}
}
