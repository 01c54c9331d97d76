package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/n8n-tools/n8n-export/internal/audit"
	"github.com/n8n-tools/n8n-export/internal/configs"
	logger "github.com/n8n-tools/n8n-export/internal/logging"
	"github.com/n8n-tools/n8n-export/internal/n8n"
	"github.com/n8n-tools/n8n-export/internal/utils"
)

// BundleFilename is the aggregated bundle consumed by the companion
// viewer. It is written twice: inside the output directory and in the
// working directory.
const BundleFilename = "n8n_data.json"

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// OutputDir receives the per-workflow files and the bundle.
	// If empty, defaults to configs.DefaultOutputDir.
	OutputDir string

	// Logger receives per-workflow progress lines.
	Logger logger.Logger
}

// ExportResult contains the outcome of an export run.
type ExportResult struct {
	// Found is the number of summaries the listing endpoint returned.
	Found int

	// Exported is the number of workflows written. It can be lower than
	// Found when summaries lack an id, and higher than the number of
	// distinct files when two names sanitize identically (last write
	// wins; not deduplicated).
	Exported int

	// Files holds the per-workflow filenames in fetch order.
	Files []string

	// BundlePath is the bundle inside the output directory.
	BundlePath string

	// RootBundlePath is the duplicate bundle in the working directory.
	RootBundlePath string
}

// Export downloads every active workflow and writes each one to
// <output-dir>/<safe-name>.json, then writes the aggregated bundle to
// both bundle locations. Any failure after the first request aborts the
// run where it stands; files already written are left in place.
func Export(ctx context.Context, client *n8n.Client, opts ExportOptions) (*ExportResult, error) {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = configs.DefaultOutputDir
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	summaries, err := client.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Found: len(summaries)}
	opts.Logger.Infof("Found %d workflows, downloading details", result.Found)

	bundle := make([]n8n.Workflow, 0, len(summaries))
	for _, summary := range summaries {
		id := summaryID(summary)
		if id == "" {
			continue
		}

		detail, err := client.GetWorkflow(ctx, id)
		if err != nil {
			return nil, err
		}
		bundle = append(bundle, detail)

		filename := utils.SafeName(displayName(detail, summary)) + ".json"
		if err := writeJSON(filepath.Join(outputDir, filename), detail); err != nil {
			return nil, err
		}

		result.Files = append(result.Files, filename)
		result.Exported++
		opts.Logger.Infof("Exported: %s", filename)
	}

	result.BundlePath = filepath.Join(outputDir, BundleFilename)
	result.RootBundlePath = BundleFilename

	if err := writeJSON(result.BundlePath, bundle); err != nil {
		return nil, err
	}
	if err := writeJSON(result.RootBundlePath, bundle); err != nil {
		return nil, err
	}

	audit.Log(outputDir, audit.Entry{
		Operation:  "export",
		Found:      result.Found,
		Exported:   result.Exported,
		OutputDir:  outputDir,
		BundlePath: result.BundlePath,
	})

	return result, nil
}

// summaryID extracts the workflow id from a summary. Versioned API ids
// are strings; the legacy API used numeric ids, which arrive as JSON
// numbers.
func summaryID(summary n8n.Workflow) string {
	switch v := summary["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// displayName picks the workflow's name from the detail, then the
// summary, then the generic fallback.
func displayName(detail, summary n8n.Workflow) string {
	if name, ok := detail["name"].(string); ok && name != "" {
		return name
	}
	if name, ok := summary["name"].(string); ok && name != "" {
		return name
	}
	return utils.FallbackName
}

// writeJSON writes v as indented JSON, overwriting any existing file.
// HTML escaping is off so non-ASCII workflow content survives round
// trips through the viewer unmangled.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
