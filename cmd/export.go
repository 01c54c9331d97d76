package cmd

import (
	"errors"
	"fmt"

	"github.com/n8n-tools/n8n-export/internal/configs"
	kerrors "github.com/n8n-tools/n8n-export/internal/errors"
	logger "github.com/n8n-tools/n8n-export/internal/logging"
	"github.com/n8n-tools/n8n-export/internal/n8n"
	"github.com/n8n-tools/n8n-export/internal/ui"
	"github.com/n8n-tools/n8n-export/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	exportOutputDir string
)

func init() {
	ExportCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ExportCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	ExportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", configs.DefaultOutputDir, "directory for exported workflow files")
}

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all active workflows to JSON files",
	Long: `Downloads every active workflow from the configured n8n instance and
writes each one to <output-dir>/<name>.json, plus an aggregated bundle
(n8n_data.json) both inside the output directory and in the working
directory for the companion viewer.

The instance is located through the environment (or a .env file):
  N8N_BASE_URL, N8N_API_KEY (required)
  VERIFY_TLS, HTTP_TIMEOUT  (optional)

Older instances without the versioned public API are handled
transparently through the legacy /rest endpoints.

Examples:
  # Export to the default n8n_workflows_export/ directory
  n8n-export export

  # Export somewhere else, with per-workflow progress lines
  n8n-export export -o backups/workflows --verbose`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing export command with verbose=%t, debug=%t", verbose, debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting workflows...", verbose)
		defer cleanup()

		settings, err := configs.Load()
		if err != nil {
			if errors.Is(err, kerrors.ErrMissingBaseURL) || errors.Is(err, kerrors.ErrMissingAPIKey) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " Set " + ui.Code.Sprint("N8N_BASE_URL") + " and " +
					ui.Code.Sprint("N8N_API_KEY") + " in the environment or a " + ui.Path.Sprint(".env") + " file"
				return err
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}
		Logger.Debugf("Base URL: %s", settings.BaseURL)
		Logger.Debugf("TLS verification: %t, timeout: %s", settings.VerifyTLS, settings.Timeout)

		client, err := n8n.NewClient(settings)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to build API client: %v", err)
		}

		result, err := workflows.Export(cmd.Context(), client, workflows.ExportOptions{
			OutputDir: exportOutputDir,
			Logger:    Logger,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrUnauthorized) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return err
			}
			return Logger.ErrorfAndReturn("export failed: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") +
			fmt.Sprintf(" Exported %d workflow(s) to %s", result.Exported, ui.Path.Sprint(exportOutputDir)) + "\n\n" +
			"Bundle saved to:\n" +
			"  " + ui.Path.Sprint(result.BundlePath) + "\n" +
			"  " + ui.Path.Sprint(result.RootBundlePath)

		if skipped := result.Found - result.Exported; skipped > 0 {
			finalMessage += "\n\n" + ui.Warning.Sprint("⚠") +
				fmt.Sprintf(" Skipped %d listing entries with no workflow id", skipped)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
