package main

import (
	"fmt"
	"os"

	"github.com/n8n-tools/n8n-export/cmd"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "n8n-export",
	Short: "n8n-export - Export workflow definitions from an n8n instance.",
	Long: `n8n-export downloads every active workflow from a remote n8n instance
through its REST API and writes each one to a JSON file, plus a single
bundle file consumed by the companion viewer.

Configuration comes from the environment (or a .env file):
  N8N_BASE_URL    root URL of the n8n instance (required)
  N8N_API_KEY     API key sent with every request (required)
  VERIFY_TLS      set to "0", "false", or "no" to skip certificate checks
  HTTP_TIMEOUT    per-request timeout in seconds (default: 60)

Run 'n8n-export help export' for details on the export itself.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Run 'n8n-export export' to export workflows, or 'n8n-export --help' for usage.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.ExportCmd)
	rootCmd.AddCommand(cmd.VersionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
