package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the n8n-export version",
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("n8n-export", "", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("n8n-export %s\n", Version)
	},
}
