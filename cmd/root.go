package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "Split, merge, compress and convert PDF documents and images",
	Long: `Pagesmith extracts page ranges from PDFs, splits them into single pages,
merges several documents and optimizes their size. It also renders PDF pages
to images, builds PDFs from images and resizes or converts images.

Run the operations directly from the command line or start the MCP server
to expose them as tools.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
