// Package main is the entry point for the catalog CLI.
//
// The catalog can be used either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	catalog serve -c config.yaml            # Start the dashboard and API
//	catalog validate -c config.yaml         # Validate configuration
//	catalog list -c config.yaml -q pen -p 2 # Print one page of seeded products
//	catalog version                         # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "A small in-memory product catalog",
	Long: `Catalog is a small in-memory product catalog with search and pagination.

It keeps products (name, price) in memory, serves a JSON API and a web
dashboard, and pushes live changes to connected browsers.

Quick start:
  1. Create a config file (catalog.yaml)
  2. Run: catalog serve -c catalog.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  title: Stationery
  port: 8080
  page_size: 5
  products:
    - name: Pen
      price: 10`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this catalog binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "catalog %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
