package main

import (
	"fmt"

	"github.com/jpalmerr/catalog"
	"github.com/jpalmerr/catalog/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a catalog configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields, including every seed product. It's useful for CI/CD pipelines
or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  catalog validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// building the catalog runs the same product checks the SDK applies
	opts, err := config.Options(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c, err := catalog.New(opts...)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:      %d\n", cfg.Port)
	fmt.Fprintf(out, "  Page size: %d\n", cfg.PageSize)
	fmt.Fprintf(out, "  Products:  %d (%d pages)\n", c.Len(), c.Query("", 1).TotalPages)

	return nil
}
