package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jpalmerr/catalog"
	"github.com/jpalmerr/catalog/config"
	"github.com/spf13/cobra"
)

// listCmd prints one page of the configured catalog.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the configured products",
	Long: `Print one page of the products seeded by a config file.

The INDEX column is each product's global index in the full catalog and ID
its stable id; both stay correct whatever search term or page is shown.

Example:
  catalog list -c config.yaml
  catalog list -c config.yaml -q pen --page 2`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	listCmd.Flags().StringP("query", "q", "", "case-insensitive name search")
	listCmd.Flags().IntP("page", "p", 1, "1-based page number (clamped to available pages)")
	_ = listCmd.MarkFlagRequired("config")
}

func runList(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := config.Options(cfg)
	if err != nil {
		return fmt.Errorf("failed to build catalog options: %w", err)
	}
	c, err := catalog.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}

	term, _ := cmd.Flags().GetString("query")
	pageNum, _ := cmd.Flags().GetInt("page")
	page := c.Query(term, pageNum)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tPRICE\tID")
	for _, row := range page.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\n", row.Index, row.Product.Name, row.Product.Price, row.Product.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Page %d / %d (%d matching)\n", page.Number, page.TotalPages, page.Total)

	return nil
}
