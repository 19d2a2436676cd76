// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfconv/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded conversions",
	Long: `History lists conversions recorded in the journal, most recent first.
Use --format yaml or json to export the entries.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.Bool("failed", false, "show only failed conversions")
	f.Int("limit", 20, "maximum entries to show (0 for all)")
	f.String("source", "", "show only conversions of this source path")
	f.String("run", "", "show only conversions from this run ID")
	f.String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	failedOnly, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")
	source, _ := cmd.Flags().GetString("source")
	runID, _ := cmd.Flags().GetString("run")
	format, _ := cmd.Flags().GetString("format")

	if cfg.Journal.Disabled {
		return fmt.Errorf("the conversion journal is disabled")
	}
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	opts := journal.QueryOptions{
		Limit:      limit,
		FailedOnly: failedOnly,
		Source:     source,
		RunID:      runID,
	}
	ctx := context.Background()
	w := cmd.OutOrStdout()

	switch format {
	case "yaml":
		return j.ExportYAML(ctx, w, opts)
	case "json":
		return j.ExportJSON(ctx, w, opts)
	case "table":
		entries, err := j.List(ctx, opts)
		if err != nil {
			return err
		}
		formatHistoryTable(w, entries)
		return nil
	}
	return fmt.Errorf("unknown format %q: want table, yaml, or json", format)
}

func formatHistoryTable(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-6s  %-6s  %-5s  %-40s  %s\n",
		"Time", "Status", "Method", "Pages", "Source", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, e := range entries {
		status, detail := "ok", e.Destination
		if !e.OK {
			status, detail = "failed", e.FailureKind+": "+e.Message
		}
		fmt.Fprintf(w, "%-19s  %-6s  %-6s  %-5d  %-40s  %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			status, e.Method, e.Pages, truncate(e.Source, 40), detail)
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
