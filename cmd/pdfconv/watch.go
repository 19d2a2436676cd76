// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfconv/internal/watch"
	"github.com/pdiddy/pdfconv/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert PDFs dropped into a staging folder",
	Long: `Watch converts every PDF already in the input folder, then keeps running
and converts each new PDF that appears there, writing results to the output
folder. Both folders are created if missing. A failed file is logged and
watching continues. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.String("input-dir", "", "folder to watch (default pdfs_para_converter)")
	f.String("output-dir", "", "folder for converted files (default arquivos_convertidos)")
	f.String("to", "", "output format: txt or docx (default txt)")
	f.Bool("ocr", false, "always use OCR, ignoring any text layer")
	f.Bool("no-fallback", false, "never use OCR; fail files without a text layer")
	f.Duration("settle", 0, "delay between detecting a file and converting it (default 1s)")
	f.Bool("skip-existing", false, "do not convert PDFs already in the input folder")
	watchCmd.MarkFlagsMutuallyExclusive("ocr", "no-fallback")

	bindFlags(f, map[string]string{
		"watch.input_dir":     "input-dir",
		"watch.output_dir":    "output-dir",
		"watch.kind":          "to",
		"watch.settle_delay":  "settle",
		"watch.skip_existing": "skip-existing",
	})

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	wc := cfg.Watch
	if cmd.Flags().Changed("ocr") || cmd.Flags().Changed("no-fallback") {
		wc.OCR = ocrModeFromFlags(cmd)
	}
	wc, err := normalizeWatch(wc)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	j := openJournal(cfg, logger)
	if j != nil {
		defer j.Close()
	}

	ctx, stop := signalContext()
	defer stop()

	var rec watch.Recorder
	if j != nil {
		rec = j
	}
	w := watch.New(wc, pipeline, rec, logger)
	summary, err := w.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatch summary: %d converted, %d failed (run %s)\n",
		summary.Converted, summary.Failed, w.RunID())
	return nil
}

// normalizeWatch maps the configured output kind and OCR mode onto their
// canonical values, so "document" or "FORCED" behave like "docx" and "forced".
func normalizeWatch(wc types.WatchConfig) (types.WatchConfig, error) {
	kind, err := types.ParseOutputKind(string(wc.Kind))
	if err != nil {
		return wc, err
	}
	mode, err := types.ParseOCRMode(string(wc.OCR))
	if err != nil {
		return wc, err
	}
	wc.Kind, wc.OCR = kind, mode
	return wc, nil
}
