// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfconv/internal/convert"
	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/internal/journal"
	"github.com/pdiddy/pdfconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf...]",
	Short: "Convert PDF files to text or .docx",
	Long: `Convert extracts the text of each PDF and writes it as UTF-8 text (--to txt)
or as a Word document with one paragraph per page (--to docx).

The embedded text layer is used when present. Files without one fall back
to OCR unless --no-fallback is given; --ocr skips the text layer and always
runs OCR. Output goes beside each source unless -o (single file) or
--output-dir is set. The command exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("to", "txt", "output format: txt or docx")
	f.Bool("ocr", false, "always use OCR, ignoring any text layer")
	f.Bool("no-fallback", false, "never use OCR; fail files without a text layer")
	f.StringP("output", "o", "", "output file (single input only)")
	f.String("output-dir", "", "directory for output files")
	f.Bool("fail-fast", false, "stop at the first failed file")
	f.Bool("verify", false, "re-read written .docx files and check their paragraph count")
	convertCmd.MarkFlagsMutuallyExclusive("ocr", "no-fallback")
	convertCmd.MarkFlagsMutuallyExclusive("output", "output-dir")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	kind, err := types.ParseOutputKind(to)
	if err != nil {
		return err
	}
	mode := ocrModeFromFlags(cmd)

	output, _ := cmd.Flags().GetString("output")
	outDir, _ := cmd.Flags().GetString("output-dir")
	failFast, _ := cmd.Flags().GetBool("fail-fast")
	verify, _ := cmd.Flags().GetBool("verify")

	if output != "" && len(args) > 1 {
		return fmt.Errorf("-o/--output accepts a single input file, got %d", len(args))
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	reqs := convert.Requests(args, outDir, kind, mode)
	if output != "" {
		reqs[0].Destination = output
	}

	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	runID := journal.NewRunID()
	j := openJournal(cfg, logger)
	if j != nil {
		defer j.Close()
	}

	ctx, stop := signalContext()
	defer stop()

	out := cmd.OutOrStdout()
	opts := convert.BatchOptions{FailFast: failFast, Out: out}
	if len(reqs) > 1 {
		bar := newProgressBar(cmd.ErrOrStderr(), len(reqs))
		defer bar.Finish()
		opts.Progress = func(done, _ int) { _ = bar.Set(done) }
	}
	opts.OnResult = func(req types.ConversionRequest, res types.ConversionResult) {
		if j != nil {
			if err := j.Record(ctx, runID, res, req); err != nil {
				logger.WithError(err).Warn("recording conversion")
			}
		}
		if verify && res.OK && req.Kind == types.OutputDocument {
			verifyDocument(out, res)
		}
	}

	result := convert.ConvertBatch(ctx, pipeline, reqs, opts)
	if result.HasFailures() {
		return fmt.Errorf("%d of %d file(s) failed conversion", result.Failed, result.Total())
	}
	if result.Skipped > 0 {
		return fmt.Errorf("interrupted: %d file(s) not converted", result.Skipped)
	}
	return nil
}

func ocrModeFromFlags(cmd *cobra.Command) types.OCRMode {
	forced, _ := cmd.Flags().GetBool("ocr")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")
	switch {
	case forced:
		return types.OCRForced
	case noFallback:
		return types.OCRDisabled
	}
	return types.OCRAuto
}

// verifyDocument reads a written document back and reports whether it has
// one paragraph per converted page.
func verifyDocument(w io.Writer, res types.ConversionResult) {
	paras, err := docx.ReadParagraphs(res.OutputPath)
	switch {
	case err != nil:
		fmt.Fprintf(w, "verify:  %s (%v)\n", res.OutputPath, err)
	case len(paras) != res.Pages:
		fmt.Fprintf(w, "verify:  %s has %d paragraphs, want %d\n", res.OutputPath, len(paras), res.Pages)
	default:
		fmt.Fprintf(w, "verified: %s (%d paragraphs)\n", res.OutputPath, len(paras))
	}
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}
