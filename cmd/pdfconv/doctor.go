// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which conversion engines were found",
	Long: `Doctor resolves the OCR toolchain the same way convert does and prints
what it found: the tesseract executable, the language data file, and the
pdftoppm rasterizer. Text-layer conversion needs none of them; files
without a text layer need all three. Exits non-zero if OCR is unavailable.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	e, err := newEngines(cfg)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "%-12s  %s\n", "extractor", e.extractor.Name())
	fmt.Fprintf(w, "%-12s  %s\n", "rasterizer", e.rasterizer.Name())
	fmt.Fprintf(w, "%-12s  %s\n", "recognizer", e.recognizer.Name())
	fmt.Fprintf(w, "%-12s  %s\n", "language", e.env.Language)
	fmt.Fprintf(w, "%-12s  %d\n", "dpi", e.env.DPI)
	fmt.Fprintln(w)

	printPath(w, "tesseract", e.env.Tesseract)
	printPath(w, "tessdata", e.env.LanguageData)
	printPath(w, "pdftoppm", e.env.Pdftoppm)
	fmt.Fprintln(w)

	failed := 0
	for _, check := range []struct {
		name string
		err  error
	}{
		{"ocr engine", e.recognizer.Available()},
		{"rasterizer", e.rasterizer.Available()},
	} {
		if check.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", check.name, check.err)
			continue
		}
		fmt.Fprintf(w, "ok    %s\n", check.name)
	}

	if failed > 0 {
		return fmt.Errorf("OCR unavailable: %d check(s) failed; scanned PDFs cannot be converted", failed)
	}
	fmt.Fprintln(w, "\nAll OCR dependencies found.")
	return nil
}

func printPath(w io.Writer, name, path string) {
	if path == "" {
		path = "(not found)"
	}
	fmt.Fprintf(w, "%-12s  %s\n", name, path)
}
