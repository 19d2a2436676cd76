package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert converts every PDF in the staging folder into the output folder
// as .docx. Set PDFCONV_TO=txt for plain text.
func Convert() error {
	mg.Deps(Build, Init)

	entries, err := os.ReadDir(projectDirs[0])
	if err != nil {
		return err
	}
	args := []string{"convert", "--output-dir", projectDirs[1], "--to", envOr("PDFCONV_TO", "docx")}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			args = append(args, filepath.Join(projectDirs[0], e.Name()))
			n++
		}
	}
	if n == 0 {
		fmt.Printf("No PDFs in %s.\n", projectDirs[0])
		return nil
	}
	return sh.RunV(binPath(), args...)
}

// Watch runs the folder watcher on the staging folder until interrupted.
func Watch() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "watch", "--input-dir", projectDirs[0], "--output-dir", projectDirs[1])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
