// Package main contains Mage build targets for pdfconv developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the watcher and journal use.
var projectDirs = []string{
	"pdfs_para_converter",
	"arquivos_convertidos",
	".pdfconv",
}

// Init creates the staging, output and state directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pdfconv"
	cmdPkg  = "./cmd/pdfconv"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	return build()
}

// BuildOCR compiles the CLI with the in-process gosseract recognizer. It
// needs the libtesseract and leptonica development headers.
func BuildOCR() error {
	return build("-tags", "gosseract")
}

func build(extra ...string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}

	args := []string{"build"}
	args = append(args, extra...)
	args = append(args, "-ldflags", "-X main.version="+version, "-o", binPath(), cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", binPath(), version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Doctor builds the CLI and reports which OCR dependencies it can find.
func Doctor() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "doctor")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// statAreas are the top-level directories Stats reports on.
var statAreas = []string{"cmd", "internal", "pkg", "magefiles"}

// Stats prints non-blank Go lines per top-level directory, split into
// production code and tests.
func Stats() error {
	var code, tests int
	fmt.Printf("%-10s %8s %8s\n", "area", "code", "tests")
	for _, area := range statAreas {
		c, t, err := goLines(area)
		if err != nil {
			return err
		}
		code += c
		tests += t
		fmt.Printf("%-10s %8d %8d\n", area, c, t)
	}
	fmt.Printf("%-10s %8d %8d\n", "total", code, tests)
	return nil
}

// goLines walks root and returns the non-blank line counts of its non-test
// and _test.go files.
func goLines(root string) (code, tests int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			code += n
		}
		return nil
	})
	return code, tests, err
}

func nonBlankLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
