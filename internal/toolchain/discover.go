// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain locates the external engines the OCR path depends on
// (tesseract, its language data, and Poppler's pdftoppm) and runs them.
// Discovery happens once per process; the resulting types.Environment is
// injected into the rasterizer and recognizer backends.
package toolchain

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/pdfconv/pkg/types"
)

const (
	binTesseract = "tesseract"
	binPdftoppm  = "pdftoppm"

	envTessdataPrefix = "TESSDATA_PREFIX"
)

var (
	// ErrOCRUnavailable reports that the OCR engine could not be located.
	ErrOCRUnavailable = errors.New("OCR engine not found")

	// ErrLanguageMissing reports that the OCR language data could not be located.
	ErrLanguageMissing = errors.New("OCR language data not found")

	// ErrRasterizerUnavailable reports that the rasterization engine could not be located.
	ErrRasterizerUnavailable = errors.New("rasterization engine not found")
)

// executor abstracts the filesystem and PATH lookups for testing.
type executor interface {
	LookPath(file string) (string, error)
	IsFile(path string) bool
	Getenv(key string) string
	Glob(pattern string) ([]string, error)
}

// osExecutor is the production executor backed by os and os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osExecutor) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (osExecutor) Getenv(key string) string { return os.Getenv(key) }

func (osExecutor) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

var defaultExec executor = osExecutor{}

// Discover resolves engine locations from cfg, PATH, and well-known install
// directories. Missing engines leave the corresponding path empty; Discover
// itself never fails.
func Discover(cfg types.EngineConfig) types.Environment {
	return discover(defaultExec, runtime.GOOS, cfg)
}

func discover(x executor, goos string, cfg types.EngineConfig) types.Environment {
	lang := cfg.Language
	if lang == "" {
		lang = types.DefaultLanguage
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = types.DefaultDPI
	}

	env := types.Environment{Language: lang, DPI: dpi}
	env.Tesseract = findTesseract(x, goos, cfg.TesseractPath)
	env.TessdataDir, env.LanguageData = findLanguageData(x, goos, cfg.TessdataDir, env.Tesseract, lang)
	env.Pdftoppm = findPdftoppm(x, goos, cfg.PopplerDir)
	return env
}

func exeName(goos, bin string) string {
	if goos == "windows" {
		return bin + ".exe"
	}
	return bin
}

func findTesseract(x executor, goos, explicit string) string {
	if explicit != "" {
		if x.IsFile(explicit) {
			return explicit
		}
		// An explicit path that does not exist is not silently replaced.
		return ""
	}
	if p, err := x.LookPath(exeName(goos, binTesseract)); err == nil {
		return p
	}
	for _, dir := range tesseractDirs(x, goos) {
		p := filepath.Join(dir, exeName(goos, binTesseract))
		if x.IsFile(p) {
			return p
		}
	}
	return ""
}

func tesseractDirs(x executor, goos string) []string {
	if goos == "windows" {
		dirs := []string{
			`C:\Program Files\Tesseract-OCR`,
			`C:\Program Files (x86)\Tesseract-OCR`,
		}
		if local := x.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Programs", "Tesseract-OCR"))
		}
		return dirs
	}
	return []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/opt/local/bin"}
}

func findLanguageData(x executor, goos, explicitDir, tesseract, lang string) (dir, file string) {
	name := lang + ".traineddata"

	var candidates []string
	if explicitDir != "" {
		candidates = append(candidates, explicitDir)
	}
	if prefix := x.Getenv(envTessdataPrefix); prefix != "" {
		candidates = append(candidates, prefix, filepath.Join(prefix, "tessdata"))
	}
	if tesseract != "" {
		bin := filepath.Dir(tesseract)
		candidates = append(candidates,
			filepath.Join(bin, "tessdata"),
			filepath.Join(bin, "..", "share", "tessdata"),
		)
	}
	candidates = append(candidates, tessdataDirs(x, goos)...)

	for _, d := range candidates {
		p := filepath.Join(d, name)
		if x.IsFile(p) {
			return filepath.Clean(d), p
		}
	}
	return "", ""
}

func tessdataDirs(x executor, goos string) []string {
	if goos == "windows" {
		return []string{
			`C:\Program Files\Tesseract-OCR\tessdata`,
			`C:\Program Files (x86)\Tesseract-OCR\tessdata`,
		}
	}
	dirs := []string{}
	// Debian and Ubuntu install under a versioned directory.
	if versioned, err := x.Glob("/usr/share/tesseract-ocr/*/tessdata"); err == nil {
		dirs = append(dirs, versioned...)
	}
	return append(dirs,
		"/usr/share/tessdata",
		"/usr/local/share/tessdata",
		"/opt/homebrew/share/tessdata",
	)
}

func findPdftoppm(x executor, goos, popplerDir string) string {
	bin := exeName(goos, binPdftoppm)
	if popplerDir != "" {
		for _, d := range []string{popplerDir, filepath.Join(popplerDir, "bin"), filepath.Join(popplerDir, "Library", "bin")} {
			p := filepath.Join(d, bin)
			if x.IsFile(p) {
				return p
			}
		}
		return ""
	}
	if p, err := x.LookPath(bin); err == nil {
		return p
	}
	return ""
}
