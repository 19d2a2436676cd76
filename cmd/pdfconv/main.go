// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfconv CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfconv/internal/convert"
	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/internal/journal"
	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/internal/ocr"
	"github.com/pdiddy/pdfconv/internal/raster"
	"github.com/pdiddy/pdfconv/internal/textlayer"
	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved once in PersistentPreRunE.
	cfg    types.Config
	logger *logrus.Logger
)

// rootCmd is the base command for the pdfconv CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfconv",
	Short: "Convert PDF files to plain text or Word documents",
	Long: `pdfconv converts PDF files to UTF-8 text or .docx documents. Text is read
from the PDF's embedded text layer; when a file has none (a scan), pages are
rendered with pdftoppm and recognized with Tesseract OCR.

Convert files directly with "convert", or run "watch" to convert every PDF
dropped into a staging folder. "doctor" reports which OCR dependencies were
found.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdfconv.yaml or ~/.config/pdfconv/pdfconv.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")
	pf.String("tesseract", "", "path to the tesseract executable")
	pf.String("tessdata-dir", "", "directory containing <lang>.traineddata")
	pf.String("lang", "", "OCR language code (default por)")
	pf.String("poppler-dir", "", "directory containing pdftoppm")
	pf.String("journal", "", "conversion journal database (default .pdfconv/journal.db)")
	pf.Bool("no-journal", false, "do not record conversions")

	bindFlags(pf, map[string]string{
		"log.level":             "log-level",
		"log.format":            "log-format",
		"engine.tesseract_path": "tesseract",
		"engine.tessdata_dir":   "tessdata-dir",
		"engine.language":       "lang",
		"engine.poppler_dir":    "poppler-dir",
		"journal.path":          "journal",
		"journal.disabled":      "no-journal",
	})
}

// bindFlags binds viper keys to flags so flags override config files and
// environment variables.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfconv"))
		}
	}

	viper.SetEnvPrefix("PDFCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key so that environment
// variables such as PDFCONV_ENGINE_TESSDATA_DIR are seen by Unmarshal.
func setDefaults() {
	d := types.Config{}.WithDefaults()
	defaults := map[string]any{
		"engine.tesseract_path": d.Engine.TesseractPath,
		"engine.tessdata_dir":   d.Engine.TessdataDir,
		"engine.language":       d.Engine.Language,
		"engine.poppler_dir":    d.Engine.PopplerDir,
		"engine.dpi":            d.Engine.DPI,
		"engine.temp_dir":       d.Engine.TempDir,
		"engine.extractor":      string(d.Engine.Extractor),
		"engine.rasterizer":     string(d.Engine.Rasterizer),
		"engine.recognizer":     string(d.Engine.Recognizer),
		"document.font_family":  d.Document.FontFamily,
		"document.font_size":    d.Document.FontSize,
		"watch.input_dir":       d.Watch.InputDir,
		"watch.output_dir":      d.Watch.OutputDir,
		"watch.kind":            string(d.Watch.Kind),
		"watch.ocr":             string(d.Watch.OCR),
		"watch.settle_delay":    d.Watch.SettleDelay,
		"watch.skip_existing":   d.Watch.SkipExisting,
		"journal.path":          d.Journal.Path,
		"journal.disabled":      d.Journal.Disabled,
		"log.level":             d.Log.Level,
		"log.format":            d.Log.Format,
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	return c.WithDefaults(), nil
}

// engines resolves the environment once and builds the configured backends.
type engines struct {
	env        types.Environment
	extractor  textlayer.Extractor
	rasterizer raster.Rasterizer
	recognizer ocr.Recognizer
}

func newEngines(c types.Config) (*engines, error) {
	env := toolchain.Discover(c.Engine)
	run := toolchain.ExecRunner{}

	ext, err := textlayer.New(c.Engine.Extractor)
	if err != nil {
		return nil, err
	}
	ras, err := raster.New(c.Engine.Rasterizer, env, run)
	if err != nil {
		return nil, err
	}
	rec, err := ocr.New(c.Engine.Recognizer, env, run)
	if err != nil {
		return nil, err
	}
	return &engines{env: env, extractor: ext, rasterizer: ras, recognizer: rec}, nil
}

func newPipeline(c types.Config, log logrus.FieldLogger) (*convert.Pipeline, error) {
	e, err := newEngines(c)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"extractor":  e.extractor.Name(),
		"rasterizer": e.rasterizer.Name(),
		"recognizer": e.recognizer.Name(),
		"tesseract":  e.env.Tesseract,
		"pdftoppm":   e.env.Pdftoppm,
	}).Debug("engines resolved")

	return convert.New(e.extractor, e.rasterizer, e.recognizer,
		convert.WithLogger(log),
		convert.WithStyle(docx.StyleFrom(c.Document)),
		convert.WithTempDir(c.Engine.TempDir),
	), nil
}

// openJournal opens the configured journal. A journal that cannot be opened
// is logged and conversion proceeds without it.
func openJournal(c types.Config, log logrus.FieldLogger) *journal.Journal {
	if c.Journal.Disabled {
		return nil
	}
	j, err := journal.Open(c.Journal.Path)
	if err != nil {
		log.WithError(err).Warn("conversion journal unavailable")
		return nil
	}
	return j
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
