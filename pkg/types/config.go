// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractBackend identifies the text-layer extraction library.
type ExtractBackend string

const (
	ExtractNative ExtractBackend = "native"
	ExtractMuPDF  ExtractBackend = "mupdf"
)

// RasterBackend identifies the page rasterizer.
type RasterBackend string

const (
	RasterPdftoppm RasterBackend = "pdftoppm"
	RasterMuPDF    RasterBackend = "mupdf"
)

// OCRBackend identifies the character recognizer.
type OCRBackend string

const (
	OCRTesseract OCRBackend = "tesseract"
	OCRGosseract OCRBackend = "gosseract"
)

// EngineConfig holds the locations of the external engines and the backend
// selection for each pipeline stage.
type EngineConfig struct {
	// TesseractPath is an explicit path to the tesseract executable. Empty
	// means search PATH and common install locations.
	TesseractPath string `json:"tesseract_path" yaml:"tesseract_path" mapstructure:"tesseract_path"`

	// TessdataDir is the directory holding <language>.traineddata files.
	TessdataDir string `json:"tessdata_dir" yaml:"tessdata_dir" mapstructure:"tessdata_dir"`

	// Language is the single OCR language (default "por").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// PopplerDir is the directory containing the pdftoppm executable.
	PopplerDir string `json:"poppler_dir" yaml:"poppler_dir" mapstructure:"poppler_dir"`

	// DPI is the rasterization resolution (default 300).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// TempDir is the parent of the per-request page image directories.
	// Empty means os.TempDir.
	TempDir string `json:"temp_dir" yaml:"temp_dir" mapstructure:"temp_dir"`

	Extractor  ExtractBackend `json:"extractor" yaml:"extractor" mapstructure:"extractor"`
	Rasterizer RasterBackend  `json:"rasterizer" yaml:"rasterizer" mapstructure:"rasterizer"`
	Recognizer OCRBackend     `json:"recognizer" yaml:"recognizer" mapstructure:"recognizer"`
}

// DocumentConfig holds the paragraph style used for document output.
type DocumentConfig struct {
	// FontFamily is the default font (default "Arial").
	FontFamily string `json:"font_family" yaml:"font_family" mapstructure:"font_family"`

	// FontSize is the default font size in points (default 11).
	FontSize int `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// WatchConfig holds settings for the folder watcher.
type WatchConfig struct {
	// InputDir is the staging directory watched for new PDFs.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives converted files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Kind selects the output format for every converted file.
	Kind OutputKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// OCR selects the extraction strategy for every converted file.
	OCR OCRMode `json:"ocr" yaml:"ocr" mapstructure:"ocr"`

	// SettleDelay is the pause between detecting a file and reading it,
	// giving copy operations time to finish (default 1s).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay" mapstructure:"settle_delay"`

	// SkipExisting disables the initial pass over PDFs already present in
	// InputDir.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing" mapstructure:"skip_existing"`
}

// JournalConfig holds settings for the conversion journal.
type JournalConfig struct {
	// Path is the SQLite database file (default ".pdfconv/journal.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Disabled turns recording off.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json" (default "text").
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings loaded at startup.
type Config struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine" mapstructure:"engine"`
	Document DocumentConfig `json:"document" yaml:"document" mapstructure:"document"`
	Watch    WatchConfig    `json:"watch" yaml:"watch" mapstructure:"watch"`
	Journal  JournalConfig  `json:"journal" yaml:"journal" mapstructure:"journal"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

const (
	DefaultLanguage    = "por"
	DefaultDPI         = 300
	DefaultFontFamily  = "Arial"
	DefaultFontSize    = 11
	DefaultSettleDelay = time.Second
	DefaultInputDir    = "pdfs_para_converter"
	DefaultOutputDir   = "arquivos_convertidos"
	DefaultJournalPath = ".pdfconv/journal.db"
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Engine.Language == "" {
		c.Engine.Language = DefaultLanguage
	}
	if c.Engine.DPI <= 0 {
		c.Engine.DPI = DefaultDPI
	}
	if c.Engine.Extractor == "" {
		c.Engine.Extractor = ExtractNative
	}
	if c.Engine.Rasterizer == "" {
		c.Engine.Rasterizer = RasterPdftoppm
	}
	if c.Engine.Recognizer == "" {
		c.Engine.Recognizer = OCRTesseract
	}
	if c.Document.FontFamily == "" {
		c.Document.FontFamily = DefaultFontFamily
	}
	if c.Document.FontSize <= 0 {
		c.Document.FontSize = DefaultFontSize
	}
	if c.Watch.InputDir == "" {
		c.Watch.InputDir = DefaultInputDir
	}
	if c.Watch.OutputDir == "" {
		c.Watch.OutputDir = DefaultOutputDir
	}
	if c.Watch.Kind == "" {
		c.Watch.Kind = OutputText
	}
	if c.Watch.OCR == "" {
		c.Watch.OCR = OCRAuto
	}
	if c.Watch.SettleDelay <= 0 {
		c.Watch.SettleDelay = DefaultSettleDelay
	}
	if c.Journal.Path == "" {
		c.Journal.Path = DefaultJournalPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return c
}
