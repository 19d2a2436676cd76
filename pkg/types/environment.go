// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Environment holds the engine locations resolved once at startup. An empty
// path means the dependency could not be located.
type Environment struct {
	// Tesseract is the absolute path of the tesseract executable.
	Tesseract string `json:"tesseract" yaml:"tesseract"`

	// TessdataDir is the directory holding LanguageData.
	TessdataDir string `json:"tessdata_dir" yaml:"tessdata_dir"`

	// LanguageData is the path of <Language>.traineddata.
	LanguageData string `json:"language_data" yaml:"language_data"`

	// Language is the OCR language code.
	Language string `json:"language" yaml:"language"`

	// Pdftoppm is the absolute path of Poppler's pdftoppm executable.
	Pdftoppm string `json:"pdftoppm" yaml:"pdftoppm"`

	// DPI is the rasterization resolution.
	DPI int `json:"dpi" yaml:"dpi"`
}
