package mappaintdal

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/jamesrr39/mappaint-app/styling/paintscript"
)

const (
	ThemeFileSuffixJSON        = ".json"
	ThemeFileSuffixPaintScript = ".mps"
)

type ThemeFormat string

const (
	ThemeFormatJSON        ThemeFormat = "json"
	ThemeFormatPaintScript ThemeFormat = "paintscript"
)

// ThemeFormatForFileName maps a theme file name onto its format by extension.
func ThemeFormatForFileName(fileName string) (ThemeFormat, errorsx.Error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ThemeFileSuffixJSON:
		return ThemeFormatJSON, nil
	case ThemeFileSuffixPaintScript:
		return ThemeFormatPaintScript, nil
	}

	return "", errorsx.Errorf("unsupported theme file type %q (supported: %s, %s)", ext, ThemeFileSuffixJSON, ThemeFileSuffixPaintScript)
}

// ParseThemeDocument decodes raw theme bytes in the given format.
func ParseThemeDocument(data []byte, format ThemeFormat) (*mapthemejson.ThemeDocument, errorsx.Error) {
	switch format {
	case ThemeFormatJSON:
		document := new(mapthemejson.ThemeDocument)
		err := json.Unmarshal(data, document)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		return document, nil
	case ThemeFormatPaintScript:
		return paintscript.ParseDocument(string(data))
	}

	return nil, errorsx.Errorf("unknown theme format: %q", format)
}

// ParseTheme decodes and validates raw theme bytes in the given format.
func ParseTheme(data []byte, format ThemeFormat) (*styling.Theme, errorsx.Error) {
	document, err := ParseThemeDocument(data, format)
	if err != nil {
		return nil, err
	}

	return document.ToTheme()
}
