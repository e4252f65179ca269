package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// CSSURL controls how url() references inside stylesheets are handled.
type CSSURL string

const (
	// CSSURLInline embeds referenced assets into the processed stylesheet.
	CSSURLInline CSSURL = "inline"
	// CSSURLNone leaves url() references untouched.
	CSSURLNone CSSURL = "none"
)

// ParseCSSURL converts a configuration value into a CSSURL.
// An empty value defaults to CSSURLNone.
func ParseCSSURL(s string) (CSSURL, error) {
	switch CSSURL(s) {
	case "":
		return CSSURLNone, nil
	case CSSURLInline, CSSURLNone:
		return CSSURL(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidCSSURL, "parse css url"), "value", s)
	}
}

// EntryPoint is an independently importable unit of a library project.
// The primary entry point is the package root; secondary entry points are sub-exports.
// An EntryPoint is immutable for the duration of a build run.
type EntryPoint struct {
	Name                  InternedString
	IsSecondaryEntryPoint bool
	BasePath              string
	EntryFile             string
	DestinationPath       string
	CSSURL                CSSURL
	StyleIncludePaths     []string
	Dependencies          []InternedString
	ExternalModules       []string
}

// EntryFilePath returns the entry file joined with the base path.
func (e *EntryPoint) EntryFilePath() string {
	if filepath.IsAbs(e.EntryFile) {
		return e.EntryFile
	}
	return filepath.Join(e.BasePath, e.EntryFile)
}

// DestinationFiles are the output paths of every format emitted for one entry point.
type DestinationFiles struct {
	ESM2015      string `json:"esm2015,omitzero"`
	FESM2015     string `json:"fesm2015,omitzero"`
	UMD          string `json:"umd,omitzero"`
	Declarations string `json:"declarations,omitzero"`
	Metadata     string `json:"metadata,omitzero"`
}

// Validate checks that the paths the compilation stage derives its output directories from are set.
func (d DestinationFiles) Validate() error {
	if d.ESM2015 == "" {
		return zerr.With(zerr.Wrap(ErrMissingDestination, "validate destinations"), "format", "esm2015")
	}
	if d.Declarations == "" {
		return zerr.With(zerr.Wrap(ErrMissingDestination, "validate destinations"), "format", "declarations")
	}
	return nil
}

// Required returns the files a successful compilation must have produced.
func (d DestinationFiles) Required() []string {
	return []string{d.ESM2015, d.Declarations}
}

// All returns every configured destination file.
func (d DestinationFiles) All() []string {
	files := make([]string, 0, 5) //nolint:mnd // number of formats
	for _, f := range []string{d.ESM2015, d.FESM2015, d.UMD, d.Declarations, d.Metadata} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}
