package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ScriptTarget is the language level the source compiler emits.
type ScriptTarget string

const (
	// TargetES5 emits ES5.
	TargetES5 ScriptTarget = "es5"
	// TargetES2015 emits ES2015. Entry point compilation always uses this level.
	TargetES2015 ScriptTarget = "es2015"
	// TargetES2017 emits ES2017.
	TargetES2017 ScriptTarget = "es2017"
	// TargetES2020 emits ES2020.
	TargetES2020 ScriptTarget = "es2020"
	// TargetESNext emits the latest supported level.
	TargetESNext ScriptTarget = "esnext"
)

// ParseScriptTarget converts a configuration value into a ScriptTarget.
// Matching is case-insensitive and an empty value defaults to TargetES2015.
func ParseScriptTarget(s string) (ScriptTarget, error) {
	t := ScriptTarget(strings.ToLower(s))
	switch t {
	case "":
		return TargetES2015, nil
	case TargetES5, TargetES2015, TargetES2017, TargetES2020, TargetESNext:
		return t, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidTarget, "parse script target"), "value", s)
	}
}

// CompilerOptions is the subset of compiler options the build manipulates.
// Options the build does not interpret are carried in Extra.
type CompilerOptions struct {
	BaseURL        string              `json:"baseUrl,omitempty"`
	Paths          map[string][]string `json:"paths,omitempty"`
	Target         ScriptTarget        `json:"target,omitempty"`
	OutDir         string              `json:"outDir,omitempty"`
	DeclarationDir string              `json:"declarationDir,omitempty"`
	Declaration    bool                `json:"declaration,omitempty"`
	EnableShim     bool                `json:"enableShim,omitempty"`
	Extra          map[string]string   `json:"-"`
}

// TsConfig is the compiler configuration of one entry point.
// A TsConfig is treated as immutable: derived configurations are built from a Clone.
type TsConfig struct {
	Project   string          `json:"-"`
	RootNames []string        `json:"files,omitempty"`
	Options   CompilerOptions `json:"compilerOptions"`
}

// Clone returns a deep copy of the configuration.
func (c TsConfig) Clone() TsConfig { //nolint:gocritic // value receiver keeps the source untouched
	out := c
	out.RootNames = slices.Clone(c.RootNames)
	out.Options.Extra = maps.Clone(c.Options.Extra)
	if c.Options.Paths != nil {
		out.Options.Paths = make(map[string][]string, len(c.Options.Paths))
		for k, v := range c.Options.Paths {
			out.Options.Paths[k] = slices.Clone(v)
		}
	}
	return out
}
