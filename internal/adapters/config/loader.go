// Package config provides the configuration loader for libpack.
package config

import (
	"cmp"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

const defaultEntryFile = "public_api.ts"

var validEntryPointNameRegex = regexp.MustCompile(`^(@[a-z0-9~-][a-z0-9._~-]*/)?[a-z0-9~-][a-z0-9._~-]*(/[a-z0-9._~-]+)*$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	Resolver ports.InputResolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, resolver ports.InputResolver) *Loader {
	return &Loader{Logger: logger, Resolver: resolver}
}

// Load reads the project configuration. A directory is searched for libpack.yaml, walking
// up through its parents.
func (l *Loader) Load(path string) (*domain.Project, error) {
	configPath, err := findConfiguration(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", configPath)
	}

	var libfile Libfile
	if err := yaml.Unmarshal(data, &libfile); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", configPath)
	}

	l.Logger.Debug("loaded configuration", "path", configPath, "entry_points", len(libfile.EntryPoints))
	return l.build(&libfile, filepath.Dir(configPath))
}

func findConfiguration(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "stat configuration"), "path", abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, domain.DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "find configuration"), "cwd", abs)
		}
		dir = parent
	}
}

func (l *Loader) build(libfile *Libfile, configDir string) (*domain.Project, error) {
	if !validEntryPointNameRegex.MatchString(libfile.Name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidEntryPointName, "package name"), "name", libfile.Name)
	}

	version, err := canonicalVersion(libfile.Version)
	if err != nil {
		return nil, err
	}

	root := resolvePath(configDir, libfile.Root)
	dest := resolvePath(root, cmp.Or(libfile.Dest, domain.DefaultDestDir))

	base, err := l.baseTsConfig(&libfile.TsConfig, root)
	if err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	for i := range libfile.EntryPoints {
		data, err := l.nodeData(libfile.Name, &libfile.EntryPoints[i], root, dest, base)
		if err != nil {
			return nil, err
		}
		if _, err := g.AddEntryPoint(data); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &domain.Project{
		Name:    libfile.Name,
		Version: version,
		Root:    root,
		Dest:    dest,
		Toolchain: domain.Toolchain{
			Compiler:   slices.Clone(libfile.Toolchain.Compiler),
			Stylesheet: slices.Clone(libfile.Toolchain.Stylesheet),
			Shim:       slices.Clone(libfile.Toolchain.Shim),
		},
		Graph: g,
	}, nil
}

// canonicalVersion validates a semantic version with or without the leading "v".
func canonicalVersion(version string) (string, error) {
	if version == "" {
		return "", nil
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidVersion, "validate version"), "version", version)
	}
	return strings.TrimPrefix(v, "v"), nil
}

func (l *Loader) baseTsConfig(dto *TsConfigDTO, root string) (domain.TsConfig, error) {
	target, err := domain.ParseScriptTarget(dto.Target)
	if err != nil {
		return domain.TsConfig{}, err
	}

	cfg := domain.TsConfig{
		Options: domain.CompilerOptions{
			Target:     target,
			EnableShim: dto.EnableShim,
			Extra:      dto.Options,
		},
	}
	if dto.Project != "" {
		cfg.Project = resolvePath(root, dto.Project)
	}
	if dto.BaseURL != "" {
		cfg.Options.BaseURL = resolvePath(root, dto.BaseURL)
	}
	if len(dto.Paths) > 0 {
		cfg.Options.Paths = make(map[string][]string, len(dto.Paths))
		for k, v := range dto.Paths {
			cfg.Options.Paths[k] = slices.Clone(v)
		}
	}
	return cfg, nil
}

func (l *Loader) nodeData(
	pkg string,
	dto *EntryPointDTO,
	root, dest string,
	base domain.TsConfig,
) (*domain.NodeData, error) {
	name, secondary := entryPointName(pkg, dto)
	if !validEntryPointNameRegex.MatchString(name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidEntryPointName, "entry point name"), "name", name)
	}

	cssURL, err := domain.ParseCSSURL(dto.CSSURL)
	if err != nil {
		return nil, zerr.With(err, "entry_point", name)
	}

	basePath := resolvePath(root, dto.BasePath)
	includes, err := l.styleIncludePaths(dto.StyleIncludePaths, basePath)
	if err != nil {
		return nil, zerr.With(err, "entry_point", name)
	}

	sub := ""
	if secondary {
		sub = strings.TrimPrefix(name, pkg+"/")
	}
	entryFile := cmp.Or(dto.EntryFile, defaultEntryFile)

	ep := domain.EntryPoint{
		Name:                  domain.NewInternedString(name),
		IsSecondaryEntryPoint: secondary,
		BasePath:              basePath,
		EntryFile:             entryFile,
		DestinationPath:       filepath.Join(dest, sub),
		CSSURL:                cssURL,
		StyleIncludePaths:     includes,
		Dependencies:          domain.NewInternedStrings(qualify(pkg, dto.Dependencies)),
		ExternalModules:       slices.Clone(dto.Externals),
	}

	ts := base.Clone()
	ts.RootNames = []string{ep.EntryFilePath()}

	return &domain.NodeData{
		EntryPoint:       ep,
		TsConfig:         ts,
		DestinationFiles: destinations(dest, sub, entryFile, &dto.Destinations),
	}, nil
}

// entryPointName returns the full name of an entry point and whether it is secondary.
// Without a name the entry point is the package root. A relative secondary name is
// placed below the package.
func entryPointName(pkg string, dto *EntryPointDTO) (string, bool) {
	name := dto.Name
	if name == "" {
		name = pkg
	}
	secondary := name != pkg
	if dto.Secondary != nil {
		secondary = *dto.Secondary
	}
	if secondary && !strings.HasPrefix(name, pkg+"/") && name != pkg {
		name = pkg + "/" + name
	}
	return name, secondary
}

func qualify(pkg string, deps []string) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		if dep != pkg && !strings.HasPrefix(dep, pkg+"/") && !strings.HasPrefix(dep, "@") {
			dep = pkg + "/" + dep
		}
		out = append(out, dep)
	}
	return out
}

// destinations derives the output files of an entry point. The compiler mirrors the entry
// file name into the module and declaration directories.
func destinations(dest, sub, entryFile string, override *DestinationsDTO) domain.DestinationFiles {
	stem := strings.TrimSuffix(filepath.Base(entryFile), filepath.Ext(entryFile))

	files := domain.DestinationFiles{
		ESM2015:      filepath.Join(dest, "esm2015", sub, stem+".js"),
		Declarations: filepath.Join(dest, sub, stem+".d.ts"),
	}
	if override.ESM2015 != "" {
		files.ESM2015 = resolvePath(dest, override.ESM2015)
	}
	if override.Declarations != "" {
		files.Declarations = resolvePath(dest, override.Declarations)
	}
	if override.FESM2015 != "" {
		files.FESM2015 = resolvePath(dest, override.FESM2015)
	}
	if override.UMD != "" {
		files.UMD = resolvePath(dest, override.UMD)
	}
	if override.Metadata != "" {
		files.Metadata = resolvePath(dest, override.Metadata)
	}
	return files
}

func (l *Loader) styleIncludePaths(patterns []string, basePath string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	paths, err := l.Resolver.ResolveInputs(patterns, basePath)
	if err != nil {
		return nil, zerr.Wrap(err, "resolve style include paths")
	}
	return paths, nil
}

func resolvePath(base, path string) string {
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
