package toolchain

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// stylesheetExtensions are the sources handed to the stylesheet processor.
var stylesheetExtensions = []string{".css", ".scss", ".sass", ".less"}

var _ ports.SourceCompiler = (*Compiler)(nil)

// Compiler implements ports.SourceCompiler by writing the derived compiler configuration
// to the state directory and running the configured compiler command on it.
type Compiler struct {
	toolchain *Toolchain
}

// NewCompiler creates a new Compiler.
func NewCompiler(toolchain *Toolchain) *Compiler {
	return &Compiler{toolchain: toolchain}
}

// Compile builds the entry point of req.Node.
func (c *Compiler) Compile(ctx context.Context, req *ports.CompileRequest) error {
	data := req.Node.Data()
	name := data.EntryPoint.Name.String()

	cfg := req.TsConfig.Clone()
	if err := c.resolveExternals(ctx, req, &data.EntryPoint, &cfg); err != nil {
		return err
	}

	if err := c.processStylesheets(ctx, req, &data); err != nil {
		return err
	}

	configPath, err := c.writeConfig(name, &data.EntryPoint, cfg, req.Options)
	if err != nil {
		return err
	}

	cmd, err := c.toolchain.command(ToolCompiler)
	if err != nil {
		return err
	}
	root, _ := c.toolchain.dirs()

	c.toolchain.logger.Debug("compiling entry point", "entry_point", name, "config", configPath)
	err = c.toolchain.runner.Run(ctx, &ports.Command{
		Args: append(cmd, "-p", configPath),
		Dir:  root,
	})
	if err != nil {
		return classify(domain.ErrCompilation, "compile entry point", err, "entry_point", name)
	}
	return nil
}

// resolveExternals locates every external module under node_modules and pins the import
// to the resolved package when the configuration has no mapping for it. Modules are
// passed through the shim gate first so the shimmed form is the one resolved.
func (c *Compiler) resolveExternals(
	ctx context.Context,
	req *ports.CompileRequest,
	ep *domain.EntryPoint,
	cfg *domain.TsConfig,
) error {
	for _, module := range ep.ExternalModules {
		if req.Shim != nil {
			if err := req.Shim.EnsureModule(ctx, module); err != nil {
				return err
			}
		}

		resolved, err := req.ModuleResolution.Resolve(module, func(specifier string) (string, error) {
			return resolveNodeModule(ep.BasePath, specifier)
		})
		if err != nil {
			return classify(domain.ErrCompilation, "resolve external module", err,
				"entry_point", ep.Name.String(), "module", module)
		}

		if cfg.Options.Paths == nil {
			cfg.Options.Paths = make(map[string][]string)
		}
		if _, ok := cfg.Options.Paths[module]; !ok {
			cfg.Options.Paths[module] = []string{resolved}
		}
	}
	return nil
}

// resolveNodeModule finds the package directory of specifier in the nearest node_modules
// directory at or above from.
func resolveNodeModule(from, specifier string) (string, error) {
	dir := filepath.Clean(from)
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(specifier))
		if _, err := os.Stat(filepath.Join(candidate, "package.json")); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.New("module not found"), "module", specifier)
		}
		dir = parent
	}
}

// processStylesheets emits the CSS of every stylesheet below the base path into the
// output directory, keeping the relative layout. Directories of other entry points are
// left to their own compilation.
func (c *Compiler) processStylesheets(ctx context.Context, req *ports.CompileRequest, data *domain.NodeData) error {
	if req.Stylesheets == nil || data.EntryPoint.CSSURL == domain.CSSURLNone {
		return nil
	}

	base := filepath.Clean(data.EntryPoint.BasePath)
	nested := make(map[string]bool)
	for _, dir := range req.Graph.NestedBasePaths(data.EntryPoint.Name) {
		nested[dir] = true
	}

	var sources []string
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			skip := d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") || path == req.Options.OutDir || nested[path]
			if path != base && skip {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range stylesheetExtensions {
			if filepath.Ext(path) == ext {
				sources = append(sources, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return classify(domain.ErrStylesheet, "collect stylesheets", err, "path", base)
	}

	for _, src := range sources {
		css, err := req.Stylesheets.Process(ctx, src)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, src)
		if err != nil {
			return classify(domain.ErrStylesheet, "place stylesheet", err, "path", src)
		}
		out := filepath.Join(req.Options.OutDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".css")
		if err := writeFile(out, []byte(css)); err != nil {
			return classify(domain.ErrStylesheet, "write stylesheet", err, "path", out)
		}
	}
	return nil
}

// configFile is the JSON layout of a compiler configuration file.
type configFile struct {
	Extends         string         `json:"extends,omitempty"`
	CompilerOptions map[string]any `json:"compilerOptions"`
	Files           []string       `json:"files"`
}

// writeConfig renders the derived configuration of one entry point and returns its path.
func (c *Compiler) writeConfig(
	name string,
	ep *domain.EntryPoint,
	cfg domain.TsConfig, //nolint:gocritic // derived copy owned by the caller
	opts ports.CompileOptions,
) (string, error) {
	options := make(map[string]any, len(cfg.Options.Extra)+8) //nolint:mnd // known options
	for k, v := range cfg.Options.Extra {
		options[k] = v
	}
	maps.Copy(options, map[string]any{
		"outDir":         opts.OutDir,
		"declarationDir": opts.DeclarationDir,
		"declaration":    opts.Declaration,
		"target":         string(opts.Target),
	})
	if cfg.Options.BaseURL != "" {
		options["baseUrl"] = cfg.Options.BaseURL
	}
	if len(cfg.Options.Paths) > 0 {
		options["paths"] = cfg.Options.Paths
	}

	files := cfg.RootNames
	if len(files) == 0 {
		files = []string{ep.EntryFilePath()}
	}

	out, err := json.MarshalIndent(configFile{
		Extends:         cfg.Project,
		CompilerOptions: options,
		Files:           files,
	}, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal compiler configuration")
	}

	_, stateDir := c.toolchain.dirs()
	path := filepath.Join(stateDir, "tsconfig", configFileName(name))
	if err := writeFile(path, out); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write compiler configuration"), "path", path)
	}
	return path, nil
}

// configFileName maps an entry point name to a flat file name.
func configFileName(name string) string {
	r := strings.NewReplacer("/", "__", "@", "", "\\", "__")
	return "tsconfig." + r.Replace(name) + ".json"
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	//nolint:gosec // Output files must be readable by downstream tools
	return os.WriteFile(path, data, 0o644)
}
