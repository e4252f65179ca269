package toolchain_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/toolchain"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type compilerHarness struct {
	root     string
	runner   *mocks.MockCommandRunner
	logger   *mocks.MockLogger
	tc       *toolchain.Toolchain
	compiler *toolchain.Compiler
	req      *ports.CompileRequest
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newCompilerHarness(t *testing.T, externals ...string) *compilerHarness {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	h := &compilerHarness{
		root:   root,
		runner: mocks.NewMockCommandRunner(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	h.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	h.tc = toolchain.New(h.runner, h.logger)
	require.NoError(t, h.tc.Bind(&domain.Project{
		Root:      root,
		Toolchain: domain.Toolchain{Compiler: []string{"tsc", "--pretty"}},
	}))
	h.compiler = toolchain.NewCompiler(h.tc)

	g := domain.NewGraph()
	node, err := g.AddEntryPoint(&domain.NodeData{
		EntryPoint: domain.EntryPoint{
			Name:            domain.NewInternedString("@acme/lib"),
			BasePath:        filepath.Join(root, "projects", "lib"),
			EntryFile:       "src/public_api.ts",
			DestinationPath: filepath.Join(root, "dist"),
			CSSURL:          domain.CSSURLNone,
			ExternalModules: externals,
		},
		DestinationFiles: domain.DestinationFiles{
			ESM2015:      filepath.Join(root, "dist", "esm2015", "lib.js"),
			Declarations: filepath.Join(root, "dist", "lib.d.ts"),
		},
	})
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	require.NoError(t, node.Begin())

	h.req = &ports.CompileRequest{
		Graph: g,
		Node:  node,
		TsConfig: domain.TsConfig{
			Project: filepath.Join(root, "tsconfig.json"),
			Options: domain.CompilerOptions{
				BaseURL: root,
				Paths:   map[string][]string{"@acme/lib/testing": {filepath.Join(root, "dist", "testing")}},
				Extra:   map[string]string{"strict": "true"},
			},
		},
		ModuleResolution: domain.NewModuleResolutionCache(),
		Options: ports.CompileOptions{
			OutDir:         filepath.Join(root, "dist", "esm2015"),
			DeclarationDir: filepath.Join(root, "dist"),
			Declaration:    true,
			Target:         domain.TargetES2015,
		},
	}
	return h
}

type renderedConfig struct {
	Extends         string         `json:"extends"`
	CompilerOptions map[string]any `json:"compilerOptions"`
	Files           []string       `json:"files"`
}

func readConfig(t *testing.T, path string) renderedConfig {
	t.Helper()
	//nolint:gosec // Test file with controlled path
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg renderedConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	return cfg
}

func TestCompiler_Compile(t *testing.T) {
	h := newCompilerHarness(t, "rxjs")
	writeFile(t, filepath.Join(h.root, "node_modules", "rxjs", "package.json"), "{}")

	var configPath string
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *ports.Command) error {
		require.Len(t, cmd.Args, 4)
		assert.Equal(t, []string{"tsc", "--pretty", "-p"}, cmd.Args[:3])
		assert.Equal(t, h.root, cmd.Dir)
		configPath = cmd.Args[3]
		return nil
	})

	require.NoError(t, h.compiler.Compile(context.Background(), h.req))

	assert.Equal(t, filepath.Join(h.root, domain.DefaultStateDir, "tsconfig", "tsconfig.acme__lib.json"), configPath)
	cfg := readConfig(t, configPath)
	assert.Equal(t, filepath.Join(h.root, "tsconfig.json"), cfg.Extends)
	assert.Equal(t, []string{filepath.Join(h.root, "projects", "lib", "src", "public_api.ts")}, cfg.Files)

	opts := cfg.CompilerOptions
	assert.Equal(t, filepath.Join(h.root, "dist", "esm2015"), opts["outDir"])
	assert.Equal(t, filepath.Join(h.root, "dist"), opts["declarationDir"])
	assert.Equal(t, true, opts["declaration"])
	assert.Equal(t, "es2015", opts["target"])
	assert.Equal(t, h.root, opts["baseUrl"])
	assert.Equal(t, "true", opts["strict"])
	assert.Equal(t, map[string]any{
		"@acme/lib/testing": []any{filepath.Join(h.root, "dist", "testing")},
		"rxjs":              []any{filepath.Join(h.root, "node_modules", "rxjs")},
	}, opts["paths"])

	assert.Equal(t, 1, h.req.ModuleResolution.Len())
	_, hasRxjs := h.req.TsConfig.Options.Paths["rxjs"]
	assert.False(t, hasRxjs, "the request configuration is not modified")
}

func TestCompiler_Compile_ResolutionCached(t *testing.T) {
	h := newCompilerHarness(t, "rxjs")
	h.req.ModuleResolution.Store("rxjs", "/cached/rxjs")
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, h.compiler.Compile(context.Background(), h.req))
}

func TestCompiler_Compile_ShimGate(t *testing.T) {
	t.Run("modules pass the gate before resolution", func(t *testing.T) {
		h := newCompilerHarness(t, "rxjs")
		writeFile(t, filepath.Join(h.root, "node_modules", "rxjs", "package.json"), "{}")

		gate := mocks.NewMockShimGate(gomock.NewController(t))
		gate.EXPECT().EnsureModule(gomock.Any(), "rxjs").Return(nil)
		h.req.Shim = gate
		h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, h.compiler.Compile(context.Background(), h.req))
	})

	t.Run("gate failure is returned unchanged", func(t *testing.T) {
		h := newCompilerHarness(t, "rxjs")

		errShim := zerr.Wrap(domain.ErrShim, "shim module")
		gate := mocks.NewMockShimGate(gomock.NewController(t))
		gate.EXPECT().EnsureModule(gomock.Any(), "rxjs").Return(errShim)
		h.req.Shim = gate

		err := h.compiler.Compile(context.Background(), h.req)
		require.ErrorIs(t, err, domain.ErrShim)
		assert.NotErrorIs(t, err, domain.ErrCompilation)
	})
}

func TestCompiler_Compile_MissingExternal(t *testing.T) {
	h := newCompilerHarness(t, "missing-module")

	err := h.compiler.Compile(context.Background(), h.req)
	require.ErrorIs(t, err, domain.ErrCompilation)
	assert.Contains(t, err.Error(), "module not found")
}

func TestCompiler_Compile_CompilerFailure(t *testing.T) {
	h := newCompilerHarness(t)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(zerr.With(zerr.Wrap(domain.ErrCommandFailed, "exit status 2"), "stderr", "TS2307"))

	err := h.compiler.Compile(context.Background(), h.req)
	require.ErrorIs(t, err, domain.ErrCompilation)
	require.ErrorIs(t, err, domain.ErrCommandFailed)
}

func TestCompiler_Compile_NoCompilerConfigured(t *testing.T) {
	h := newCompilerHarness(t)
	require.NoError(t, h.tc.Bind(&domain.Project{Root: h.root}))

	err := h.compiler.Compile(context.Background(), h.req)
	require.ErrorIs(t, err, domain.ErrEmptyCommand)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCompiler_Compile_Stylesheets(t *testing.T) {
	h := newCompilerHarness(t)
	base := filepath.Join(h.root, "projects", "lib")
	button := filepath.Join(base, "src", "button.scss")
	writeFile(t, button, "$c: red; a { color: $c; }")
	writeFile(t, filepath.Join(base, "node_modules", "dep", "dep.css"), "ignored")
	writeFile(t, filepath.Join(base, "src", "public_api.ts"), "export {}")

	node := h.req.Node
	data := node.Data()
	data.EntryPoint.CSSURL = domain.CSSURLInline
	node.Reset()
	require.NoError(t, node.SetData(&data))
	require.NoError(t, node.Begin())

	processor := mocks.NewMockStylesheetProcessor(gomock.NewController(t))
	processor.EXPECT().Process(gomock.Any(), button).Return("a{color:red}", nil)
	h.req.Stylesheets = processor
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, h.compiler.Compile(context.Background(), h.req))

	//nolint:gosec // Test file with controlled path
	css, err := os.ReadFile(filepath.Join(h.root, "dist", "esm2015", "src", "button.css"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:red}", string(css))
}
