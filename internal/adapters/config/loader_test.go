package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/config"
	"go.trai.ch/libpack/internal/adapters/fs"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const fullConfig = `
name: "@acme/lib"
version: 1.4.0-rc.1
dest: dist
tsconfig:
  project: tsconfig.lib.json
  baseUrl: .
  target: ES2017
  enableShim: true
  paths:
    shared: [libs/shared]
  options:
    strict: "true"
toolchain:
  compiler: [npx, tsc]
  stylesheet: [npx, sass]
  shim: [npx, ngcc]
entryPoints:
  - basePath: projects/lib
    entryFile: src/public_api.ts
    cssUrl: inline
    styleIncludePaths: [styles/*]
    dependencies: [testing]
    externals: [rxjs]
  - name: testing
    basePath: projects/lib/testing
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(log, fs.NewResolver())
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "projects", "lib", "styles", "theme"), 0o750))
	configPath := writeConfig(t, root, fullConfig)

	project, err := newLoader(t).Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "@acme/lib", project.Name)
	assert.Equal(t, "1.4.0-rc.1", project.Version)
	assert.Equal(t, root, project.Root)
	assert.Equal(t, filepath.Join(root, "dist"), project.Dest)
	assert.Equal(t, []string{"npx", "tsc"}, project.Toolchain.Compiler)
	assert.Equal(t, []string{"npx", "sass"}, project.Toolchain.Stylesheet)
	assert.Equal(t, []string{"npx", "ngcc"}, project.Toolchain.Shim)

	require.True(t, project.Graph.Validated())
	order := make([]string, 0, 2)
	for node := range project.Graph.Walk() {
		order = append(order, node.Name().String())
	}
	assert.Equal(t, []string{"@acme/lib/testing", "@acme/lib"}, order)

	primary, ok := project.Graph.Get(domain.NewInternedString("@acme/lib"))
	require.True(t, ok)
	data := primary.Data()
	assert.False(t, data.EntryPoint.IsSecondaryEntryPoint)
	assert.Equal(t, filepath.Join(root, "projects", "lib"), data.EntryPoint.BasePath)
	assert.Equal(t, domain.CSSURLInline, data.EntryPoint.CSSURL)
	assert.Equal(t, []string{filepath.Join(root, "projects", "lib", "styles", "theme")}, data.EntryPoint.StyleIncludePaths)
	assert.Equal(t, []domain.InternedString{domain.NewInternedString("@acme/lib/testing")}, data.EntryPoint.Dependencies)
	assert.Equal(t, []string{"rxjs"}, data.EntryPoint.ExternalModules)
	assert.Equal(t, filepath.Join(root, "dist"), data.EntryPoint.DestinationPath)
	assert.Equal(t, domain.DestinationFiles{
		ESM2015:      filepath.Join(root, "dist", "esm2015", "public_api.js"),
		Declarations: filepath.Join(root, "dist", "public_api.d.ts"),
	}, data.DestinationFiles)

	assert.Equal(t, filepath.Join(root, "tsconfig.lib.json"), data.TsConfig.Project)
	assert.Equal(t, []string{filepath.Join(root, "projects", "lib", "src", "public_api.ts")}, data.TsConfig.RootNames)
	assert.Equal(t, domain.TargetES2017, data.TsConfig.Options.Target)
	assert.Equal(t, root, data.TsConfig.Options.BaseURL)
	assert.True(t, data.TsConfig.Options.EnableShim)
	assert.Equal(t, map[string][]string{"shared": {"libs/shared"}}, data.TsConfig.Options.Paths)
	assert.Equal(t, map[string]string{"strict": "true"}, data.TsConfig.Options.Extra)

	secondary, ok := project.Graph.Get(domain.NewInternedString("@acme/lib/testing"))
	require.True(t, ok)
	sdata := secondary.Data()
	assert.True(t, sdata.EntryPoint.IsSecondaryEntryPoint)
	assert.Equal(t, domain.CSSURLNone, sdata.EntryPoint.CSSURL)
	assert.Equal(t, filepath.Join(root, "dist", "testing"), sdata.EntryPoint.DestinationPath)
	assert.Equal(t, filepath.Join(root, "dist", "esm2015", "testing", "public_api.js"), sdata.DestinationFiles.ESM2015)
	assert.Equal(t, filepath.Join(root, "dist", "testing", "public_api.d.ts"), sdata.DestinationFiles.Declarations)

	sdata.TsConfig.Options.Paths["shared"][0] = "changed"
	assert.Equal(t, "libs/shared", primary.Data().TsConfig.Options.Paths["shared"][0], "entry points do not share compiler options")
}

func TestLoad_DestinationOverrides(t *testing.T) {
	root := t.TempDir()
	configPath := writeConfig(t, root, `
name: lib
entryPoints:
  - entryFile: index.ts
    destinations:
      esm2015: esm/lib.js
      umd: bundles/lib.umd.js
      declarations: /types/lib.d.ts
`)

	project, err := newLoader(t).Load(configPath)
	require.NoError(t, err)

	node, ok := project.Graph.Get(domain.NewInternedString("lib"))
	require.True(t, ok)
	assert.Equal(t, domain.DestinationFiles{
		ESM2015:      filepath.Join(root, "dist", "esm/lib.js"),
		UMD:          filepath.Join(root, "dist", "bundles/lib.umd.js"),
		Declarations: "/types/lib.d.ts",
	}, node.Data().DestinationFiles)
	assert.Equal(t, root, node.EntryPoint().BasePath)
	assert.Empty(t, project.Version)
}

func TestLoad_Discovery(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name: lib\nentryPoints:\n  - {}\n")
	nested := filepath.Join(root, "projects", "lib", "src")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	project, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, project.Root)

	t.Run("not found", func(t *testing.T) {
		dir := t.TempDir()
		_, err := newLoader(t).Load(dir)
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
		require.ErrorIs(t, err, domain.ErrConfiguration)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, dir, zErr.Metadata()["cwd"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "libpack.yaml"))
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		meta    map[string]any
	}{
		{
			name:    "malformed yaml",
			content: "name: [",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "invalid package name",
			content: "name: Not A Package\nentryPoints:\n  - {}\n",
			want:    domain.ErrInvalidEntryPointName,
		},
		{
			name:    "invalid version",
			content: "name: lib\nversion: one\nentryPoints:\n  - {}\n",
			want:    domain.ErrInvalidVersion,
			meta:    map[string]any{"version": "one"},
		},
		{
			name:    "invalid css url",
			content: "name: lib\nentryPoints:\n  - cssUrl: external\n",
			want:    domain.ErrInvalidCSSURL,
			meta:    map[string]any{"entry_point": "lib", "value": "external"},
		},
		{
			name:    "invalid target",
			content: "name: lib\ntsconfig:\n  target: es3\nentryPoints:\n  - {}\n",
			want:    domain.ErrInvalidTarget,
		},
		{
			name:    "no entry points",
			content: "name: lib\n",
			want:    domain.ErrNoEntryPoints,
		},
		{
			name:    "missing dependency",
			content: "name: lib\nentryPoints:\n  - dependencies: [missing]\n",
			want:    domain.ErrMissingDependency,
		},
		{
			name:    "duplicate entry point",
			content: "name: lib\nentryPoints:\n  - {}\n  - name: lib\n",
			want:    domain.ErrEntryPointAlreadyExists,
		},
		{
			name:    "two primaries",
			content: "name: lib\nentryPoints:\n  - {}\n  - name: other\n    secondary: false\n",
			want:    domain.ErrPrimaryEntryPoint,
		},
		{
			name:    "cycle",
			content: "name: lib\nentryPoints:\n  - dependencies: [a]\n  - name: a\n    dependencies: [b]\n  - name: b\n    dependencies: [a]\n",
			want:    domain.ErrCycleDetected,
		},
		{
			name:    "missing style include path",
			content: "name: lib\nentryPoints:\n  - styleIncludePaths: [styles]\n",
			want:    domain.ErrInputNotFound,
			meta:    map[string]any{"entry_point": "lib"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, t.TempDir(), tt.content)

			_, err := newLoader(t).Load(configPath)
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				assert.ErrorIs(t, err, domain.ErrConfiguration)
			}
			if tt.meta != nil {
				var zErr *zerr.Error
				require.ErrorAs(t, err, &zErr)
				for k, v := range tt.meta {
					assert.Equal(t, v, zErr.Metadata()[k], k)
				}
			}
		})
	}
}
