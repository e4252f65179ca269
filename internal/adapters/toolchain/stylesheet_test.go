package toolchain_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/toolchain"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newStylesheetProcessor(t *testing.T, command []string, opts ports.StylesheetOptions) (ports.StylesheetProcessor, *mocks.MockCommandRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tc := toolchain.New(runner, mocks.NewMockLogger(ctrl))
	require.NoError(t, tc.Bind(&domain.Project{Root: opts.BasePath, Toolchain: domain.Toolchain{Stylesheet: command}}))

	processor, err := toolchain.NewStylesheetFactory(tc).New(context.Background(), opts)
	require.NoError(t, err)
	return processor, runner
}

func TestStylesheetProcessor_Process(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "button.scss")
	writeFile(t, src, "a { color: red; }")

	processor, runner := newStylesheetProcessor(t, []string{"sass", "--no-source-map"}, ports.StylesheetOptions{
		BasePath:     base,
		CSSURL:       domain.CSSURLInline,
		IncludePaths: []string{"styles", "/shared/styles"},
	})

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *ports.Command) error {
		assert.Equal(t, []string{
			"sass", "--no-source-map",
			"--load-path=" + filepath.Join(base, "styles"),
			"--load-path=/shared/styles",
			"--embed-sources",
			src,
		}, cmd.Args)
		assert.Equal(t, base, cmd.Dir)
		_, err := io.WriteString(cmd.Stdout, "a{color:red}")
		return err
	})

	css, err := processor.Process(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "a{color:red}", css)

	again, err := processor.Process(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, css, again, "unchanged stylesheets are served from the processor")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(src, later, later))
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *ports.Command) error {
		_, err := io.WriteString(cmd.Stdout, "a{color:blue}")
		return err
	})

	css, err = processor.Process(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "a{color:blue}", css)
}

func TestStylesheetProcessor_PlainCSSWithoutCommand(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "theme.css")
	writeFile(t, src, ".theme{}")

	processor, _ := newStylesheetProcessor(t, nil, ports.StylesheetOptions{BasePath: base})

	css, err := processor.Process(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, ".theme{}", css)
}

func TestStylesheetProcessor_Errors(t *testing.T) {
	base := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		processor, _ := newStylesheetProcessor(t, []string{"sass"}, ports.StylesheetOptions{BasePath: base})
		_, err := processor.Process(context.Background(), filepath.Join(base, "missing.scss"))
		require.ErrorIs(t, err, domain.ErrStylesheet)
	})

	t.Run("preprocessor source without command", func(t *testing.T) {
		src := filepath.Join(base, "mixins.scss")
		writeFile(t, src, "@mixin a {}")
		processor, _ := newStylesheetProcessor(t, nil, ports.StylesheetOptions{BasePath: base})
		_, err := processor.Process(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrStylesheet)
		require.ErrorIs(t, err, domain.ErrEmptyCommand)
	})

	t.Run("command failure", func(t *testing.T) {
		src := filepath.Join(base, "broken.scss")
		writeFile(t, src, "a {")
		processor, runner := newStylesheetProcessor(t, []string{"sass"}, ports.StylesheetOptions{BasePath: base})
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ErrCommandFailed)

		_, err := processor.Process(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrStylesheet)
		require.ErrorIs(t, err, domain.ErrCommandFailed)
	})
}
