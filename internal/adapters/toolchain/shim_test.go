package toolchain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/toolchain"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newShimProcessor(t *testing.T, command []string) (*toolchain.ShimProcessor, *mocks.MockCommandRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	tc := toolchain.New(runner, log)
	require.NoError(t, tc.Bind(&domain.Project{Root: "/work", Toolchain: domain.Toolchain{Shim: command}}))
	return toolchain.NewShimProcessor(tc), runner
}

func TestShimProcessor(t *testing.T) {
	req := ports.ShimRequest{BasePath: "/work", Project: "/work/tsconfig.lib.json"}
	source := filepath.Join("/work", "node_modules")

	t.Run("whole project", func(t *testing.T) {
		shim, runner := newShimProcessor(t, []string{"shim-cli"})
		runner.EXPECT().Run(gomock.Any(), &ports.Command{
			Args: []string{"shim-cli", "--source", source, "--tsconfig", "/work/tsconfig.lib.json"},
			Dir:  "/work",
		}).Return(nil)

		require.NoError(t, shim.ProcessAll(context.Background(), req))
	})

	t.Run("single module", func(t *testing.T) {
		shim, runner := newShimProcessor(t, []string{"shim-cli"})
		runner.EXPECT().Run(gomock.Any(), &ports.Command{
			Args: []string{"shim-cli", "--source", source, "--tsconfig", "/work/tsconfig.lib.json", "--module", "rxjs"},
			Dir:  "/work",
		}).Return(nil)

		require.NoError(t, shim.ProcessModule(context.Background(), req, "rxjs"))
	})

	t.Run("failure is a shim error", func(t *testing.T) {
		shim, runner := newShimProcessor(t, []string{"shim-cli"})
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ErrCommandFailed)

		err := shim.ProcessAll(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrShim)
		assert.ErrorIs(t, err, domain.ErrCommandFailed)
	})

	t.Run("missing command is a shim error", func(t *testing.T) {
		shim, _ := newShimProcessor(t, nil)

		err := shim.ProcessModule(context.Background(), req, "rxjs")
		require.ErrorIs(t, err, domain.ErrShim)
		assert.ErrorIs(t, err, domain.ErrEmptyCommand)
	})
}
