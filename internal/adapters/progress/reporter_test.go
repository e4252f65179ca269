package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/progress"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progress.New()
	ctx := context.Background()

	built := recorder.Start(ctx, "compile lib")
	_, err := built.Output().Write([]byte("emitted esm2015/lib.js\n"))
	require.NoError(t, err)
	built.Succeed()

	recorder.Start(ctx, "compile lib/testing").Fail(errors.New("TS2307"))
	recorder.Start(ctx, "lib/http").Cached()

	assert.NoError(t, recorder.Close())
	assert.NoError(t, recorder.Close(), "closing twice is harmless")
}
