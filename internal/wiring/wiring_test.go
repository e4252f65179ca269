package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/app"
	_ "go.trai.ch/libpack/internal/wiring"
)

// TestComponents resolves the whole node graph the CLI starts from.
func TestComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)

	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.NotNil(t, components.Progress)
	require.NoError(t, components.Progress.Close())
}
