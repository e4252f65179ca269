package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/fs"
)

func TestVerifier_VerifyOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	out1 := filepath.Join(tmpDir, "out1.js")
	out2 := filepath.Join(tmpDir, "out2.d.ts")
	require.NoError(t, os.WriteFile(out1, []byte("content"), 0o600))
	require.NoError(t, os.WriteFile(out2, []byte("content"), 0o600))

	exists, err := verifier.VerifyOutputs([]string{out1, out2})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = verifier.VerifyOutputs([]string{out1, filepath.Join(tmpDir, "missing.js")})
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = verifier.VerifyOutputs([]string{out1, ""})
	require.NoError(t, err)
	assert.True(t, exists, "unset destinations are not checked")
}
