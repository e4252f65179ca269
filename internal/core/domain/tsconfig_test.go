package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/core/domain"
)

func TestTsConfig_Clone(t *testing.T) {
	original := domain.TsConfig{
		Project:   "/src/tsconfig.lib.json",
		RootNames: []string{"/src/lib/index.ts"},
		Options: domain.CompilerOptions{
			BaseURL: "/src",
			Paths:   map[string][]string{"@lib/*": {"/src/lib/*"}},
			Extra:   map[string]string{"strict": "true"},
		},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.RootNames[0] = "changed"
	clone.Options.Paths["@lib/*"][0] = "changed"
	clone.Options.Paths["new"] = []string{"x"}
	clone.Options.Extra["strict"] = "false"

	assert.Equal(t, "/src/lib/index.ts", original.RootNames[0])
	assert.Equal(t, []string{"/src/lib/*"}, original.Options.Paths["@lib/*"])
	assert.NotContains(t, original.Options.Paths, "new")
	assert.Equal(t, "true", original.Options.Extra["strict"])
}

func TestParseScriptTarget(t *testing.T) {
	got, err := domain.ParseScriptTarget("")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetES2015, got)

	got, err = domain.ParseScriptTarget("ES2020")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetES2020, got)

	_, err = domain.ParseScriptTarget("es3")
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
}
