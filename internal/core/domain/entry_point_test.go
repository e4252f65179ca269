package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/core/domain"
)

func TestParseCSSURL(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.CSSURL
		wantErr bool
	}{
		{"", domain.CSSURLNone, false},
		{"none", domain.CSSURLNone, false},
		{"inline", domain.CSSURLInline, false},
		{"rewrite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseCSSURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCSSURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDestinationFiles(t *testing.T) {
	d := domain.DestinationFiles{
		ESM2015:      "dist/esm2015/lib.js",
		UMD:          "dist/bundles/lib.umd.js",
		Declarations: "dist/lib.d.ts",
	}
	require.NoError(t, d.Validate())
	assert.Equal(t, []string{"dist/esm2015/lib.js", "dist/lib.d.ts"}, d.Required())
	assert.Equal(t, []string{"dist/esm2015/lib.js", "dist/bundles/lib.umd.js", "dist/lib.d.ts"}, d.All())

	d.ESM2015 = ""
	assert.ErrorIs(t, d.Validate(), domain.ErrMissingDestination)
}

func TestEntryPoint_EntryFilePath(t *testing.T) {
	ep := domain.EntryPoint{BasePath: "/src/lib", EntryFile: "public_api.ts"}
	assert.Equal(t, "/src/lib/public_api.ts", ep.EntryFilePath())

	ep.EntryFile = "/abs/index.ts"
	assert.Equal(t, "/abs/index.ts", ep.EntryFilePath())
}
