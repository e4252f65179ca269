package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("@lib/core")
	b := domain.NewInternedString("@lib/core")

	assert.Equal(t, a, b, "identical strings must intern to equal values")
	assert.Equal(t, "@lib/core", a.String())
	assert.False(t, a.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	type wrapper struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(wrapper{Name: domain.NewInternedString("@lib/core/testing")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"@lib/core/testing"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.NewInternedString("@lib/core/testing"), decoded.Name)
}

func TestNewInternedStrings(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		got := domain.NewInternedStrings([]string{"b", "a", "c"})
		require.Len(t, got, 3)
		assert.Equal(t, "b", got[0].String())
		assert.Equal(t, "a", got[1].String())
		assert.Equal(t, "c", got[2].String())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, domain.NewInternedStrings(nil))
	})

	t.Run("duplicates intern to the same value", func(t *testing.T) {
		got := domain.NewInternedStrings([]string{"x", "x"})
		assert.Equal(t, got[0], got[1])
	})
}
