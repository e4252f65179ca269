package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/libpack/internal/core/domain"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(999), "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, domain.ParseLogLevel("DEBUG"))
	assert.Equal(t, domain.LogLevelWarn, domain.ParseLogLevel("warning"))
	assert.Equal(t, domain.LogLevelError, domain.ParseLogLevel("error"))
	assert.Equal(t, domain.LogLevelInfo, domain.ParseLogLevel("verbose"))
}
