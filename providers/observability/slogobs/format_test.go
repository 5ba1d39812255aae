package slogobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"compact", FormatCompact},
		{"PRETTY", FormatPretty},
		{" json ", FormatJSON},
		{"", FormatCompact},
		{"xml", FormatCompact},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormat(tt.input))
		})
	}
}

func TestGetFormatFromEnv(t *testing.T) {
	t.Run("prefixed wins", func(t *testing.T) {
		t.Setenv("SCHEMAFIX_LOG_FORMAT", "json")
		t.Setenv("LOG_FORMAT", "pretty")
		assert.Equal(t, FormatJSON, GetFormatFromEnv())
	})
	t.Run("fallback", func(t *testing.T) {
		t.Setenv("SCHEMAFIX_LOG_FORMAT", "")
		t.Setenv("LOG_FORMAT", "pretty")
		assert.Equal(t, FormatPretty, GetFormatFromEnv())
	})
	t.Run("default", func(t *testing.T) {
		t.Setenv("SCHEMAFIX_LOG_FORMAT", "")
		t.Setenv("LOG_FORMAT", "")
		assert.Equal(t, FormatCompact, GetFormatFromEnv())
	})
}
