package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tmsim"
)

func TestCheckSource(t *testing.T) {
	t.Setenv(EnvMaxSourceSize, "16")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"Under Limit", strings.Repeat("a", 15), nil},
		{"Exact Limit", strings.Repeat("a", 16), nil},
		{"Over Limit", strings.Repeat("a", 17), ErrSourceTooLarge},
		{"Invalid UTF-8", "q0(\xff)", ErrInvalidUTF8},
		{"Control Characters Kept", "q0(\x07)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSource(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMaxSourceSize_InvalidEnv(t *testing.T) {
	t.Setenv(EnvMaxSourceSize, "-3")
	assert.Equal(t, DefaultMaxSourceSize, maxSourceSize())
}

func TestTools_RejectOversizedSource(t *testing.T) {
	t.Setenv(EnvMaxSourceSize, "8")
	s := NewServer(tmsim.New())

	result, err := s.handleConvert(context.Background(), callRequest("convert_machine", map[string]any{
		"source": source,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "maximum allowed size")

	_, err = s.handleValidate(context.Background(), callRequest("validate_machine", nil), ValidateArgs{Source: source})
	assert.ErrorIs(t, err, ErrSourceTooLarge)
}
