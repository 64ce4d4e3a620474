package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/document"
	"github.com/aretw0/tmsim/pkg/domain"
)

const source = "alphabet: (ab)\ntape: (ab)\nq0(a) -> q0(b)R\nq0( ) -> q1( )S\n"

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestConvertMachine(t *testing.T) {
	s := NewServer(tmsim.New())

	result, err := s.handleConvert(context.Background(), callRequest("convert_machine", map[string]any{
		"source": source,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var doc document.Document
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &doc))
	assert.Len(t, doc.Rules, 2)
	assert.Equal(t, "q0", doc.InitialState)
}

func TestConvertMachine_Errors(t *testing.T) {
	s := NewServer(tmsim.New())

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"Missing Source", map[string]any{}, "source"},
		{"Bad Format", map[string]any{"source": source, "format": "xml"}, "xml"},
		{"Invalid Machine", map[string]any{"source": "alphabet: (a)\n"}, domain.KindMissingDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleConvert(context.Background(), callRequest("convert_machine", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestValidateMachine(t *testing.T) {
	s := NewServer(tmsim.New())

	result, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, ValidateArgs{Source: source})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	broken := "alphabet: (ab)\nalphabet: (a)\ntape: (ab)\nq0(a) -> q0(b)R\nq0(a) -> q1(a)L\n"
	result, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, ValidateArgs{Source: broken})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, domain.KindDuplicateDeclaration, result.Errors[0].Kind)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Equal(t, domain.KindConflictingRule, result.Errors[1].Kind)
	assert.Equal(t, 5, result.Errors[1].Line)
}
