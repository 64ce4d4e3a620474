package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tmsim/internal/compiler"
)

func TestSummary(t *testing.T) {
	m, err := compiler.Compile("alphabet: (#a|)\ntape: (*a)\nq0(a) -> q0(|)R\nq0( ) -> q1(#)S\n")
	require.NoError(t, err)

	md := Summary("adder.tmsim", m)

	assert.True(t, strings.HasPrefix(md, "# adder.tmsim\n"))
	assert.Contains(t, md, "| Initial state | q0 |")
	assert.Contains(t, md, "| States | 2 (q0, q1) |")
	assert.Contains(t, md, "| Terminal states | q1 |")
	assert.Contains(t, md, "| Alphabet | \\# a \\| ␣ |")
	assert.Contains(t, md, "| Tape alphabet | \\* a ␣ |")
	assert.Contains(t, md, "| 3 | q0 | a | q0 | \\| | Right |")
	assert.Contains(t, md, "| 4 | q0 | ␣ | q1 | \\# | Stay |")
}

func TestSummary_NoRules(t *testing.T) {
	m, err := compiler.Compile("alphabet: (a)\ntape: (a)\n")
	require.NoError(t, err)

	md := Summary("empty", m)
	assert.Contains(t, md, "| Initial state | - |")
	assert.Contains(t, md, "_No rules._")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render("# Title\n\nhello q0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "hello")
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "machine is valid")
	Failure(&buf, "2 errors")
	PrintBanner(&buf)

	out := buf.String()
	assert.Contains(t, out, "✔ machine is valid")
	assert.Contains(t, out, "✘ 2 errors")
	assert.Contains(t, out, "|_| |_|")
}
