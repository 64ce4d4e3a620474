package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Summary renders a markdown overview of the machine: alphabets, states and the
// full transition table in source order.
func Summary(name string, m *domain.Machine) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", name)
	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Initial state | %s |\n", orNone(m.InitialState()))
	fmt.Fprintf(&sb, "| States | %d (%s) |\n", len(m.States()), orNone(strings.Join(m.States(), ", ")))
	fmt.Fprintf(&sb, "| Terminal states | %s |\n", orNone(strings.Join(m.TerminalStates(), ", ")))
	fmt.Fprintf(&sb, "| Alphabet | %s |\n", alphabetCell(m.Alphabet()))
	fmt.Fprintf(&sb, "| Tape alphabet | %s |\n", alphabetCell(m.TapeAlphabet()))

	sb.WriteString("\n## Transitions\n\n")
	rules := m.Rules()
	if len(rules) == 0 {
		sb.WriteString("_No rules._\n")
		return sb.String()
	}

	sb.WriteString("| Line | State | Read | Next | Write | Move |\n|---|---|---|---|---|---|\n")
	for _, r := range rules {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s |\n",
			r.Line, r.Source, symbolCell(r.Read), r.Target, symbolCell(r.Write), r.Move.Name())
	}
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func alphabetCell(a domain.Alphabet) string {
	symbols := a.Symbols()
	cells := make([]string, 0, len(symbols))
	for _, s := range symbols {
		cells = append(cells, symbolCell(s))
	}
	return strings.Join(cells, " ")
}

// symbolCell shows blanks and escapes markdown punctuation.
func symbolCell(s domain.Symbol) string {
	r := rune(s)
	switch {
	case s == domain.Blank:
		return "␣"
	case r < unicode.MaxASCII && unicode.IsPunct(r) || r < unicode.MaxASCII && unicode.IsSymbol(r):
		return "\\" + s.String()
	default:
		return s.String()
	}
}
