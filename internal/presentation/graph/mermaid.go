package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the machine's state graph.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Terminal state (entered, never left): (((Double circle)))
// - Default: (Rounded)
// Rules sharing source and target are merged into one edge whose label lists
// every read/write,move triple, one per line.
func GenerateMermaid(m *domain.Machine) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	initial := m.InitialState()
	terminal := make(map[string]bool)
	for _, s := range m.TerminalStates() {
		terminal[s] = true
	}

	for _, state := range m.States() {
		safeID := sanitizeMermaidID(state)

		opener, closer := "(", ")"
		switch {
		case state == initial:
			opener, closer = "((", "))"
		case terminal[state]:
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state, closer))
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, r := range m.Rules() {
		e := edge{r.Source, r.Target}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", symbolLabel(r.Read), symbolLabel(r.Write), r.Move))
	}
	for _, e := range order {
		label := strings.Join(labels[e], "<br/>")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), label, sanitizeMermaidID(e.to)))
	}

	if initial != "" {
		sb.WriteString("\n    %% State Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef initial fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef terminal fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s initial;\n", sanitizeMermaidID(initial)))
		for _, s := range m.TerminalStates() {
			sb.WriteString(fmt.Sprintf("    class %s terminal;\n", sanitizeMermaidID(s)))
		}
	}

	return sb.String()
}

// symbolLabel makes blanks visible and escapes characters Mermaid treats as syntax.
func symbolLabel(s domain.Symbol) string {
	switch s {
	case domain.Blank:
		return "␣"
	case '"':
		return "#quot;"
	case '#':
		return "#35;"
	default:
		return s.String()
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	// "end" is a reserved word in Mermaid flowcharts
	if strings.EqualFold(s, "end") {
		s = "state_" + s
	}
	return s
}
