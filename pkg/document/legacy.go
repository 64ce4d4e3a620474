package document

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// LegacyCommand is one rule in the layout read by the original tmsim runtime.
type LegacyCommand struct {
	State       int    `json:"state"`
	NextState   int    `json:"next_state"`
	ReadingChar string `json:"reading_char"`
	PlaceChar   string `json:"place_char"`
	NextMove    string `json:"next_move"`
}

// LegacyDocument is the tmsim-converter output layout: numeric states, moves
// spelled Right/Left/Stop, the declared alphabet sorted and the declared tape
// kept as written.
type LegacyDocument struct {
	Commands []LegacyCommand `json:"commands"`
	Alphabet string          `json:"alphabet"`
	Tape     string          `json:"tape"`
}

// ToLegacy converts m, failing with domain.ErrLegacyState when a state is
// not named q<number>.
func ToLegacy(m *domain.Machine) (LegacyDocument, error) {
	rules := m.Rules()
	doc := LegacyDocument{
		Commands: make([]LegacyCommand, 0, len(rules)),
		Tape:     symbolsString(m.Declared(domain.DeclTape)),
	}

	// The alphabet is sorted and deduplicated, the tape is kept verbatim;
	// neither gains the implicit blank.
	alphabet := m.Declared(domain.DeclAlphabet)
	slices.Sort(alphabet)
	doc.Alphabet = symbolsString(slices.Compact(alphabet))

	for _, r := range rules {
		from, err := legacyState(r.Source)
		if err != nil {
			return LegacyDocument{}, fmt.Errorf("line %d: %w", r.Line, err)
		}
		to, err := legacyState(r.Target)
		if err != nil {
			return LegacyDocument{}, fmt.Errorf("line %d: %w", r.Line, err)
		}
		doc.Commands = append(doc.Commands, LegacyCommand{
			State:       from,
			NextState:   to,
			ReadingChar: r.Read.String(),
			PlaceChar:   r.Write.String(),
			NextMove:    legacyMove(r.Move),
		})
	}
	return doc, nil
}

func symbolsString(symbols []domain.Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

func legacyState(name string) (int, error) {
	digits, ok := strings.CutPrefix(name, "q")
	if !ok || digits == "" {
		return 0, fmt.Errorf("%q: %w", name, domain.ErrLegacyState)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q: %w", name, domain.ErrLegacyState)
	}
	return n, nil
}

func legacyMove(d domain.Direction) string {
	switch d {
	case domain.Right:
		return "Right"
	case domain.Left:
		return "Left"
	default:
		return "Stop"
	}
}
