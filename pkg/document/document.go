package document

import "github.com/aretw0/tmsim/pkg/domain"

// Rule is the serialized form of a transition rule.
// Symbols are one-character strings; "*" keeps its wildcard meaning.
type Rule struct {
	SourceState string `json:"source_state" yaml:"source_state" toml:"source_state"`
	ReadSymbol  string `json:"read_symbol" yaml:"read_symbol" toml:"read_symbol"`
	TargetState string `json:"target_state" yaml:"target_state" toml:"target_state"`
	WriteSymbol string `json:"write_symbol" yaml:"write_symbol" toml:"write_symbol"`
	Direction   string `json:"direction" yaml:"direction" toml:"direction"`
}

// Document is the machine-consumable description of a Turing machine.
type Document struct {
	Rules        []Rule   `json:"rules" yaml:"rules" toml:"rules"`
	Alphabet     []string `json:"alphabet" yaml:"alphabet" toml:"alphabet"`
	TapeAlphabet []string `json:"tape_alphabet" yaml:"tape_alphabet" toml:"tape_alphabet"`
	InitialState string   `json:"initial_state,omitempty" yaml:"initial_state,omitempty" toml:"initial_state,omitempty"`
}

// FromMachine builds the document for m.
func FromMachine(m *domain.Machine) Document {
	rules := m.Rules()
	doc := Document{
		Rules:        make([]Rule, 0, len(rules)),
		Alphabet:     symbolStrings(m.Alphabet()),
		TapeAlphabet: symbolStrings(m.TapeAlphabet()),
		InitialState: m.InitialState(),
	}
	for _, r := range rules {
		doc.Rules = append(doc.Rules, Rule{
			SourceState: r.Source,
			ReadSymbol:  r.Read.String(),
			TargetState: r.Target,
			WriteSymbol: r.Write.String(),
			Direction:   r.Move.String(),
		})
	}
	return doc
}

func symbolStrings(a domain.Alphabet) []string {
	symbols := a.Symbols()
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s.String())
	}
	return out
}
