package domain

// Machine is a validated Turing machine description.
// It is built once by the compiler and never mutated afterwards; every accessor
// returns a copy.
type Machine struct {
	rules    []Rule
	alphabet Alphabet
	tape     Alphabet
	table    map[Key]int

	// declared keeps each declaration exactly as written, duplicates included
	// and without the implicit blank.
	declared map[DeclarationKind][]Symbol
}

// MachineOption configures a Machine at construction.
type MachineOption func(*Machine)

// WithDeclarations records the raw symbol lists of both declarations.
func WithDeclarations(alphabet, tape []Symbol) MachineOption {
	return func(m *Machine) {
		m.declared[DeclAlphabet] = append([]Symbol(nil), alphabet...)
		m.declared[DeclTape] = append([]Symbol(nil), tape...)
	}
}

// NewMachine assembles a machine from already validated parts.
// When two rules share a key the first one is kept in the table.
func NewMachine(rules []Rule, alphabet, tape Alphabet, opts ...MachineOption) *Machine {
	m := &Machine{
		rules:    make([]Rule, len(rules)),
		alphabet: alphabet,
		tape:     tape,
		table:    make(map[Key]int, len(rules)),
		declared: make(map[DeclarationKind][]Symbol, 2),
	}
	for _, opt := range opts {
		opt(m)
	}
	copy(m.rules, rules)
	for i, r := range m.rules {
		if _, ok := m.table[r.Key()]; !ok {
			m.table[r.Key()] = i
		}
	}
	return m
}

// Rules returns the rules in source order.
func (m *Machine) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Alphabet returns the working alphabet.
func (m *Machine) Alphabet() Alphabet { return m.alphabet }

// TapeAlphabet returns the alphabet the initial tape may be written with.
func (m *Machine) TapeAlphabet() Alphabet { return m.tape }

// Declared returns the symbols of a declaration as written in source.
// Machines built without WithDeclarations fall back to the alphabet itself.
func (m *Machine) Declared(kind DeclarationKind) []Symbol {
	if raw, ok := m.declared[kind]; ok {
		return append([]Symbol(nil), raw...)
	}
	if kind == DeclTape {
		return m.tape.Symbols()
	}
	return m.alphabet.Symbols()
}

// InitialState is the source state of the first rule, or "" for an empty machine.
func (m *Machine) InitialState() string {
	if len(m.rules) == 0 {
		return ""
	}
	return m.rules[0].Source
}

// States returns every state mentioned by the rules, in order of first appearance.
func (m *Machine) States() []string {
	seen := make(map[string]bool)
	var states []string
	for _, r := range m.rules {
		for _, s := range [...]string{r.Source, r.Target} {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}
	return states
}

// TerminalStates returns the states that are entered but never left.
func (m *Machine) TerminalStates() []string {
	sources := make(map[string]bool)
	for _, r := range m.rules {
		sources[r.Source] = true
	}
	var terminal []string
	seen := make(map[string]bool)
	for _, r := range m.rules {
		if !sources[r.Target] && !seen[r.Target] {
			seen[r.Target] = true
			terminal = append(terminal, r.Target)
		}
	}
	return terminal
}

// Rule returns the rule stored under key, without wildcard fallback.
func (m *Machine) Rule(key Key) (Rule, bool) {
	i, ok := m.table[key]
	if !ok {
		return Rule{}, false
	}
	return m.rules[i], true
}

// Lookup resolves the transition taken in state when read is under the head.
// The exact (state, read) entry wins over the (state, *) fallback, and a
// wildcard write is resolved to read.
func (m *Machine) Lookup(state string, read Symbol) (Transition, bool) {
	fallback := false
	r, ok := m.Rule(Key{State: state, Symbol: read})
	if !ok {
		r, ok = m.Rule(Key{State: state, Symbol: Wildcard})
		if !ok {
			return Transition{}, false
		}
		fallback = true
	}

	write := r.Write
	if write.IsWildcard() {
		write = read
	}
	return Transition{
		Target:   r.Target,
		Write:    write,
		Move:     r.Move,
		Fallback: fallback,
		Rule:     r,
	}, true
}
