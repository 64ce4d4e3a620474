package domain

import "strings"

// Symbol is a single tape character.
type Symbol rune

const (
	// Blank is the empty tape cell. It is implicitly part of every alphabet.
	Blank Symbol = ' '
	// Wildcard matches any symbol on read and means "keep the symbol" on write.
	Wildcard Symbol = '*'
)

func (s Symbol) String() string { return string(rune(s)) }

// IsBlank reports whether s is the blank symbol.
func (s Symbol) IsBlank() bool { return s == Blank }

// IsWildcard reports whether s is the wildcard marker.
func (s Symbol) IsWildcard() bool { return s == Wildcard }

// Quote renders the symbol for messages; the blank is spelled out since a bare
// space is invisible.
func (s Symbol) Quote() string {
	if s == Blank {
		return "' ' (blank)"
	}
	return "'" + s.String() + "'"
}

// Alphabet is an ordered set of symbols. The zero value is an empty alphabet.
type Alphabet struct {
	symbols []Symbol
	index   map[Symbol]struct{}
}

// NewAlphabet builds an alphabet keeping the first occurrence of each symbol.
func NewAlphabet(symbols ...Symbol) Alphabet {
	a := Alphabet{index: make(map[Symbol]struct{}, len(symbols))}
	for _, s := range symbols {
		if _, ok := a.index[s]; ok {
			continue
		}
		a.index[s] = struct{}{}
		a.symbols = append(a.symbols, s)
	}
	return a
}

// ParseAlphabet builds an alphabet from the characters of s.
func ParseAlphabet(s string) Alphabet {
	symbols := make([]Symbol, 0, len(s))
	for _, r := range s {
		symbols = append(symbols, Symbol(r))
	}
	return NewAlphabet(symbols...)
}

// With returns a copy of the alphabet with s appended, unless already present.
func (a Alphabet) With(s Symbol) Alphabet {
	if a.Contains(s) {
		return a
	}
	return NewAlphabet(append(a.Symbols(), s)...)
}

// Contains reports whether s belongs to the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	_, ok := a.index[s]
	return ok
}

// Symbols returns the symbols in declaration order.
func (a Alphabet) Symbols() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Len returns the number of distinct symbols.
func (a Alphabet) Len() int { return len(a.symbols) }

// String concatenates the symbols in order, the way they are declared in source.
func (a Alphabet) String() string {
	var sb strings.Builder
	for _, s := range a.symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}
