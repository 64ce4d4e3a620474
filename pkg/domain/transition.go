package domain

import "fmt"

// Key is the deterministic key of a rule: at most one rule per (state, symbol).
// A Key whose Symbol is Wildcard is the per-state fallback entry.
type Key struct {
	State  string
	Symbol Symbol
}

func (k Key) String() string {
	return fmt.Sprintf("%s(%s)", k.State, k.Symbol)
}

// Rule is a single transition as written in source.
type Rule struct {
	Source string
	Read   Symbol
	Target string
	Write  Symbol
	Move   Direction

	// Line is the 1-based source line the rule was declared on.
	Line int
}

// Key returns the deterministic key of the rule.
func (r Rule) Key() Key {
	return Key{State: r.Source, Symbol: r.Read}
}

// SameOutput reports whether both rules produce the same target, write and move.
func (r Rule) SameOutput(o Rule) bool {
	return r.Target == o.Target && r.Write == o.Write && r.Move == o.Move
}

// String renders the rule in source syntax.
func (r Rule) String() string {
	return fmt.Sprintf("%s(%s) -> %s(%s)%s", r.Source, r.Read, r.Target, r.Write, r.Move)
}

// Transition is a rule resolved against a concrete read symbol.
type Transition struct {
	Target string
	Write  Symbol
	Move   Direction

	// Fallback is true when the wildcard entry of the state matched.
	Fallback bool
	Rule     Rule
}
