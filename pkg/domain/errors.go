package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCacheMiss is returned by a DocumentCache when the key is not stored.
var ErrCacheMiss = errors.New("cache miss")

// ErrLegacyState is returned when a state name cannot be expressed in the
// numeric legacy layout (anything other than q<digits>).
var ErrLegacyState = errors.New("state is not of the form q<number>")

// DeclarationKind names one of the two alphabet declarations.
type DeclarationKind string

const (
	DeclAlphabet DeclarationKind = "alphabet"
	DeclTape     DeclarationKind = "tape"
)

// SyntaxError reports a line that does not match the rule or declaration grammar.
type SyntaxError struct {
	Line   int    // 1-based line number
	Text   string // Raw line content
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: syntax error: %s: %q", e.Line, e.Reason, e.Text)
}

// MissingDeclarationError reports an absent alphabet or tape declaration.
type MissingDeclarationError struct {
	Kind DeclarationKind
}

func (e *MissingDeclarationError) Error() string {
	return fmt.Sprintf("missing %q declaration", string(e.Kind))
}

// DuplicateDeclarationError reports a declaration keyword used more than once.
type DuplicateDeclarationError struct {
	Kind      DeclarationKind
	Line      int
	FirstLine int
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("line %d: duplicate %q declaration (first declared on line %d)", e.Line, string(e.Kind), e.FirstLine)
}

// UnknownSymbolError reports a symbol that is not part of the working alphabet.
type UnknownSymbolError struct {
	Symbol Symbol
	Line   int
	Rule   string // Offending rule or declaration text
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("line %d: symbol %s is not in the alphabet: %s", e.Line, e.Symbol.Quote(), e.Rule)
}

// ConflictingRuleError reports two rules with the same key and different outputs.
type ConflictingRuleError struct {
	State     string
	Symbol    Symbol
	FirstLine int
	Line      int
}

func (e *ConflictingRuleError) Error() string {
	return fmt.Sprintf("line %d: conflicting rule for %s(%s), already defined on line %d",
		e.Line, e.State, e.Symbol, e.FirstLine)
}

// AggregateError carries every failure found in collect-all mode.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Errors flattens err into its individual failures.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}

// Stable error kinds, used by the HTTP API, metrics labels and exit codes.
const (
	KindSyntax               = "syntax"
	KindMissingDeclaration   = "missing_declaration"
	KindDuplicateDeclaration = "duplicate_declaration"
	KindUnknownSymbol        = "unknown_symbol"
	KindConflictingRule      = "conflicting_rule"
	KindInternal             = "internal"
)

// ErrorKind classifies err. For an AggregateError the first error decides.
func ErrorKind(err error) string {
	if errs := Errors(err); len(errs) > 0 {
		err = errs[0]
	}

	var (
		syntaxErr    *SyntaxError
		missingErr   *MissingDeclarationError
		duplicateErr *DuplicateDeclarationError
		unknownErr   *UnknownSymbolError
		conflictErr  *ConflictingRuleError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return KindSyntax
	case errors.As(err, &missingErr):
		return KindMissingDeclaration
	case errors.As(err, &duplicateErr):
		return KindDuplicateDeclaration
	case errors.As(err, &unknownErr):
		return KindUnknownSymbol
	case errors.As(err, &conflictErr):
		return KindConflictingRule
	default:
		return KindInternal
	}
}

// ErrorLine returns the source line an error points at, or 0.
func ErrorLine(err error) int {
	var (
		syntaxErr    *SyntaxError
		duplicateErr *DuplicateDeclarationError
		unknownErr   *UnknownSymbolError
		conflictErr  *ConflictingRuleError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return syntaxErr.Line
	case errors.As(err, &duplicateErr):
		return duplicateErr.Line
	case errors.As(err, &unknownErr):
		return unknownErr.Line
	case errors.As(err, &conflictErr):
		return conflictErr.Line
	default:
		return 0
	}
}
