package compiler

import (
	"io"
	"iter"
	"log/slog"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCollectAll keeps validating after the first failure and reports every
// error found in a *domain.AggregateError. No machine is returned either way.
func WithCollectAll() Option {
	return func(b *Builder) {
		b.collectAll = true
	}
}

// Builder turns classified lines into a validated Machine.
// A Builder holds no state between calls and is safe for concurrent use.
type Builder struct {
	logger     *slog.Logger
	collectAll bool
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Compile tokenizes and validates src in one step.
func Compile(src string, opts ...Option) (*domain.Machine, error) {
	return NewBuilder(opts...).Build(Lines(src))
}

// collector stops at the first error unless collectAll is set.
type collector struct {
	collectAll bool
	errs       []error
}

// add records err and reports whether the build must stop.
func (c *collector) add(err error) bool {
	c.errs = append(c.errs, err)
	return !c.collectAll
}

func (c *collector) failed() bool { return len(c.errs) > 0 }

func (c *collector) err() error {
	switch {
	case len(c.errs) == 0:
		return nil
	case !c.collectAll:
		return c.errs[0]
	default:
		return &domain.AggregateError{Errors: c.errs}
	}
}

// Build consumes lines and returns the machine they describe.
func (b *Builder) Build(lines iter.Seq2[Line, error]) (*domain.Machine, error) {
	errs := &collector{collectAll: b.collectAll}

	// 1. Partition
	decls := make(map[domain.DeclarationKind]Line, 2)
	var ruleLines []Line
	for line, err := range lines {
		if err != nil {
			if errs.add(err) {
				return nil, errs.err()
			}
			continue
		}

		switch line.Kind {
		case KindDeclaration:
			kind := line.Declaration.Kind
			if first, ok := decls[kind]; ok {
				dup := &domain.DuplicateDeclarationError{Kind: kind, Line: line.Number, FirstLine: first.Number}
				if errs.add(dup) {
					return nil, errs.err()
				}
				continue
			}
			decls[kind] = line
		case KindRule:
			ruleLines = append(ruleLines, line)
		}
	}

	alphabetLine, hasAlphabet := decls[domain.DeclAlphabet]
	tapeLine, hasTape := decls[domain.DeclTape]
	for _, missing := range []struct {
		kind domain.DeclarationKind
		ok   bool
	}{{domain.DeclAlphabet, hasAlphabet}, {domain.DeclTape, hasTape}} {
		if !missing.ok && errs.add(&domain.MissingDeclarationError{Kind: missing.kind}) {
			return nil, errs.err()
		}
	}
	if !hasAlphabet || !hasTape {
		// Nothing can be checked against an undeclared alphabet.
		return nil, errs.err()
	}

	// 2. Alphabets
	alphabet, ok := b.workingAlphabet(alphabetLine, errs)
	if !ok {
		return nil, errs.err()
	}
	tape, ok := b.tapeAlphabet(tapeLine, alphabet, errs)
	if !ok {
		return nil, errs.err()
	}

	// 3-5. Rules
	rules, ok := b.rules(ruleLines, alphabet, errs)
	if !ok || errs.failed() {
		return nil, errs.err()
	}

	// 6. Assemble
	m := domain.NewMachine(rules, alphabet, tape,
		domain.WithDeclarations(alphabetLine.Declaration.Symbols, tapeLine.Declaration.Symbols),
	)
	b.logger.Debug("machine compiled",
		"rules", len(rules),
		"states", len(m.States()),
		"alphabet", alphabet.String(),
		"tape", tape.String(),
	)
	return m, nil
}

func (b *Builder) workingAlphabet(line Line, errs *collector) (domain.Alphabet, bool) {
	for _, s := range line.Declaration.Symbols {
		if s.IsWildcard() {
			err := &domain.SyntaxError{
				Line:   line.Number,
				Text:   line.Text,
				Reason: "the wildcard '*' is reserved and cannot be declared in the alphabet",
			}
			if errs.add(err) {
				return domain.Alphabet{}, false
			}
		}
	}

	alphabet := domain.NewAlphabet(line.Declaration.Symbols...)
	if alphabet.Len() != len(line.Declaration.Symbols) {
		b.logger.Debug("duplicate symbols dropped from declaration", "kind", domain.DeclAlphabet, "line", line.Number)
	}
	return alphabet.With(domain.Blank), true
}

func (b *Builder) tapeAlphabet(line Line, alphabet domain.Alphabet, errs *collector) (domain.Alphabet, bool) {
	for _, s := range line.Declaration.Symbols {
		if s.IsWildcard() || alphabet.Contains(s) {
			continue
		}
		err := &domain.UnknownSymbolError{Symbol: s, Line: line.Number, Rule: line.Text}
		if errs.add(err) {
			return domain.Alphabet{}, false
		}
	}

	tape := domain.NewAlphabet(line.Declaration.Symbols...)
	if tape.Len() != len(line.Declaration.Symbols) {
		b.logger.Debug("duplicate symbols dropped from declaration", "kind", domain.DeclTape, "line", line.Number)
	}
	return tape.With(domain.Blank), true
}

// rules validates symbols and deterministic keys in source order.
// A wildcard read is kept as the state's fallback entry; it never clashes with
// explicit symbols of the same state.
func (b *Builder) rules(lines []Line, alphabet domain.Alphabet, errs *collector) ([]domain.Rule, bool) {
	seen := make(map[domain.Key]domain.Rule, len(lines))
	rules := make([]domain.Rule, 0, len(lines))

	for _, line := range lines {
		r := domain.Rule{
			Source: line.Rule.Source,
			Read:   line.Rule.Read,
			Target: line.Rule.Target,
			Write:  line.Rule.Write,
			Move:   line.Rule.Move,
			Line:   line.Number,
		}

		valid := true
		for i, s := range []domain.Symbol{r.Read, r.Write} {
			if s.IsWildcard() || alphabet.Contains(s) || (i == 1 && s == r.Read) {
				continue
			}
			valid = false
			if errs.add(&domain.UnknownSymbolError{Symbol: s, Line: line.Number, Rule: line.Text}) {
				return nil, false
			}
		}
		if !valid {
			continue
		}

		prev, exists := seen[r.Key()]
		switch {
		case exists && prev.SameOutput(r):
			b.logger.Debug("repeated rule ignored", "rule", r.String(), "line", r.Line, "first_line", prev.Line)
			continue
		case exists:
			err := &domain.ConflictingRuleError{
				State:     r.Source,
				Symbol:    r.Read,
				FirstLine: prev.Line,
				Line:      r.Line,
			}
			if errs.add(err) {
				return nil, false
			}
			continue
		}

		seen[r.Key()] = r
		rules = append(rules, r)
	}
	return rules, true
}
