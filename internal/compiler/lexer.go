package compiler

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/tmsim/pkg/domain"
)

// LineKind classifies a non-blank source line.
type LineKind int

const (
	KindRule LineKind = iota
	KindDeclaration
)

// RuleToken holds the raw tokens of a rule line.
type RuleToken struct {
	Source string
	Read   domain.Symbol
	Target string
	Write  domain.Symbol
	Move   domain.Direction
}

// DeclarationToken holds an alphabet or tape declaration. Symbols keeps the
// characters exactly as written, duplicates included.
type DeclarationToken struct {
	Kind    domain.DeclarationKind
	Symbols []domain.Symbol
}

// Line is a classified source line.
type Line struct {
	Number int // 1-based
	Text   string
	Kind   LineKind

	Rule        RuleToken        // set when Kind == KindRule
	Declaration DeclarationToken // set when Kind == KindDeclaration
}

const arrow = "->"

// Lines splits src into classified lines. Blank lines are skipped.
// Lines that match neither grammar are yielded with a *domain.SyntaxError.
func Lines(src string) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		number := 0
		for raw := range strings.Lines(src) {
			number++
			text := strings.TrimRight(raw, "\r\n")
			trimmed := strings.TrimSpace(text)
			if trimmed == "" {
				continue
			}

			line, err := classify(number, trimmed)
			if !yield(line, err) {
				return
			}
		}
	}
}

func classify(number int, text string) (Line, error) {
	line := Line{Number: number, Text: text}

	for _, kind := range []domain.DeclarationKind{domain.DeclAlphabet, domain.DeclTape} {
		if rest, ok := strings.CutPrefix(text, string(kind)+":"); ok {
			symbols, reason := scanDeclaration(rest)
			if reason != "" {
				return line, syntaxError(line, reason)
			}
			line.Kind = KindDeclaration
			line.Declaration = DeclarationToken{Kind: kind, Symbols: symbols}
			return line, nil
		}
	}

	tok, reason := scanRule(text)
	if reason != "" {
		return line, syntaxError(line, reason)
	}
	line.Kind = KindRule
	line.Rule = tok
	return line, nil
}

func syntaxError(line Line, reason string) error {
	return &domain.SyntaxError{Line: line.Number, Text: line.Text, Reason: reason}
}

// scanDeclaration parses " (SYMBOLS)". Everything between the first '(' and
// the closing ')' at end of line is a symbol, including spaces and parentheses.
func scanDeclaration(rest string) ([]domain.Symbol, string) {
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "(") {
		return nil, "expected '(' after declaration keyword"
	}
	if len(rest) < 2 || !strings.HasSuffix(rest, ")") {
		return nil, "unbalanced parentheses in symbol list"
	}
	body := rest[1 : len(rest)-1]
	if body == "" {
		return nil, "empty symbol list"
	}
	if !utf8.ValidString(body) {
		return nil, "symbol list is not valid UTF-8"
	}

	symbols := make([]domain.Symbol, 0, len(body))
	for _, r := range body {
		symbols = append(symbols, domain.Symbol(r))
	}
	return symbols, ""
}

// ruleScanner walks a rule line rune by rune. Symbols may be any character,
// '(' ')' '-' '>' included, so the line cannot be split on delimiters.
type ruleScanner struct {
	src string
	pos int
}

func (s *ruleScanner) peek() (rune, int) {
	if s.pos >= len(s.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

func (s *ruleScanner) next() (rune, bool) {
	r, size := s.peek()
	if size == 0 {
		return 0, false
	}
	s.pos += size
	return r, true
}

func (s *ruleScanner) skipSpaces() {
	for {
		r, size := s.peek()
		if size == 0 || (r != ' ' && r != '\t') {
			return
		}
		s.pos += size
	}
}

func (s *ruleScanner) state(side string) (string, string) {
	start := s.pos
	for {
		r, size := s.peek()
		if size == 0 || !isStateRune(r) {
			break
		}
		s.pos += size
	}
	if s.pos == start {
		return "", "missing " + side + " state name"
	}
	return s.src[start:s.pos], ""
}

// symbol reads "(X)" where X is exactly one character. owner names the state
// the symbol belongs to, side names the symbol itself.
func (s *ruleScanner) symbol(owner, side string) (domain.Symbol, string) {
	if r, ok := s.next(); !ok || r != '(' {
		return 0, "expected '(' after " + owner + " state"
	}
	r, ok := s.next()
	if !ok {
		return 0, "unbalanced parentheses in " + side + " symbol"
	}
	if r == utf8.RuneError {
		return 0, "invalid UTF-8 in " + side + " symbol"
	}
	closing, ok := s.next()
	switch {
	case !ok && r == ')':
		return 0, "empty " + side + " symbol"
	case !ok:
		return 0, "unbalanced parentheses in " + side + " symbol"
	case closing != ')' && r == ')':
		return 0, "empty " + side + " symbol"
	case closing != ')':
		return 0, side + " symbol must be exactly one character"
	}
	return domain.Symbol(r), ""
}

func scanRule(text string) (RuleToken, string) {
	var (
		tok    RuleToken
		reason string
	)
	s := &ruleScanner{src: text}

	if tok.Source, reason = s.state("source"); reason != "" {
		return tok, reason
	}
	if tok.Read, reason = s.symbol("source", "read"); reason != "" {
		return tok, reason
	}

	s.skipSpaces()
	if !strings.HasPrefix(s.src[s.pos:], arrow) {
		return tok, "expected '->' between source and target"
	}
	s.pos += len(arrow)
	s.skipSpaces()

	if tok.Target, reason = s.state("target"); reason != "" {
		return tok, reason
	}
	if tok.Write, reason = s.symbol("target", "write"); reason != "" {
		return tok, reason
	}

	r, ok := s.next()
	if !ok {
		return tok, "missing direction, expected one of L, R, S"
	}
	move, err := domain.ParseDirection(r)
	if err != nil {
		return tok, err.Error()
	}
	tok.Move = move

	if s.pos != len(s.src) {
		return tok, "unexpected text after direction"
	}
	return tok, ""
}

func isStateRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
