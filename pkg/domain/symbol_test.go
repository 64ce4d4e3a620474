package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/tmsim/pkg/domain"
)

func TestAlphabet(t *testing.T) {
	a := domain.ParseAlphabet("#ab a#")

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, "#ab ", a.String())
	assert.True(t, a.Contains(domain.Blank))
	assert.False(t, a.Contains('c'))

	b := a.With('c')
	assert.Equal(t, "#ab c", b.String())
	assert.Equal(t, "#ab ", a.String(), "With must not modify the receiver")

	assert.Equal(t, a.String(), a.With('a').String())
}

func TestAlphabet_ZeroValue(t *testing.T) {
	var a domain.Alphabet

	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Contains('a'))
	assert.Equal(t, "a", a.With('a').String())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      rune
		want    domain.Direction
		wantErr bool
	}{
		{'L', domain.Left, false},
		{'R', domain.Right, false},
		{'S', domain.Stay, false},
		{'r', 0, true},
		{'X', 0, true},
	}

	for _, tt := range tests {
		got, err := domain.ParseDirection(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	assert.Equal(t, "Stay", domain.Stay.Name())
	assert.Equal(t, "R", domain.Right.String())
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
		line int
	}{
		{&domain.SyntaxError{Line: 3, Text: "x"}, domain.KindSyntax, 3},
		{&domain.MissingDeclarationError{Kind: domain.DeclTape}, domain.KindMissingDeclaration, 0},
		{&domain.DuplicateDeclarationError{Kind: domain.DeclAlphabet, Line: 4, FirstLine: 1}, domain.KindDuplicateDeclaration, 4},
		{&domain.UnknownSymbolError{Symbol: 'x', Line: 5}, domain.KindUnknownSymbol, 5},
		{&domain.ConflictingRuleError{State: "q0", Symbol: 'a', FirstLine: 1, Line: 2}, domain.KindConflictingRule, 2},
		{domain.ErrCacheMiss, domain.KindInternal, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ErrorKind(tt.err), tt.err.Error())
		assert.Equal(t, tt.line, domain.ErrorLine(tt.err), tt.err.Error())
	}

	aggr := &domain.AggregateError{Errors: []error{
		&domain.UnknownSymbolError{Symbol: 'x', Line: 5},
		&domain.SyntaxError{Line: 7},
	}}
	assert.Equal(t, domain.KindUnknownSymbol, domain.ErrorKind(aggr))
	assert.Len(t, domain.Errors(aggr), 2)
	assert.Contains(t, aggr.Error(), "2 errors")
}
