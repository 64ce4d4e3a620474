package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tmsim/pkg/domain"
)

func newTestMachine() *domain.Machine {
	rules := []domain.Rule{
		{Source: "q0", Read: domain.Wildcard, Target: "q0", Write: domain.Wildcard, Move: domain.Right, Line: 1},
		{Source: "q0", Read: 'a', Target: "q0", Write: '#', Move: domain.Right, Line: 2},
		{Source: "q0", Read: domain.Blank, Target: "q1", Write: domain.Blank, Move: domain.Left, Line: 3},
		{Source: "q1", Read: 'b', Target: "q2", Write: 'a', Move: domain.Stay, Line: 4},
	}
	return domain.NewMachine(rules, domain.ParseAlphabet("#ab "), domain.ParseAlphabet("ab "))
}

func TestMachine_LookupPrecedence(t *testing.T) {
	m := newTestMachine()

	t.Run("Exact Rule Wins Over Wildcard", func(t *testing.T) {
		tr, ok := m.Lookup("q0", 'a')
		require.True(t, ok)
		assert.False(t, tr.Fallback)
		assert.Equal(t, domain.Symbol('#'), tr.Write)
		assert.Equal(t, 2, tr.Rule.Line)
	})

	t.Run("Wildcard Fallback Writes Back Read Symbol", func(t *testing.T) {
		tr, ok := m.Lookup("q0", 'b')
		require.True(t, ok)
		assert.True(t, tr.Fallback)
		assert.Equal(t, domain.Symbol('b'), tr.Write)
		assert.Equal(t, "q0", tr.Target)
		assert.Equal(t, domain.Right, tr.Move)
	})

	t.Run("Blank Is A Concrete Key", func(t *testing.T) {
		tr, ok := m.Lookup("q0", domain.Blank)
		require.True(t, ok)
		assert.False(t, tr.Fallback)
		assert.Equal(t, "q1", tr.Target)
	})

	t.Run("No Rule Halts", func(t *testing.T) {
		_, ok := m.Lookup("q1", 'a')
		assert.False(t, ok)

		_, ok = m.Lookup("q2", 'a')
		assert.False(t, ok)
	})
}

func TestMachine_DerivedStates(t *testing.T) {
	m := newTestMachine()

	assert.Equal(t, "q0", m.InitialState())
	assert.Equal(t, []string{"q0", "q1", "q2"}, m.States())
	assert.Equal(t, []string{"q2"}, m.TerminalStates())
}

func TestMachine_AccessorsReturnCopies(t *testing.T) {
	m := newTestMachine()

	rules := m.Rules()
	rules[0].Target = "mutated"

	r, ok := m.Rule(domain.Key{State: "q0", Symbol: domain.Wildcard})
	require.True(t, ok)
	assert.Equal(t, "q0", r.Target)
	assert.Equal(t, "q0", m.Rules()[0].Target)
}

func TestMachine_Declared(t *testing.T) {
	t.Run("Raw Declarations Kept As Written", func(t *testing.T) {
		tape := []domain.Symbol{'*', 'a', 'a', 'b'}
		m := domain.NewMachine(nil, domain.ParseAlphabet("ab"), domain.ParseAlphabet("*ab"),
			domain.WithDeclarations([]domain.Symbol{'b', 'a'}, tape),
		)
		tape[0] = 'x'

		assert.Equal(t, []domain.Symbol{'b', 'a'}, m.Declared(domain.DeclAlphabet))
		assert.Equal(t, []domain.Symbol{'*', 'a', 'a', 'b'}, m.Declared(domain.DeclTape))

		got := m.Declared(domain.DeclTape)
		got[1] = 'x'
		assert.Equal(t, domain.Symbol('a'), m.Declared(domain.DeclTape)[1])
	})

	t.Run("Falls Back To Alphabets", func(t *testing.T) {
		m := newTestMachine()

		assert.Equal(t, m.Alphabet().Symbols(), m.Declared(domain.DeclAlphabet))
		assert.Equal(t, m.TapeAlphabet().Symbols(), m.Declared(domain.DeclTape))
	})
}

func TestMachine_Empty(t *testing.T) {
	m := domain.NewMachine(nil, domain.ParseAlphabet(" "), domain.ParseAlphabet(" "))

	assert.Empty(t, m.InitialState())
	assert.Empty(t, m.States())
	assert.Empty(t, m.TerminalStates())
}

func TestRule_String(t *testing.T) {
	r := domain.Rule{Source: "q0", Read: domain.Blank, Target: "q1", Write: domain.Blank, Move: domain.Left}
	assert.Equal(t, "q0( ) -> q1( )L", r.String())
}
