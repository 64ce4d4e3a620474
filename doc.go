/*
Package tmsim converts human-written Turing machine descriptions into structured
documents that execution engines can load.

A description is a list of transition rules plus two alphabet declarations:

	alphabet: (#ab )
	tape: (*ab )

	q0(a) -> q0(a)R
	q0(b) -> q0(b)R
	q0(#) -> q1(#)L
	q1( ) -> q2( )R

Each rule reads STATE(SYMBOL) -> STATE(SYMBOL)DIRECTION. A symbol is exactly one
character; the space inside "( )" is the blank symbol and "*" is the wildcard,
which matches any symbol without a more specific rule and, when written, keeps
the symbol that was read. DIRECTION is L, R or S.

# Usage

The core is a pure function:

	m, err := tmsim.Convert(src)
	if err != nil {
		var unknown *domain.UnknownSymbolError
		if errors.As(err, &unknown) {
			// ...
		}
	}

A Converter adds encoding, caching and observability hooks:

	conv := tmsim.New(tmsim.WithCache(memory.NewCache()))
	data, err := conv.ConvertAndEncode(ctx, src, document.YAML)

Conversion never produces partial output: any syntax or validation error aborts
it. Errors carry the 1-based source line they refer to.
*/
package tmsim
