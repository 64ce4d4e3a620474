/*
Package domain contains the core model of a Turing machine description.

It defines the fundamental entities produced by the compiler: Symbols and
Alphabets, head Directions, transition Rules and the Machine itself. This package
is kept pure and free of external dependencies like I/O or serialization.

# Key Entities

  - Symbol: a single tape character. Blank (space) and Wildcard (*) are reserved.
  - Alphabet: an ordered, duplicate-free set of symbols.
  - Rule: (source, read) -> (target, write, move), tagged with its source line.
  - Machine: the immutable result of a conversion, with a transition table
    keyed by (state, symbol) where the wildcard acts as a per-state fallback.
*/
package domain
