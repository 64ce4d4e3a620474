// Package document defines the structured output handed to execution engines
// and encodes it as JSON, YAML, TOML or the legacy tmsim-converter JSON layout.
//
// Encoding is deterministic: a machine always produces the same bytes for a
// given format, since every collection in the document is an ordered slice.
package document
