package mcp

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

var (
	// DefaultMaxSourceSize is 1MB, matching the HTTP body limit.
	DefaultMaxSourceSize = 1 << 20
	// EnvMaxSourceSize is the environment variable to override the default
	EnvMaxSourceSize = "TMSIM_MAX_SOURCE_SIZE"
)

var (
	ErrSourceTooLarge = errors.New("source exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("source contains invalid UTF-8 sequences")
)

// checkSource rejects descriptions that are oversized or not UTF-8.
// Control characters are kept: any character may be a tape symbol.
func checkSource(src string) error {
	if limit := maxSourceSize(); len(src) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrSourceTooLarge, len(src), limit)
	}
	if !utf8.ValidString(src) {
		return ErrInvalidUTF8
	}
	return nil
}

func maxSourceSize() int {
	if val := os.Getenv(EnvMaxSourceSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxSourceSize
}
