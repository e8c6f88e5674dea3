package dto

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputLength bounds the number of symbols of a remote run.
	DefaultMaxInputLength = 10000
	// DefaultMaxSymbolSize bounds the size in bytes of a single symbol.
	DefaultMaxSymbolSize = 256
	// EnvMaxInputLength is the environment variable to override DefaultMaxInputLength.
	EnvMaxInputLength = "DFSM_MAX_INPUT_LENGTH"
)

var (
	ErrInputTooLong   = errors.New("input exceeds maximum allowed length")
	ErrSymbolTooLarge = errors.New("symbol exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("symbol contains invalid UTF-8 sequences")
	ErrControlChars   = errors.New("symbol contains control characters")
)

// CheckInput rejects remote input that is too long or holds symbols no
// machine document can declare. Symbols are rejected rather than cleaned, so
// a run always sees exactly what the client sent.
func CheckInput(input []string) error {
	if limit := maxInputLength(); len(input) > limit {
		return fmt.Errorf("%w: length=%d limit=%d", ErrInputTooLong, len(input), limit)
	}
	for i, symbol := range input {
		if len(symbol) > DefaultMaxSymbolSize {
			return fmt.Errorf("input[%d]: %w: size=%d limit=%d", i, ErrSymbolTooLarge, len(symbol), DefaultMaxSymbolSize)
		}
		if !utf8.ValidString(symbol) {
			return fmt.Errorf("input[%d]: %w", i, ErrInvalidUTF8)
		}
		for _, r := range symbol {
			if unicode.IsControl(r) {
				return fmt.Errorf("input[%d]: %w", i, ErrControlChars)
			}
		}
	}
	return nil
}

func maxInputLength() int {
	if val := os.Getenv(EnvMaxInputLength); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputLength
}
