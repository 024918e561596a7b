package randutil

import (
	"fmt"
	"strings"

	"github.com/alex65536/tsrand/internal/randsrc"
)

const (
	idAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"
	idLen         = 22
	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	tokenLen      = 32
	TokenPrefix   = "tsr_"
)

func init() {
	if len(idAlphabet) != 64 {
		panic("must not happen")
	}
	if len(tokenAlphabet) != 62 {
		panic("must not happen")
	}
	for i := 1; i < len(tokenAlphabet); i++ {
		if tokenAlphabet[i-1] >= tokenAlphabet[i] {
			panic("must not happen")
		}
	}
}

// String returns n symbols drawn uniformly from alphabet.
func String(src randsrc.Source, alphabet string, n int) (string, error) {
	if alphabet == "" {
		return "", fmt.Errorf("empty alphabet")
	}
	var b strings.Builder
	b.Grow(n)
	for range n {
		pos, err := src.IntN(len(alphabet))
		if err != nil {
			return "", fmt.Errorf("pick symbol: %w", err)
		}
		_ = b.WriteByte(alphabet[pos])
	}
	return b.String(), nil
}

// ID returns a 22-symbol URL-safe identifier. It is only unguessable if src is secure.
func ID(src randsrc.Source) (string, error) {
	return String(src, idAlphabet, idLen)
}

// Token returns an alphanumeric token with TokenPrefix.
func Token(src randsrc.Source) (string, error) {
	s, err := String(src, tokenAlphabet, tokenLen)
	if err != nil {
		return "", err
	}
	return TokenPrefix + s, nil
}
