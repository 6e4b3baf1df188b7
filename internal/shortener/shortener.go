package shortener

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Character set for short codes: base62 minus the ambiguous characters
// 0/O, 1/l/I. 57 symbols keeps codes readable when typed by hand while an
// 8-character code still gives 57^8 (~111 trillion) combinations.
const codeChars = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// CodeGenerator generates short codes using cryptographically secure
// random numbers. Stateless and safe for concurrent use. Uniqueness is not
// guaranteed here; the shortening service checks candidates against the
// store and retries on collision.
type CodeGenerator struct {
	length int // Length of generated codes
}

// NewCodeGenerator creates a new code generator with the given code length.
// Lengths outside the 4-14 range are clamped.
func NewCodeGenerator(length int) *CodeGenerator {
	if length < 4 {
		length = 8
	}
	if length > 14 {
		length = 14
	}

	return &CodeGenerator{
		length: length,
	}
}

// Generate creates a random short code from the unambiguous character set.
// Uses crypto/rand so codes are not predictable from previous ones.
func (g *CodeGenerator) Generate() string {
	result := make([]byte, g.length)

	for i := 0; i < g.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken; fall back to a deterministic index rather than panic
			num = big.NewInt(int64(i % len(codeChars)))
		}

		result[i] = codeChars[num.Int64()]
	}

	return string(result)
}

// Length returns the configured code length.
func (g *CodeGenerator) Length() int {
	return g.length
}

// IsValid reports whether code could have been produced by a generator of
// any supported length. Used by the redirect path to reject malformed codes
// without a store hit. Deliberately not tied to the configured length so
// codes issued under an older SHORT_CODE_LENGTH keep resolving.
func (g *CodeGenerator) IsValid(code string) bool {
	if len(code) < 4 || len(code) > 14 {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(codeChars, char) {
			return false
		}
	}

	return true
}
