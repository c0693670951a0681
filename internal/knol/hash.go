package knol

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"

	"github.com/conorfennell/benkyou/internal/domain"
)

// Normalize trims whitespace, lowercases and normalizes line endings.
func Normalize(part string) string {
	p := strings.ToLower(part)
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\r\n", "\n")
	return p
}

// Hash takes a vocabulary row, normalizes each field and returns the
// SHA-256 hash of the result as a hex string.
func Hash(v domain.Vocab) string {
	// Joined with a newline so "ab"+"c" and "a"+"bc" stay distinct.
	normalized := strings.Join([]string{
		Normalize(v.Prompt),
		Normalize(v.Reading),
		Normalize(v.Answer),
	}, "\n")
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}

// SortKey returns a pseudo-random number in [0, 1) seeded by the prompt.
// The same prompt always yields the same key, which makes shuffled
// presentation order reproducible across runs.
func SortKey(prompt string) float64 {
	sum := sha256.Sum256([]byte(prompt))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed)).Float64()
}
