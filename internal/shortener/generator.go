package shortener

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the URL-safe character set codes are drawn from. Every
// character appears exactly once.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.~"

// DefaultCodeLength is the reference code length.
const DefaultCodeLength = 5

// acceptBelow is the largest multiple of len(Alphabet) that fits in a byte.
// Bytes at or above it are discarded so every index stays equally likely.
const acceptBelow = 256 - 256%len(Alphabet)

var ErrInvalidCodeLength = errors.New("code length must be positive")

// CodeGenerator produces a fresh candidate code on every call.
type CodeGenerator func() (Code, error)

// NewRandomGenerator returns a generator drawing each character independently
// and uniformly from Alphabet, using src as the source of random bytes.
// Pass crypto/rand.Reader in production and a seeded reader in tests.
func NewRandomGenerator(length int, src io.Reader) (CodeGenerator, error) {
	if length <= 0 {
		return nil, ErrInvalidCodeLength
	}

	return func() (Code, error) {
		code := make([]byte, 0, length)
		buf := make([]byte, length)

		for len(code) < length {
			if _, err := io.ReadFull(src, buf); err != nil {
				return "", fmt.Errorf("read random bytes: %w", err)
			}

			for _, b := range buf {
				if int(b) >= acceptBelow {
					continue
				}

				code = append(code, Alphabet[int(b)%len(Alphabet)])
				if len(code) == length {
					break
				}
			}
		}

		return Code(code), nil
	}, nil
}

// NewNanoidGenerator returns a generator backed by nanoid over Alphabet.
func NewNanoidGenerator(length int) (CodeGenerator, error) {
	if length <= 0 {
		return nil, ErrInvalidCodeLength
	}

	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return func() (Code, error) {
		return Code(gen()), nil
	}, nil
}

// CodeSpace returns the number of distinct codes of the given length.
// The chance that a fresh candidate collides with N existing codes is
// roughly N / CodeSpace(length).
func CodeSpace(length int) float64 {
	return math.Pow(float64(len(Alphabet)), float64(length))
}
