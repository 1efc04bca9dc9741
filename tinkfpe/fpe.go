// Package tinkfpe integrates the FPE ciphers with Tink's keyset machinery:
// a registry.KeyManager backing a typed FPE key, key templates for the
// three AES sizes, and a factory that builds a tokenizing primitive from a
// keyset handle. The cryptographic core never imports Tink; this package is
// the only place key material and keysets meet.
package tinkfpe

import (
	"github.com/zone1511/fpe4j/alphabet"
	"github.com/zone1511/fpe4j/internal/ferr"
	"github.com/zone1511/fpe4j/subtle"
)

// FPE is the primitive interface this package produces from a keyset
// handle. It follows Tink's primitive pattern, similar to
// tink.DeterministicAEAD: same plaintext, tweak, and key always produce the
// same token.
type FPE interface {
	// Tokenize encrypts plaintext while preserving its format: punctuation
	// stays in place and data characters are replaced by characters from
	// the same alphabet.
	Tokenize(plaintext string) (string, error)

	// Detokenize is the inverse of Tokenize. The originalPlaintext
	// parameter, when non-empty, pins the alphabet to the one the original
	// value would have produced; tokens consisting of a different character
	// class than their plaintext (e.g. an all-digit token for a
	// mixed-alphanumeric original) decrypt correctly only with it.
	Detokenize(tokenized string, originalPlaintext string) (string, error)
}

// maxTweakLen bounds the tweak length the FF1 instances built by this
// package accept.
const maxTweakLen = 1 << 16

// primitive implements FPE over the FF1 cipher, deriving the radix from
// each input's alphabet.
type primitive struct {
	key   []byte
	tweak []byte
}

func newPrimitive(key, tweak []byte) (*primitive, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ferr.InvalidKeyf("key must be 16, 24, or 32 bytes: %d", len(key))
	}
	if tweak == nil {
		tweak = []byte{}
	}
	if len(tweak) > maxTweakLen {
		return nil, ferr.InvalidArgumentf("tweak must be at most %d bytes: %d", maxTweakLen, len(tweak))
	}
	return &primitive{key: key, tweak: tweak}, nil
}

// Tokenize encrypts plaintext using format-preserving encryption.
func (p *primitive) Tokenize(plaintext string) (string, error) {
	mask, data := alphabet.SeparateFormatAndData(plaintext)
	alpha := alphabet.DetermineAlphabet(data)
	return p.apply(plaintext, data, alpha, mask, true)
}

// Detokenize decrypts a token produced by Tokenize.
func (p *primitive) Detokenize(tokenized string, originalPlaintext string) (string, error) {
	mask, data := alphabet.SeparateFormatAndData(tokenized)
	var alpha string
	if originalPlaintext != "" {
		_, originalData := alphabet.SeparateFormatAndData(originalPlaintext)
		alpha = alphabet.DetermineAlphabet(originalData)
	} else {
		alpha = alphabet.DetermineAlphabet(data)
	}
	return p.apply(tokenized, data, alpha, mask, false)
}

func (p *primitive) apply(original, data, alpha string, mask []bool, encrypt bool) (string, error) {
	symbols, err := alphabet.StringToNumeric(data, alpha)
	if err != nil {
		return "", err
	}

	cipher, err := subtle.NewFF1(len(alpha), maxTweakLen)
	if err != nil {
		return "", err
	}

	var out []int
	if encrypt {
		out, err = cipher.Encrypt(p.key, p.tweak, symbols)
	} else {
		out, err = cipher.Decrypt(p.key, p.tweak, symbols)
	}
	if err != nil {
		return "", err
	}

	outData, err := alphabet.NumericToString(out, alpha)
	if err != nil {
		return "", err
	}
	return alphabet.ReconstructWithFormat(outData, mask, original)
}

var _ FPE = (*primitive)(nil)
