package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"log/slog"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// zeroIV is the fixed 16-byte zero initialization vector used by every CBC
// construction in this package (PRF, CBC-MAC round functions, IFX).
var zeroIV = make([]byte, aes.BlockSize)

// Ciph performs AES-ECB encryption under key: each 16-byte block of X is
// encrypted independently. ECB is not a named mode in crypto/cipher, so each
// block is encrypted on its own with a CBC encrypter and a zero IV: CBC
// degenerates to ECB for a single block, the same trick the rest of this
// ecosystem's FF1/FF3 ports use to avoid importing a third-party ECB package.
func Ciph(key, X []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ferr.InvalidKeyf("invalid AES key: %v", err)
	}
	if len(X) < 1 || len(X)%block.BlockSize() != 0 || len(X) > MaxLen {
		return nil, ferr.InvalidArgumentf("length of X must be a positive multiple of %d, at most %d: %d", block.BlockSize(), MaxLen, len(X))
	}
	out := make([]byte, len(X))
	for j := 0; j < len(X); j += aes.BlockSize {
		mode := cipher.NewCBCEncrypter(block, zeroIV)
		mode.CryptBlocks(out[j:j+aes.BlockSize], X[j:j+aes.BlockSize])
	}
	return out, nil
}

// CiphIV is Ciph with a caller-supplied initialization vector, used by IFX's
// subkey-seed derivation and by round functions that chain CBC state across
// calls (the "CIPH(K,P,Q)" notation in the reference, where P doubles as an
// IV).
func CiphIV(key, iv, X []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ferr.InvalidKeyf("invalid AES key: %v", err)
	}
	if len(X) < 1 || len(X)%block.BlockSize() != 0 || len(X) > MaxLen {
		return nil, ferr.InvalidArgumentf("length of X must be a positive multiple of %d, at most %d: %d", block.BlockSize(), MaxLen, len(X))
	}
	mode := cipher.NewCBCEncrypter(block, iv)
	out := make([]byte, len(X))
	mode.CryptBlocks(out, X)
	return out, nil
}

// Prf is NIST SP 800-38G Algorithm 6: a CBC-MAC over the 16-byte blocks of
// X under a zero IV, returning only the final block. It is implemented in
// terms of CiphIV rather than the hand-rolled per-block XOR loop the
// reference shows as an equivalence demonstration (prf vs. prf2 in
// Ciphers.java) — both constructions are the same CBC-MAC, and Go's
// cipher.BlockMode already performs it correctly.
func Prf(key, X []byte) ([]byte, error) {
	if len(X) < 1 || len(X)%aes.BlockSize != 0 || len(X) > MaxLen {
		return nil, ferr.InvalidArgumentf("length of X must be a positive multiple of %d, at most %d: %d", aes.BlockSize, MaxLen, len(X))
	}
	Y, err := CiphIV(key, zeroIV, X)
	if err != nil {
		return nil, err
	}
	return Y[len(Y)-aes.BlockSize:], nil
}

// traceStep reports a conformance-debugging value when ConformanceTrace is
// enabled. It is never called by production code paths with side effects
// beyond logging, and is a no-op by default.
func traceStep(round int, step, msg string, args ...any) {
	if !ConformanceTrace {
		return
	}
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, slog.Int("round", round), slog.String("step", step))
	attrs = append(attrs, args...)
	slog.Debug(msg, attrs...)
}
