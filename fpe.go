// Package fpe4j implements format-preserving encryption (FPE): deterministic
// symmetric ciphers that map a sequence of symbols in a radix alphabet to a
// sequence of the same length over the same alphabet, under a secret AES key
// and a public tweak.
//
// Four constructions are provided:
//
//   - FF1, the balanced-Feistel FPE of NIST SP 800-38G (algorithms 7/8),
//     with a variable-length tweak.
//   - FF3, the unbalanced-Feistel FPE of NIST SP 800-38G (algorithms 9/10),
//     with a fixed 8-byte tweak and byte-reversed AES keying.
//   - FFX, the parameterized Feistel framework of Bellare, Rogaway, and
//     Spies that generalizes both, with pluggable split, round count, round
//     function, and arithmetic, plus the A2 and A10 parameter sets from the
//     FFX paper.
//   - IFX, an experimental variant operating on non-uniform (per-position)
//     radices via prime-factor splitting.
//
// Plaintexts and ciphertexts are symbol arrays: []int values with each
// element in [0, radix). Mapping application alphabets (letters, PAN digits)
// onto symbol arrays is the caller's concern; see the alphabet package for a
// convenience layer and the tinkfpe package for Tink keyset integration.
//
// Example usage:
//
//	key, _ := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
//
//	cipher, err := fpe4j.NewFF1(10, 16)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ct, err := cipher.Encrypt(key, []byte{}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pt, err := cipher.Decrypt(key, []byte{}, ct)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// pt is again [0 1 2 3 4 5 6 7 8 9]
//
// All cipher objects are immutable after construction and safe for
// concurrent use across distinct (key, tweak, input) triples. None of the
// constructions authenticates its output; FPE is deterministic by design,
// so equal inputs under equal (key, tweak) produce equal outputs.
package fpe4j

import (
	"github.com/zone1511/fpe4j/ifx"
	"github.com/zone1511/fpe4j/subtle"
)

// FF1 is the NIST SP 800-38G FF1 cipher. The zero value is not usable;
// construct one with NewFF1.
type FF1 = subtle.FF1

// NewFF1 constructs an FF1 cipher for the given radix, accepting tweaks of
// up to maxTlen bytes. The radix must satisfy radix^2 >= 100.
func NewFF1(radix, maxTlen int) (*FF1, error) {
	return subtle.NewFF1(radix, maxTlen)
}

// FF3 is the NIST SP 800-38G FF3 cipher. The zero value is not usable;
// construct one with NewFF3.
type FF3 = subtle.FF3

// NewFF3 constructs an FF3 cipher for the given radix. FF3 tweaks are
// always exactly 8 bytes.
func NewFF3(radix int) (*FF3, error) {
	return subtle.NewFF3(radix)
}

// FFX is the generic Feistel driver underlying FF1 and FF3, usable directly
// with a custom parameter pack.
type FFX = subtle.FFX

// FFXParameters is the capability set a custom FFX parameter pack supplies:
// radix and length bounds, arithmetic, Feistel method, split, round count,
// and the round function.
type FFXParameters = subtle.FFXParameters

// NewFFX constructs an FFX engine over the given parameter pack.
func NewFFX(params FFXParameters) (*FFX, error) {
	return subtle.NewFFX(params)
}

// A2 is the radix-2 FFX instantiation from the FFX paper.
type A2 = subtle.A2

// NewA2 constructs the A2 cipher.
func NewA2() (*A2, error) {
	return subtle.NewA2()
}

// A10 is the radix-10 FFX instantiation from the FFX paper.
type A10 = subtle.A10

// NewA10 constructs the A10 cipher.
func NewA10() (*A10, error) {
	return subtle.NewA10()
}

// IFX is the experimental non-uniform-radix Feistel cipher.
type IFX = ifx.IFX

// NewIFX constructs an IFX cipher over the per-position radix vector W.
// Each element of W must be at least 2 and the product of W at least 100.
func NewIFX(W []int) (*IFX, error) {
	return ifx.NewIFX(W)
}
