// Package subtle implements the low-level NIST SP 800-38G and FFX primitives
// that back the FF1, FF3, and FFX drivers: radix/integer conversion, modular
// arithmetic, byte-string construction, and the AES-derived CIPH and PRF
// functions. Everything here is unexported-state-free and safe for
// concurrent use; callers normally use the higher-level package instead.
package subtle

import (
	"math"
	"math/big"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// Bounds on symbol-array length and radix shared by every driver in this
// package. MaxLen mirrors the reference implementation's Constants.MAXLEN,
// which bounds FF1's maxlen at 2^32-1.
const (
	MinLen   = 2
	MaxLen   = 1<<32 - 1
	MinRadix = 2
	MaxRadix = 1 << 16
)

// ConformanceTrace, when true, causes the FF1 round function to report
// its intermediate values through a slog.Logger (see traceStep in
// ciphers.go). It defaults to off; production callers have no reason to
// enable it.
var ConformanceTrace = false

// Num interprets X as a big-endian numeral string in base radix.
func Num(X []int, radix int) (*big.Int, error) {
	if radix < MinRadix || radix > MaxRadix {
		return nil, ferr.InvalidArgumentf("radix must be in [%d, %d]: %d", MinRadix, MaxRadix, radix)
	}
	if len(X) < 1 {
		return nil, ferr.InvalidArgumentf("X must not be empty")
	}
	y := new(big.Int)
	r := big.NewInt(int64(radix))
	for i, xi := range X {
		if xi < 0 || xi >= radix {
			return nil, ferr.InvalidArgumentf("X[%d] must be in [0, %d): %d", i, radix, xi)
		}
		y.Mul(y, r)
		y.Add(y, big.NewInt(int64(xi)))
	}
	return y, nil
}

// NumBytes interprets B as a nonnegative big-endian integer. Unlike
// Integer (used by IFX), the sign bit of the leading byte carries no
// special meaning here.
func NumBytes(B []byte) (*big.Int, error) {
	if len(B) < 1 || len(B) > MaxLen {
		return nil, ferr.InvalidArgumentf("length of B must be in [1, %d]: %d", MaxLen, len(B))
	}
	return new(big.Int).SetBytes(B), nil
}

// Str is the inverse of Num: it renders x as an m-element base-radix array,
// left-padded with zeros. It rejects x >= radix^m rather than silently
// truncating or wrapping.
func Str(x *big.Int, radix, m int) ([]int, error) {
	if radix < MinRadix || radix > MaxRadix {
		return nil, ferr.InvalidArgumentf("radix must be in [%d, %d]: %d", MinRadix, MaxRadix, radix)
	}
	if m < 1 || m > MaxLen {
		return nil, ferr.InvalidArgumentf("m must be in [1, %d]: %d", MaxLen, m)
	}
	if x.Sign() < 0 {
		return nil, ferr.InvalidArgumentf("x must be nonnegative: %s", x)
	}
	limit := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(m)), nil)
	if x.Cmp(limit) >= 0 {
		return nil, ferr.InvalidArgumentf("x must be less than radix^m (%s): %s", limit, x)
	}

	X := make([]int, m)
	y := new(big.Int).Set(x)
	r := big.NewInt(int64(radix))
	rem := new(big.Int)
	for i := m - 1; i >= 0; i-- {
		y.DivMod(y, r, rem)
		X[i] = int(rem.Int64())
	}
	return X, nil
}

// Rev reverses the order of a symbol array, returning a new slice.
func Rev(X []int) []int {
	Y := make([]int, len(X))
	for i, x := range X {
		Y[len(X)-1-i] = x
	}
	return Y
}

// RevB reverses the order of a byte array, returning a new slice.
func RevB(B []byte) []byte {
	Y := make([]byte, len(B))
	for i, b := range B {
		Y[len(B)-1-i] = b
	}
	return Y
}

// Xor computes the element-wise xor of two equal-length, nonempty byte
// slices.
func Xor(A, B []byte) ([]byte, error) {
	if len(A) == 0 || len(B) == 0 {
		return nil, ferr.InvalidArgumentf("A and B must not be empty")
	}
	if len(A) != len(B) {
		return nil, ferr.InvalidArgumentf("A and B must have equal length: %d != %d", len(A), len(B))
	}
	Z := make([]byte, len(A))
	for i := range A {
		Z[i] = A[i] ^ B[i]
	}
	return Z, nil
}

// ModInt returns the Euclidean (nonnegative) remainder of a mod m.
func ModInt(a, m int) (int, error) {
	if m <= 0 {
		return 0, ferr.Arithmeticf("m must be positive: %d", m)
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r, nil
}

// Mod returns the Euclidean (nonnegative) remainder of a mod m for
// arbitrary-precision a and m.
func Mod(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, ferr.Arithmeticf("m must be positive: %s", m)
	}
	return new(big.Int).Mod(a, m), nil
}

// Bytestring encodes a nonnegative integer as exactly s big-endian bytes.
// It fails if x does not fit in s bytes.
func Bytestring(x *big.Int, s int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, ferr.InvalidArgumentf("x must be nonnegative: %s", x)
	}
	if s < 0 {
		return nil, ferr.InvalidArgumentf("s must be nonnegative: %d", s)
	}
	raw := x.Bytes()
	if len(raw) > s {
		return nil, ferr.InvalidArgumentf("x does not fit in %d bytes: %s", s, x)
	}
	out := make([]byte, s)
	copy(out[s-len(raw):], raw)
	return out, nil
}

// BytestringInt is Bytestring for a plain machine int.
func BytestringInt(x, s int) ([]byte, error) {
	return Bytestring(big.NewInt(int64(x)), s)
}

// Log2 returns the base-2 logarithm of x.
func Log2(x float64) float64 {
	return math.Log2(x)
}

// Floor returns the greatest integer less than or equal to x.
func Floor(x float64) int {
	return int(math.Floor(x))
}

// Ceiling returns the least integer greater than or equal to x.
func Ceiling(x float64) int {
	return int(math.Ceil(x))
}

// Concatenate joins two byte sequences.
func Concatenate(A, B []byte) []byte {
	out := make([]byte, 0, len(A)+len(B))
	out = append(out, A...)
	out = append(out, B...)
	return out
}

// ConcatInts joins two symbol arrays.
func ConcatInts(A, B []int) []int {
	out := make([]int, 0, len(A)+len(B))
	out = append(out, A...)
	out = append(out, B...)
	return out
}

// Zeros returns k zero bytes. Used to pad block strings out to a multiple
// of 16 bytes.
func Zeros(k int) []byte {
	if k < 0 {
		k = 0
	}
	return make([]byte, k)
}
