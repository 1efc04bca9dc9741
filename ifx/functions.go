// Package ifx implements the experimental IFX construction: a Feistel
// cipher over non-uniform, per-position radix vectors, using prime-factor
// splitting to derive a balanced pair of uniform-radix halves and a
// Thorp-like round schedule over them. Unlike FF1/FF3, IFX is not a
// published, analyzed standard; it exists as a proof of concept for
// encrypting mixed-alphabet strings (e.g. digits and letters together).
package ifx

import (
	"math/big"
	"sort"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// Product returns the product of the elements of W as an unconstrained
// integer. It rejects any nonpositive element.
func Product(W []int) (*big.Int, error) {
	if len(W) < 1 {
		return nil, ferr.InvalidArgumentf("W must not be empty")
	}
	y := big.NewInt(1)
	for i, w := range W {
		if w < 1 {
			return nil, ferr.InvalidArgumentf("W[%d] must be a positive integer: %d", i, w)
		}
		y.Mul(y, big.NewInt(int64(w)))
	}
	return y, nil
}

// Factors returns the prime factors, with multiplicity, of every element of
// W. It builds a smallest-prime-factor sieve up to max(W) and decomposes
// each element against it, the same "factor every value up to the largest
// one, then look up each W[i]" structure as the reference's modified Sieve
// of Eratosthenes, without replicating its recursive E[i/product(E[i])]
// bookkeeping.
func Factors(W []int) ([]int, error) {
	if len(W) < 1 {
		return nil, ferr.InvalidArgumentf("W must not be empty")
	}
	maxW := 0
	for i, w := range W {
		if w < 2 {
			return nil, ferr.InvalidArgumentf("W[%d] must be at least 2: %d", i, w)
		}
		if w > maxW {
			maxW = w
		}
	}
	spf := smallestPrimeFactors(maxW)

	var G []int
	for _, w := range W {
		n := w
		for n > 1 {
			p := spf[n]
			G = append(G, p)
			n /= p
		}
	}
	return G, nil
}

// smallestPrimeFactors returns, for every k in [2,n], the smallest prime
// factor of k, computed with a standard sieve of Eratosthenes.
func smallestPrimeFactors(n int) []int {
	spf := make([]int, n+1)
	for i := 2; i <= n; i++ {
		if spf[i] != 0 {
			continue
		}
		for j := i; j <= n; j += i {
			if spf[j] == 0 {
				spf[j] = i
			}
		}
	}
	return spf
}

// SortDescending sorts a slice of prime factors in descending order, for the
// greedy u/v split in NewIFX.
func SortDescending(G []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(G)))
}

// Sqrt returns the integer square root of a nonnegative unconstrained
// integer: the largest y such that y*y <= x. math/big's built-in Sqrt is
// already a correctly-rounded integer square root, so there is no need to
// hand-roll the reference's Babylonian-method loop.
func Sqrt(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 {
		return nil, ferr.InvalidArgumentf("x must be nonnegative: %s", x)
	}
	return new(big.Int).Sqrt(x), nil
}

// Rounds returns the number of Feistel rounds required for a split with
// radices u and v: 4*ceil((bitlen(u-1)+bitlen(v-1))/min(bitlen(u-1),bitlen(v-1))).
func Rounds(u, v *big.Int) (int, error) {
	two := big.NewInt(2)
	if u.Cmp(two) < 0 {
		return 0, ferr.InvalidArgumentf("u must be at least 2: %s", u)
	}
	if v.Cmp(two) < 0 {
		return 0, ferr.InvalidArgumentf("v must be at least 2: %s", v)
	}
	x := new(big.Int).Sub(u, big.NewInt(1)).BitLen()
	y := new(big.Int).Sub(v, big.NewInt(1)).BitLen()
	min := x
	if y < min {
		min = y
	}
	r := 4 * ceilDiv(x+y, min)
	return r, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Padding returns k zero bytes.
func Padding(k int) ([]byte, error) {
	if k < 0 {
		return nil, ferr.InvalidArgumentf("k must be nonnegative: %d", k)
	}
	return make([]byte, k), nil
}

// Mod returns the Euclidean (nonnegative) remainder of x modulo the
// positive integer m.
func Mod(x, m int) (int, error) {
	if m < 1 {
		return 0, ferr.Arithmeticf("m must be a positive integer: %d", m)
	}
	r := x % m
	if r < 0 {
		r += m
	}
	return r, nil
}

// Bytes encodes an unconstrained (possibly negative) integer as its
// minimal-length two's-complement big-endian byte representation, matching
// Java's BigInteger.toByteArray(): zero encodes as a single zero byte, and
// a positive value whose leading bit would otherwise read as a sign bit
// gets a leading zero byte inserted.
func Bytes(x *big.Int) []byte {
	if x.Sign() == 0 {
		return []byte{0}
	}
	if x.Sign() > 0 {
		b := x.Bytes()
		if b[0]&0x80 != 0 {
			out := make([]byte, len(b)+1)
			copy(out[1:], b)
			return out
		}
		return b
	}

	mag := new(big.Int).Neg(x)
	bits := mag.BitLen()
	isPowerOfTwo := new(big.Int).And(mag, new(big.Int).Sub(mag, big.NewInt(1))).Sign() == 0
	if !isPowerOfTwo {
		bits++
	}
	nBytes := (bits + 7) / 8
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	twosComplement := new(big.Int).Add(modulus, x)
	b := twosComplement.Bytes()
	out := make([]byte, nBytes)
	copy(out[nBytes-len(b):], b)
	return out
}

// BytesInt is Bytes for a plain machine int.
func BytesInt(x int) []byte {
	return Bytes(big.NewInt(int64(x)))
}

// Integer decodes X as a two's-complement signed big-endian integer. Unlike
// subtle.NumBytes (used by FF1/FF3, where the sign bit carries no special
// meaning), IFX's round function output is interpreted as signed: this
// asymmetry is load-bearing for IFX ciphertext values and must not be
// unified with subtle.NumBytes.
func Integer(X []byte) (*big.Int, error) {
	if len(X) < 1 {
		return nil, ferr.InvalidArgumentf("X must not be empty")
	}
	v := new(big.Int).SetBytes(X)
	if X[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*len(X)))
		v.Sub(v, modulus)
	}
	return v, nil
}
