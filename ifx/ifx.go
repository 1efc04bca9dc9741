package ifx

import (
	"math/big"

	"github.com/zone1511/fpe4j/internal/ferr"
	"github.com/zone1511/fpe4j/subtle"
)

// IFX is the experimental non-uniform-radix Feistel engine of §4.7. It
// operates on a fixed radix vector W (each position of a symbol array has
// its own radix) by treating the whole array as one mixed-radix integer,
// splitting that integer's range into two uniform-radix factors u and v
// derived from W's prime factorization, and running a Feistel network over
// the pair. It carries no mutable state beyond its immutable W/u/v and is
// safe for concurrent use across distinct keys.
type IFX struct {
	w        *big.Int
	u        *big.Int
	v        *big.Int
	radixVec []int
}

// NewIFX constructs an IFX engine for the given radix vector. Each element
// of W must be at least 2, and W must have at least two elements; the
// product of W must be at least 100 so that the cipher has a minimally
// useful domain.
func NewIFX(W []int) (*IFX, error) {
	if len(W) < 2 {
		return nil, ferr.InvalidArgumentf("W must have at least two elements: %d", len(W))
	}

	w, err := Product(W)
	if err != nil {
		return nil, err
	}
	if w.Cmp(big.NewInt(100)) < 0 {
		return nil, ferr.InvalidArgumentf("product(W) must be at least 100: %s", w)
	}

	r, err := Sqrt(w)
	if err != nil {
		return nil, err
	}

	G, err := Factors(W)
	if err != nil {
		return nil, err
	}
	SortDescending(G)

	u := big.NewInt(1)
	v := big.NewInt(1)
	for _, g := range G {
		candidate := new(big.Int).Mul(u, big.NewInt(int64(g)))
		if candidate.Cmp(r) <= 0 {
			u = candidate
		} else {
			v.Mul(v, big.NewInt(int64(g)))
		}
	}

	return &IFX{w: w, u: u, v: v, radixVec: append([]int(nil), W...)}, nil
}

// U returns the derived radix of the left (most significant) split.
func (f *IFX) U() *big.Int { return new(big.Int).Set(f.u) }

// V returns the derived radix of the right (least significant) split.
func (f *IFX) V() *big.Int { return new(big.Int).Set(f.v) }

// ProductW returns the product of the configured radix vector.
func (f *IFX) ProductW() *big.Int { return new(big.Int).Set(f.w) }

func validKey(key []byte) bool {
	switch len(key) {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}

// num interprets X as a mixed-radix big-endian integer against f.radixVec.
func (f *IFX) num(X []int) (*big.Int, error) {
	if len(X) != len(f.radixVec) {
		return nil, ferr.InvalidArgumentf("X must be the same length as W: %d != %d", len(X), len(f.radixVec))
	}
	y := new(big.Int)
	for i, xi := range X {
		if xi < 0 || xi >= f.radixVec[i] {
			return nil, ferr.InvalidArgumentf("X[%d] must be in [0, %d): %d", i, f.radixVec[i], xi)
		}
		y.Mul(y, big.NewInt(int64(f.radixVec[i])))
		y.Add(y, big.NewInt(int64(xi)))
	}
	return y, nil
}

// str is the inverse of num: it renders y as a len(W)-element array with
// each position's value bounded by the corresponding W[i].
func (f *IFX) str(y *big.Int) ([]int, error) {
	if y.Sign() < 0 {
		return nil, ferr.InvalidArgumentf("y must be nonnegative: %s", y)
	}
	if y.Cmp(f.w) >= 0 {
		return nil, ferr.InvalidArgumentf("y must be less than %s: %s", f.w, y)
	}
	X := make([]int, len(f.radixVec))
	rem := new(big.Int)
	cur := new(big.Int).Set(y)
	for i := len(f.radixVec) - 1; i >= 0; i-- {
		m := big.NewInt(int64(f.radixVec[i]))
		cur.DivMod(cur, m, rem)
		X[i] = int(rem.Int64())
	}
	return X, nil
}

// subkeySeed computes the per-(key,tweak) subkey seed P that serves as the
// IV for every round's CBC pass: the last 16 bytes of a CBC encryption,
// under a zero IV, of R || S || zeros || T || U || V, where R, U and V encode
// the round count, u and v, S encodes the combined length of T, U, V and R,
// and the zeros pad the whole to a multiple of 16 bytes.
func (f *IFX) subkeySeed(key, T []byte, r int) ([]byte, error) {
	R := BytesInt(r)
	U := Bytes(f.u)
	V := Bytes(f.v)
	s := len(T) + len(U) + len(V) + len(R)
	S := BytesInt(s)

	pad, err := Mod(-len(R)-len(S)-len(T)-len(U)-len(V), 16)
	if err != nil {
		return nil, err
	}
	padding, err := Padding(pad)
	if err != nil {
		return nil, err
	}

	O := make([]byte, 0, len(R)+len(S)+len(padding)+len(T)+len(U)+len(V))
	O = append(O, R...)
	O = append(O, S...)
	O = append(O, padding...)
	O = append(O, T...)
	O = append(O, U...)
	O = append(O, V...)

	cipherOut, err := subtle.CiphIV(key, make([]byte, 16), O)
	if err != nil {
		return nil, err
	}
	return cipherOut[len(cipherOut)-16:], nil
}

// roundOutput computes f = Integer(CIPH(K, IV=P, Q)) for round i against
// remainder b, where Q packs the round index and b into 16-byte-aligned
// blocks. The result is a signed two's-complement integer (see Integer's
// doc comment): this sign is part of the cipher's observable behavior.
func (f *IFX) roundOutput(key, P []byte, i int, b *big.Int) (*big.Int, error) {
	I := BytesInt(i)
	B := Bytes(b)
	pad, err := Mod(-len(I)-len(B), 16)
	if err != nil {
		return nil, err
	}
	padding, err := Padding(pad)
	if err != nil {
		return nil, err
	}
	Q := make([]byte, 0, len(I)+len(padding)+len(B))
	Q = append(Q, I...)
	Q = append(Q, padding...)
	Q = append(Q, B...)

	F, err := subtle.CiphIV(key, P, Q)
	if err != nil {
		return nil, err
	}
	last := F[len(F)-16:]
	return Integer(last)
}

// Encrypt encrypts the symbol array X (len(X) == len(W), X[i] < W[i]) under
// key and tweak T.
func (f *IFX) Encrypt(key, T []byte, X []int) ([]int, error) {
	if key == nil {
		return nil, ferr.NullArgumentf("key must not be nil")
	}
	if !validKey(key) {
		return nil, ferr.InvalidKeyf("key must be a valid AES key (16, 24, or 32 bytes): %d", len(key))
	}
	if T == nil {
		return nil, ferr.NullArgumentf("T must not be nil")
	}
	x, err := f.num(X)
	if err != nil {
		return nil, err
	}

	a := new(big.Int)
	b := new(big.Int)
	a.DivMod(x, f.v, b)

	r, err := Rounds(f.u, f.v)
	if err != nil {
		return nil, err
	}
	P, err := f.subkeySeed(key, T, r)
	if err != nil {
		return nil, err
	}

	for i := 0; i < r; i++ {
		d := f.u
		if i%2 != 0 {
			d = f.v
		}
		fOut, err := f.roundOutput(key, P, i, b)
		if err != nil {
			return nil, err
		}
		c := new(big.Int).Add(a, fOut)
		c.Mod(c, d)
		a, b = b, c
	}

	y := new(big.Int).Mul(a, f.v)
	y.Add(y, b)
	return f.str(y)
}

// Decrypt decrypts the symbol array Y (len(Y) == len(W), Y[i] < W[i]) under
// key and tweak T.
func (f *IFX) Decrypt(key, T []byte, Y []int) ([]int, error) {
	if key == nil {
		return nil, ferr.NullArgumentf("key must not be nil")
	}
	if !validKey(key) {
		return nil, ferr.InvalidKeyf("key must be a valid AES key (16, 24, or 32 bytes): %d", len(key))
	}
	if T == nil {
		return nil, ferr.NullArgumentf("T must not be nil")
	}
	y, err := f.num(Y)
	if err != nil {
		return nil, err
	}

	a := new(big.Int)
	b := new(big.Int)
	a.DivMod(y, f.v, b)

	r, err := Rounds(f.u, f.v)
	if err != nil {
		return nil, err
	}
	P, err := f.subkeySeed(key, T, r)
	if err != nil {
		return nil, err
	}

	for i := r - 1; i >= 0; i-- {
		d := f.u
		if i%2 != 0 {
			d = f.v
		}
		c := b
		b = a
		fOut, err := f.roundOutput(key, P, i, b)
		if err != nil {
			return nil, err
		}
		a = new(big.Int).Sub(c, fOut)
		a.Mod(a, d)
	}

	x := new(big.Int).Mul(a, f.v)
	x.Add(x, b)
	return f.str(x)
}
