package subtle

import (
	"math/big"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// FeistelMethod selects how the FFX round loop repartitions its working
// state between rounds.
type FeistelMethod int

const (
	// MethodOne repartitions the whole string each round.
	MethodOne FeistelMethod = iota + 1
	// MethodTwo swaps fixed-size halves each round.
	MethodTwo
)

// ArithmeticFunc is the pair of modular operations an FFX parameter pack
// uses to fold a round function's output into one half of the state.
type ArithmeticFunc struct {
	Add func(X, Y []int) ([]int, error)
	Sub func(X, Y []int) ([]int, error)
}

// RoundFunc computes the per-round pseudorandom output F_K(n, T, i, B).
type RoundFunc func(key []byte, n int, T []byte, i int, B []int) ([]int, error)

// FFXParameters is the capability set an FFX parameter pack must supply:
// radix and length bounds, the arithmetic strategy, the Feistel method, and
// the split/round-count/round functions. Concrete packs (FF1Parameters,
// FF3Parameters, A2Parameters, A10Parameters) are plain structs implementing
// this interface rather than subclasses of a shared base type.
type FFXParameters interface {
	Radix() int
	MinLen() int
	MaxLen() int
	MinTLen() int
	MaxTLen() int
	Arithmetic() ArithmeticFunc
	Method() FeistelMethod
	Split(n int) (int, error)
	Rounds(n int) (int, error)
	F(key []byte, n int, T []byte, i int, B []int) ([]int, error)
	ValidKey(key []byte) bool
}

// FFX is the generic Feistel driver described in the Bellare/Rogaway/Spies
// FFX paper. It holds no mutable state beyond its immutable parameter pack
// and is safe for concurrent use.
type FFX struct {
	params FFXParameters
}

// NewFFX constructs an FFX engine over the given parameter pack.
func NewFFX(params FFXParameters) (*FFX, error) {
	if params == nil {
		return nil, ferr.NullArgumentf("params must not be nil")
	}
	if params.Radix() < MinRadix {
		return nil, ferr.InvalidArgumentf("radix must be at least %d: %d", MinRadix, params.Radix())
	}
	if params.MinLen() < 2 {
		return nil, ferr.InvalidArgumentf("minlen must be at least 2: %d", params.MinLen())
	}
	if w := new(big.Int).Exp(big.NewInt(int64(params.Radix())), big.NewInt(int64(params.MinLen())), nil); w.Cmp(big.NewInt(100)) < 0 {
		return nil, ferr.InvalidArgumentf("radix^minlen must be at least 100: %s", w)
	}
	if params.MaxLen() < params.MinLen() {
		return nil, ferr.InvalidArgumentf("maxlen must be at least minlen: %d < %d", params.MaxLen(), params.MinLen())
	}
	if params.MaxTLen() < 0 {
		return nil, ferr.InvalidArgumentf("maxTlen must be nonnegative: %d", params.MaxTLen())
	}
	return &FFX{params: params}, nil
}

func (f *FFX) validate(key, T []byte, X []int) (n, l, r int, err error) {
	if key == nil {
		return 0, 0, 0, ferr.NullArgumentf("key must not be nil")
	}
	if !f.params.ValidKey(key) {
		return 0, 0, 0, ferr.InvalidKeyf("key is not valid for this parameter set")
	}
	if T == nil {
		return 0, 0, 0, ferr.NullArgumentf("T must not be nil")
	}
	if len(T) < f.params.MinTLen() || len(T) > f.params.MaxTLen() {
		return 0, 0, 0, ferr.InvalidArgumentf("length of T must be in [%d, %d]: %d", f.params.MinTLen(), f.params.MaxTLen(), len(T))
	}
	if X == nil {
		return 0, 0, 0, ferr.NullArgumentf("X must not be nil")
	}
	n = len(X)
	if n < f.params.MinLen() || n > f.params.MaxLen() {
		return 0, 0, 0, ferr.InvalidArgumentf("length of X must be in [%d, %d]: %d", f.params.MinLen(), f.params.MaxLen(), n)
	}
	radix := f.params.Radix()
	for i, xi := range X {
		if xi < 0 || xi >= radix {
			return 0, 0, 0, ferr.InvalidArgumentf("X[%d] must be in [0, %d): %d", i, radix, xi)
		}
	}
	l, err = f.params.Split(n)
	if err != nil {
		return 0, 0, 0, err
	}
	maxL := n / 2
	if f.params.Method() == MethodTwo {
		// Method TWO only swaps the halves, so ceiling(n/2) (FF3's split)
		// is the mirror image of floor(n/2) and is accepted as well.
		maxL = n - n/2
	}
	if l < 1 || l > maxL {
		return 0, 0, 0, ferr.InvalidArgumentf("split(n) must be in [1, %d]: %d", maxL, l)
	}
	r, err = f.params.Rounds(n)
	if err != nil {
		return 0, 0, 0, err
	}
	if n == 2*l || f.params.Method() == MethodTwo {
		if r < 8 {
			return 0, 0, 0, ferr.InvalidArgumentf("round count must be at least 8: %d", r)
		}
	} else if r < 4*n/l {
		return 0, 0, 0, ferr.InvalidArgumentf("round count must be at least %d: %d", 4*n/l, r)
	}
	return n, l, r, nil
}

// Encrypt implements FFX.Encrypt(K,T,X) for both Feistel methods.
func (f *FFX) Encrypt(key, T []byte, X []int) ([]int, error) {
	n, l, r, err := f.validate(key, T, X)
	if err != nil {
		return nil, err
	}
	arith := f.params.Arithmetic()

	switch f.params.Method() {
	case MethodOne:
		work := append([]int(nil), X...)
		for i := 0; i < r; i++ {
			A, B := work[:l], work[l:n]
			fOut, err := f.params.F(key, n, T, i, B)
			if err != nil {
				return nil, err
			}
			C, err := arith.Add(A, fOut)
			if err != nil {
				return nil, err
			}
			work = ConcatInts(B, C)
		}
		return work, nil
	case MethodTwo:
		A, B := append([]int(nil), X[:l]...), append([]int(nil), X[l:n]...)
		for i := 0; i < r; i++ {
			fOut, err := f.params.F(key, n, T, i, B)
			if err != nil {
				return nil, err
			}
			C, err := arith.Add(A, fOut)
			if err != nil {
				return nil, err
			}
			A, B = B, C
		}
		return ConcatInts(A, B), nil
	default:
		return nil, ferr.Fatalf("unknown Feistel method: %d", f.params.Method())
	}
}

// Decrypt implements FFX.Decrypt(K,T,Y) for both Feistel methods.
func (f *FFX) Decrypt(key, T []byte, Y []int) ([]int, error) {
	n, l, r, err := f.validate(key, T, Y)
	if err != nil {
		return nil, err
	}
	arith := f.params.Arithmetic()

	switch f.params.Method() {
	case MethodOne:
		work := append([]int(nil), Y...)
		for i := r - 1; i >= 0; i-- {
			B, C := work[:n-l], work[n-l:]
			fOut, err := f.params.F(key, n, T, i, B)
			if err != nil {
				return nil, err
			}
			A, err := arith.Sub(C, fOut)
			if err != nil {
				return nil, err
			}
			work = ConcatInts(A, B)
		}
		return work, nil
	case MethodTwo:
		A, B := append([]int(nil), Y[:l]...), append([]int(nil), Y[l:n]...)
		for i := r - 1; i >= 0; i-- {
			C := B
			B = A
			fOut, err := f.params.F(key, n, T, i, B)
			if err != nil {
				return nil, err
			}
			A, err = arith.Sub(C, fOut)
			if err != nil {
				return nil, err
			}
		}
		return ConcatInts(A, B), nil
	default:
		return nil, ferr.Fatalf("unknown Feistel method: %d", f.params.Method())
	}
}

// BlockwiseArithmetic interprets each half as a base-radix numeral and
// adds/subtracts modulo radix^len(X).
func BlockwiseArithmetic(radix int) ArithmeticFunc {
	return ArithmeticFunc{
		Add: func(X, Y []int) ([]int, error) { return blockwiseCombine(X, Y, radix, true) },
		Sub: func(X, Y []int) ([]int, error) { return blockwiseCombine(X, Y, radix, false) },
	}
}

func blockwiseCombine(X, Y []int, radix int, add bool) ([]int, error) {
	if len(X) == 0 || len(Y) == 0 {
		return nil, ferr.InvalidArgumentf("X and Y must not be empty")
	}
	if len(X) != len(Y) {
		return nil, ferr.InvalidArgumentf("X and Y must have equal length: %d != %d", len(X), len(Y))
	}
	x, err := Num(X, radix)
	if err != nil {
		return nil, err
	}
	y, err := Num(Y, radix)
	if err != nil {
		return nil, err
	}
	z := new(big.Int)
	if add {
		z.Add(x, y)
	} else {
		z.Sub(x, y)
	}
	modulus := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(len(X))), nil)
	z.Mod(z, modulus)
	return Str(z, radix, len(X))
}

// CharwiseArithmetic applies addition/subtraction independently to each
// position modulo radix.
func CharwiseArithmetic(radix int) ArithmeticFunc {
	return ArithmeticFunc{
		Add: func(X, Y []int) ([]int, error) { return charwiseCombine(X, Y, radix, true) },
		Sub: func(X, Y []int) ([]int, error) { return charwiseCombine(X, Y, radix, false) },
	}
}

func charwiseCombine(X, Y []int, radix int, add bool) ([]int, error) {
	if len(X) == 0 || len(Y) == 0 {
		return nil, ferr.InvalidArgumentf("X and Y must not be empty")
	}
	if len(X) != len(Y) {
		return nil, ferr.InvalidArgumentf("X and Y must have equal length: %d != %d", len(X), len(Y))
	}
	Z := make([]int, len(X))
	for i := range X {
		v := X[i]
		if add {
			v += Y[i]
		} else {
			v -= Y[i]
		}
		m, err := ModInt(v, radix)
		if err != nil {
			return nil, err
		}
		Z[i] = m
	}
	return Z, nil
}
