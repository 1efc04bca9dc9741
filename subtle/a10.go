package subtle

import (
	"math/big"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// A10Parameters is the FFX parameter pack for the A10 algorithm from
// Bellare, Rogaway, and Spies' "The FFX Mode of Operation for
// Format-Preserving Encryption": decimal strings, blockwise arithmetic, and
// a CBC-MAC round function splitting its output into two 8-byte halves.
type A10Parameters struct{}

// NewA10Parameters constructs the A10 parameter pack.
func NewA10Parameters() *A10Parameters {
	return &A10Parameters{}
}

func (p *A10Parameters) Radix() int            { return 10 }
func (p *A10Parameters) MinLen() int           { return 4 }
func (p *A10Parameters) MaxLen() int           { return 36 }
func (p *A10Parameters) MinTLen() int          { return 0 }
func (p *A10Parameters) MaxTLen() int          { return MaxLen }
func (p *A10Parameters) Method() FeistelMethod { return MethodTwo }

func (p *A10Parameters) Arithmetic() ArithmeticFunc {
	return BlockwiseArithmetic(10)
}

// Split implements split(n) = floor(n/2).
func (p *A10Parameters) Split(n int) (int, error) {
	return Floor(float64(n) / 2.0), nil
}

// Rounds implements A10's round-count table: n must be in [4,36].
func (p *A10Parameters) Rounds(n int) (int, error) {
	switch {
	case n < 4 || n > 36:
		return 0, ferr.InvalidArgumentf("n must be in [4, 36]: %d", n)
	case n <= 5:
		return 24, nil
	case n <= 9:
		return 18, nil
	default: // n <= 36
		return 12, nil
	}
}

// ValidKey accepts any raw AES-128/192/256 key.
func (p *A10Parameters) ValidKey(key []byte) bool {
	switch len(key) {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}

// F implements A10's round function: the same fixed 16-byte header shape as
// A2 (with the blockwise addition flag and radix 10 instead of 2), a
// CBC-MAC over the tweak and an 8-byte encoding of B, and a split of the
// MAC's last block into two 8-byte halves recombined per §4.6 step 5.
func (p *A10Parameters) F(key []byte, n int, T []byte, i int, B []int) ([]int, error) {
	t := len(T)
	split, err := p.Split(n)
	if err != nil {
		return nil, err
	}
	rnds, err := p.Rounds(n)
	if err != nil {
		return nil, err
	}

	obn, err := BytestringInt(n, 1)
	if err != nil {
		return nil, err
	}
	obs, err := BytestringInt(split, 1)
	if err != nil {
		return nil, err
	}
	obr, err := BytestringInt(rnds, 1)
	if err != nil {
		return nil, err
	}
	ebt, err := BytestringInt(t, 8)
	if err != nil {
		return nil, err
	}
	P := []byte{0, 1, 2, 1, 10, obn[0], obs[0], obr[0],
		ebt[7], ebt[6], ebt[5], ebt[4], ebt[3], ebt[2], ebt[1], ebt[0]}

	padLen, err := ModInt(-t-9, 16)
	if err != nil {
		return nil, err
	}
	Q := Concatenate(T, Zeros(padLen))
	ib, err := BytestringInt(i, 1)
	if err != nil {
		return nil, err
	}
	Q = Concatenate(Q, ib)
	numB, err := Num(B, 10)
	if err != nil {
		return nil, err
	}
	numBBytes, err := Bytestring(numB, 8)
	if err != nil {
		return nil, err
	}
	Q = Concatenate(Q, numBBytes)

	Y, err := Prf(key, Concatenate(P, Q))
	if err != nil {
		return nil, err
	}

	Y1, Y2 := Y[:8], Y[8:]
	y1, err := NumBytes(Y1)
	if err != nil {
		return nil, err
	}
	y2, err := NumBytes(Y2)
	if err != nil {
		return nil, err
	}

	m := split
	if i%2 != 0 {
		m = n - split
	}

	var z *big.Int
	if m <= 9 {
		modulus := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(m)), nil)
		z = new(big.Int).Mod(y2, modulus)
	} else {
		oneBillion := new(big.Int).Exp(big.NewInt(10), big.NewInt(9), nil)
		hiMod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(m-9)), nil)
		hi := new(big.Int).Mod(y1, hiMod)
		lo := new(big.Int).Mod(y2, oneBillion)
		z = new(big.Int).Add(new(big.Int).Mul(hi, oneBillion), lo)
	}

	return Str(z, 10, m)
}

// A10 is the radix-10 FFX instantiation from the FFX paper.
type A10 struct {
	engine *FFX
}

// NewA10 constructs the A10 driver.
func NewA10() (*A10, error) {
	engine, err := NewFFX(NewA10Parameters())
	if err != nil {
		return nil, err
	}
	return &A10{engine: engine}, nil
}

// Encrypt encrypts the decimal-digit array X under key and tweak T.
func (a *A10) Encrypt(key, T []byte, X []int) ([]int, error) {
	return a.engine.Encrypt(key, T, X)
}

// Decrypt decrypts the decimal-digit array Y under key and tweak T.
func (a *A10) Decrypt(key, T []byte, Y []int) ([]int, error) {
	return a.engine.Decrypt(key, T, Y)
}
