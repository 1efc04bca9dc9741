package subtle

import (
	"fmt"
	"math/big"

	"github.com/zone1511/fpe4j/internal/ferr"
)

// FF1Parameters is the FFX parameter pack for NIST SP 800-38G's FF1
// algorithm: balanced split, 10 rounds, blockwise arithmetic, and the
// CBC-MAC-derived round function of SP 800-38G §6.
type FF1Parameters struct {
	radix   int
	maxTlen int
}

// NewFF1Parameters constructs the FF1 parameter pack for the given radix.
// maxTlen bounds the tweak length accepted by Encrypt/Decrypt; it must not
// exceed MaxLen.
func NewFF1Parameters(radix, maxTlen int) (*FF1Parameters, error) {
	if radix < MinRadix || radix > MaxRadix {
		return nil, ferr.InvalidArgumentf("radix must be in [%d, %d]: %d", MinRadix, MaxRadix, radix)
	}
	if maxTlen < 0 || maxTlen > MaxLen {
		return nil, ferr.InvalidArgumentf("maxTlen must be in [0, %d]: %d", MaxLen, maxTlen)
	}
	return &FF1Parameters{radix: radix, maxTlen: maxTlen}, nil
}

func (p *FF1Parameters) Radix() int               { return p.radix }
func (p *FF1Parameters) MinLen() int              { return MinLen }
func (p *FF1Parameters) MaxLen() int              { return MaxLen }
func (p *FF1Parameters) MinTLen() int             { return 0 }
func (p *FF1Parameters) MaxTLen() int             { return p.maxTlen }
func (p *FF1Parameters) Method() FeistelMethod    { return MethodTwo }
func (p *FF1Parameters) Arithmetic() ArithmeticFunc {
	return BlockwiseArithmetic(p.radix)
}

// Split implements split(n) = floor(n/2).
func (p *FF1Parameters) Split(n int) (int, error) {
	if n < MinLen || n > MaxLen {
		return 0, ferr.InvalidArgumentf("n must be in [%d, %d]: %d", MinLen, MaxLen, n)
	}
	return Floor(float64(n) / 2.0), nil
}

// Rounds implements rnds(n) = 10, the fixed FF1 round count.
func (p *FF1Parameters) Rounds(n int) (int, error) {
	return 10, nil
}

// ValidKey accepts any raw AES-128/192/256 key. Unlike FF3, FF1 has no
// byte-reversal dependency on key format, so no further restriction applies
// (see the Open Questions discussion in DESIGN.md).
func (p *FF1Parameters) ValidKey(key []byte) bool {
	switch len(key) {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}

// F implements the FF1 round function of NIST SP 800-38G §6.
func (p *FF1Parameters) F(key []byte, n int, T []byte, i int, B []int) ([]int, error) {
	radix := p.radix
	t := len(T)

	// 1. u = floor(n/2); v = n - u.
	u := Floor(float64(n) / 2.0)
	v := n - u

	// 3. b = ceiling(ceiling(v*log2(radix))/8).
	b := Ceiling(float64(Ceiling(float64(v)*Log2(float64(radix)))) / 8.0)

	// 4. d = 4*ceiling(b/4) + 4.
	d := 4*Ceiling(float64(b)/4.0) + 4

	// 5. Fixed 16-byte header P.
	tbr, err := BytestringInt(radix, 3)
	if err != nil {
		return nil, err
	}
	fbn, err := BytestringInt(n, 4)
	if err != nil {
		return nil, err
	}
	fbt, err := BytestringInt(t, 4)
	if err != nil {
		return nil, err
	}
	uMod256, err := ModInt(u, 256)
	if err != nil {
		return nil, err
	}
	P := []byte{0x01, 0x02, 0x01, tbr[0], tbr[1], tbr[2], 0x0A, byte(uMod256)}
	P = append(P, fbn...)
	P = append(P, fbt...)

	// 6.i. Q = T || zeros(mod(-t-b-1,16)) || bytestring(i,1) || bytestring(num(B,radix), b).
	padLen, err := ModInt(-t-b-1, 16)
	if err != nil {
		return nil, err
	}
	Q := Concatenate(T, Zeros(padLen))
	ib, err := BytestringInt(i, 1)
	if err != nil {
		return nil, err
	}
	Q = Concatenate(Q, ib)
	numB, err := Num(B, radix)
	if err != nil {
		return nil, err
	}
	numBBytes, err := Bytestring(numB, b)
	if err != nil {
		return nil, err
	}
	Q = Concatenate(Q, numBBytes)
	traceStep(i, "6.i", "Q constructed", "Q", fmt.Sprintf("%x", Q))

	// 6.ii. R = PRF(P || Q).
	R, err := Prf(key, Concatenate(P, Q))
	if err != nil {
		return nil, err
	}
	traceStep(i, "6.ii", "R computed", "R", fmt.Sprintf("%x", R))

	// 6.iii. S = R || CIPH(R xor [1]) || ... || CIPH(R xor [ceil(d/16)-1]), truncated to d bytes.
	S := append([]byte(nil), R...)
	for j := 1; j <= Ceiling(float64(d)/16.0)-1; j++ {
		jb, err := BytestringInt(j, 16)
		if err != nil {
			return nil, err
		}
		Rxor, err := Xor(R, jb)
		if err != nil {
			return nil, err
		}
		block, err := Ciph(key, Rxor)
		if err != nil {
			return nil, err
		}
		S = Concatenate(S, block)
	}
	S = S[:d]

	// 6.iv. y = NUM(S).
	y, err := NumBytes(S)
	if err != nil {
		return nil, err
	}

	// 6.v. m = u if i even, else v.
	m := u
	if i%2 != 0 {
		m = v
	}

	modulus := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(m)), nil)
	y.Mod(y, modulus)

	// 7. Y = STR_m,radix(y).
	return Str(y, radix, m)
}

// FF1 is the NIST SP 800-38G FF1 driver: a fixed balanced-Feistel FFX
// instantiation over a given radix and maximum tweak length.
type FF1 struct {
	params *FF1Parameters
	engine *FFX
}

// NewFF1 constructs an FF1 driver for the given radix and maximum tweak
// length.
func NewFF1(radix, maxTlen int) (*FF1, error) {
	params, err := NewFF1Parameters(radix, maxTlen)
	if err != nil {
		return nil, err
	}
	engine, err := NewFFX(params)
	if err != nil {
		return nil, err
	}
	return &FF1{params: params, engine: engine}, nil
}

// Encrypt encrypts the symbol array X under key and tweak T.
func (f *FF1) Encrypt(key, T []byte, X []int) ([]int, error) {
	return f.engine.Encrypt(key, T, X)
}

// Decrypt decrypts the symbol array Y under key and tweak T.
func (f *FF1) Decrypt(key, T []byte, Y []int) ([]int, error) {
	return f.engine.Decrypt(key, T, Y)
}
