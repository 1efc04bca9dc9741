package ifx

import (
	"encoding/hex"
	"math/big"
	"testing"
)

func ifxSampleKey(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("Failed to decode key: %v", err)
	}
	return key
}

// sampleW is a digits-and-letters shape: one digit, three letters, three
// digits, as in a UK-style registration mark.
var sampleW = []int{10, 26, 26, 26, 10, 10, 10}

func TestIFXEmptyTweak(t *testing.T) {
	cipher, err := NewIFX(sampleW)
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)

	pt := []int{0, 1, 2, 3, 4, 5, 6}
	want := []int{7, 0, 3, 13, 6, 6, 8}

	ct, err := cipher.Encrypt(key, []byte{}, pt)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !equalInts(ct, want) {
		t.Errorf("Ciphertext mismatch: expected %v, got %v", want, ct)
	}

	back, err := cipher.Decrypt(key, []byte{}, ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !equalInts(back, pt) {
		t.Errorf("Round trip failed: expected %v, got %v", pt, back)
	}
}

func TestIFXWithTweak(t *testing.T) {
	cipher, err := NewIFX(sampleW)
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)
	tweak, err := hex.DecodeString("C0C1C2C3C4C5C6C7C8C9CACBCCCDCECF")
	if err != nil {
		t.Fatalf("Failed to decode tweak: %v", err)
	}

	pt := []int{0, 1, 2, 3, 4, 5, 6}
	want := []int{4, 3, 2, 15, 5, 8, 4}

	ct, err := cipher.Encrypt(key, tweak, pt)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !equalInts(ct, want) {
		t.Errorf("Ciphertext mismatch: expected %v, got %v", want, ct)
	}

	back, err := cipher.Decrypt(key, tweak, ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !equalInts(back, pt) {
		t.Errorf("Round trip failed: expected %v, got %v", pt, back)
	}
}

func TestIFXSplitInvariant(t *testing.T) {
	// u*v = product(W) and u <= floor(sqrt(product(W))) <= v.
	for _, W := range [][]int{
		sampleW,
		{2, 3, 5, 7, 11},
		{16, 16, 16},
		{2, 2, 5, 5},
		{97, 89},
	} {
		cipher, err := NewIFX(W)
		if err != nil {
			t.Fatalf("Failed to create IFX for %v: %v", W, err)
		}
		w, err := Product(W)
		if err != nil {
			t.Fatalf("Product failed: %v", err)
		}
		u, v := cipher.U(), cipher.V()
		if new(big.Int).Mul(u, v).Cmp(w) != 0 {
			t.Errorf("u*v != product(W) for %v: %s * %s != %s", W, u, v, w)
		}
		root, err := Sqrt(w)
		if err != nil {
			t.Fatalf("Sqrt failed: %v", err)
		}
		if u.Cmp(root) > 0 {
			t.Errorf("u exceeds floor(sqrt(w)) for %v: %s > %s", W, u, root)
		}
		if u.Cmp(v) > 0 {
			t.Errorf("u > v for %v: %s > %s", W, u, v)
		}
	}
}

func TestIFXMixedPrimesRoundTrip(t *testing.T) {
	cipher, err := NewIFX([]int{2, 3, 5, 7, 11})
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)
	tweak := []byte("mixed primes")

	pt := []int{1, 2, 4, 6, 10}
	ct, err := cipher.Encrypt(key, tweak, pt)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(ct) != len(pt) {
		t.Fatalf("Length not preserved")
	}
	W := []int{2, 3, 5, 7, 11}
	for i, c := range ct {
		if c < 0 || c >= W[i] {
			t.Errorf("Symbol %d at position %d is outside [0, %d)", c, i, W[i])
		}
	}
	back, err := cipher.Decrypt(key, tweak, ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !equalInts(back, pt) {
		t.Errorf("Round trip failed: expected %v, got %v", pt, back)
	}
}

func TestIFXTweakLengths(t *testing.T) {
	// Any tweak length is accepted, including none and beyond 16 bytes.
	cipher, err := NewIFX(sampleW)
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)
	pt := []int{9, 25, 0, 13, 1, 2, 3}

	for _, tlen := range []int{0, 1, 7, 15, 16, 17, 33} {
		tweak := make([]byte, tlen)
		for i := range tweak {
			tweak[i] = byte(i)
		}
		ct, err := cipher.Encrypt(key, tweak, pt)
		if err != nil {
			t.Fatalf("Encrypt failed for tweak length %d: %v", tlen, err)
		}
		back, err := cipher.Decrypt(key, tweak, ct)
		if err != nil {
			t.Fatalf("Decrypt failed for tweak length %d: %v", tlen, err)
		}
		if !equalInts(back, pt) {
			t.Errorf("Round trip failed for tweak length %d", tlen)
		}
	}
}

func TestIFXValidation(t *testing.T) {
	if _, err := NewIFX([]int{10}); err == nil {
		t.Errorf("Expected an error for a single-element vector")
	}
	if _, err := NewIFX([]int{10, 1}); err == nil {
		t.Errorf("Expected an error for an element below 2")
	}
	// product(W) = 2*2*2*2*2*3 = 96 < 100.
	if _, err := NewIFX([]int{2, 2, 2, 2, 2, 3}); err == nil {
		t.Errorf("Expected an error for a domain below 100")
	}

	cipher, err := NewIFX(sampleW)
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)

	if _, err := cipher.Encrypt(nil, []byte{}, []int{0, 1, 2, 3, 4, 5, 6}); err == nil {
		t.Errorf("Expected an error for a nil key")
	}
	if _, err := cipher.Encrypt(key[:10], []byte{}, []int{0, 1, 2, 3, 4, 5, 6}); err == nil {
		t.Errorf("Expected an error for a truncated key")
	}
	if _, err := cipher.Encrypt(key, nil, []int{0, 1, 2, 3, 4, 5, 6}); err == nil {
		t.Errorf("Expected an error for a nil tweak")
	}
	if _, err := cipher.Encrypt(key, []byte{}, []int{0, 1, 2}); err == nil {
		t.Errorf("Expected an error for a short input")
	}
	// Position 1 has radix 26; position 0 has radix 10.
	if _, err := cipher.Encrypt(key, []byte{}, []int{10, 1, 2, 3, 4, 5, 6}); err == nil {
		t.Errorf("Expected an error for a symbol outside its position's radix")
	}
}

func TestIFXDoesNotMutateInput(t *testing.T) {
	cipher, err := NewIFX(sampleW)
	if err != nil {
		t.Fatalf("Failed to create IFX: %v", err)
	}
	key := ifxSampleKey(t)

	pt := []int{0, 1, 2, 3, 4, 5, 6}
	snapshot := append([]int(nil), pt...)
	if _, err := cipher.Encrypt(key, []byte{}, pt); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !equalInts(pt, snapshot) {
		t.Errorf("Encrypt mutated its input: %v", pt)
	}
}
