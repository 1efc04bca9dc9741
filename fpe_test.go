package fpe4j

import (
	"encoding/hex"
	"errors"
	"testing"
)

// Test vectors from NIST SP 800-38G FF1samples.pdf and the reference
// implementation's conformance suite, exercised through the package's
// public constructors.

func TestFF1Sample1(t *testing.T) {
	// Sample #1: FF1-AES128, radix 10, empty tweak.
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("Failed to decode key: %v", err)
	}

	cipher, err := NewFF1(10, 16)
	if err != nil {
		t.Fatalf("Failed to create FF1 instance: %v", err)
	}

	pt := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := []int{2, 4, 3, 3, 4, 7, 7, 4, 8, 4}

	ct, err := cipher.Encrypt(key, []byte{}, pt)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if !equalInts(ct, want) {
		t.Errorf("Ciphertext mismatch: expected %v, got %v", want, ct)
	}

	decrypted, err := cipher.Decrypt(key, []byte{}, ct)
	if err != nil {
		t.Fatalf("Failed to decrypt: %v", err)
	}
	if !equalInts(decrypted, pt) {
		t.Errorf("Decryption failed: expected %v, got %v", pt, decrypted)
	}
}

func TestFF3Sample(t *testing.T) {
	// FF3-AES128, radix 10, 8-byte tweak.
	key, err := hex.DecodeString("EF4359D8D580AA4F7F036D6F04FC6A94")
	if err != nil {
		t.Fatalf("Failed to decode key: %v", err)
	}
	tweak, err := hex.DecodeString("D8E7920AFA330A73")
	if err != nil {
		t.Fatalf("Failed to decode tweak: %v", err)
	}

	cipher, err := NewFF3(10)
	if err != nil {
		t.Fatalf("Failed to create FF3 instance: %v", err)
	}

	pt := []int{8, 9, 0, 1, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0, 0, 0}
	want := []int{7, 5, 0, 9, 1, 8, 8, 1, 4, 0, 5, 8, 6, 5, 4, 6, 0, 7}

	ct, err := cipher.Encrypt(key, tweak, pt)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if !equalInts(ct, want) {
		t.Errorf("Ciphertext mismatch: expected %v, got %v", want, ct)
	}

	decrypted, err := cipher.Decrypt(key, tweak, ct)
	if err != nil {
		t.Fatalf("Failed to decrypt: %v", err)
	}
	if !equalInts(decrypted, pt) {
		t.Errorf("Decryption failed: expected %v, got %v", pt, decrypted)
	}
}

func TestIFXSample(t *testing.T) {
	// IFX over a mixed digit/letter radix vector with an empty tweak.
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("Failed to decode key: %v", err)
	}

	cipher, err := NewIFX([]int{10, 26, 26, 26, 10, 10, 10})
	if err != nil {
		t.Fatalf("Failed to create IFX instance: %v", err)
	}

	pt := []int{0, 1, 2, 3, 4, 5, 6}
	want := []int{7, 0, 3, 13, 6, 6, 8}

	ct, err := cipher.Encrypt(key, []byte{}, pt)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if !equalInts(ct, want) {
		t.Errorf("Ciphertext mismatch: expected %v, got %v", want, ct)
	}

	decrypted, err := cipher.Decrypt(key, []byte{}, ct)
	if err != nil {
		t.Fatalf("Failed to decrypt: %v", err)
	}
	if !equalInts(decrypted, pt) {
		t.Errorf("Decryption failed: expected %v, got %v", pt, decrypted)
	}
}

func TestA2A10RoundTrip(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("Failed to decode key: %v", err)
	}
	tweak := []byte("round trip")

	a2, err := NewA2()
	if err != nil {
		t.Fatalf("Failed to create A2 instance: %v", err)
	}
	bits := []int{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1}
	ct, err := a2.Encrypt(key, tweak, bits)
	if err != nil {
		t.Fatalf("Failed to encrypt with A2: %v", err)
	}
	pt, err := a2.Decrypt(key, tweak, ct)
	if err != nil {
		t.Fatalf("Failed to decrypt with A2: %v", err)
	}
	if !equalInts(pt, bits) {
		t.Errorf("A2 round trip failed: expected %v, got %v", bits, pt)
	}

	a10, err := NewA10()
	if err != nil {
		t.Fatalf("Failed to create A10 instance: %v", err)
	}
	digits := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9}
	ct, err = a10.Encrypt(key, tweak, digits)
	if err != nil {
		t.Fatalf("Failed to encrypt with A10: %v", err)
	}
	pt, err = a10.Decrypt(key, tweak, ct)
	if err != nil {
		t.Fatalf("Failed to decrypt with A10: %v", err)
	}
	if !equalInts(pt, digits) {
		t.Errorf("A10 round trip failed: expected %v, got %v", digits, pt)
	}
}

func TestErrorKinds(t *testing.T) {
	cipher, err := NewFF1(10, 16)
	if err != nil {
		t.Fatalf("Failed to create FF1 instance: %v", err)
	}

	// Absent key.
	_, err = cipher.Encrypt(nil, []byte{}, []int{0, 1, 2, 3})
	if !errors.Is(err, ErrNullArgument) {
		t.Errorf("Expected a null-argument error for nil key, got %v", err)
	}

	// Wrong key length.
	_, err = cipher.Encrypt(make([]byte, 15), []byte{}, []int{0, 1, 2, 3})
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected an invalid-key error for a 15-byte key, got %v", err)
	}

	// Out-of-range symbol.
	key := make([]byte, 16)
	_, err = cipher.Encrypt(key, []byte{}, []int{0, 1, 2, 10})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected an invalid-argument error for symbol 10 in radix 10, got %v", err)
	}

	var fe *FpeError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected an *FpeError, got %T", err)
	}
	if fe.Kind() != KindInvalidArgument {
		t.Errorf("Expected KindInvalidArgument, got %v", fe.Kind())
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
