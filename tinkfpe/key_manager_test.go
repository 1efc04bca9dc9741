package tinkfpe

import (
	"testing"

	"github.com/google/tink/go/keyset"
)

func TestKeyManagerTypeURL(t *testing.T) {
	km := NewKeyManager()
	if km.TypeURL() != FPEKeyTypeURL {
		t.Errorf("Expected type URL %s, got %s", FPEKeyTypeURL, km.TypeURL())
	}
}

func TestKeyManagerDoesSupport(t *testing.T) {
	km := NewKeyManager()
	if !km.DoesSupport(FPEKeyTypeURL) {
		t.Errorf("Expected KeyManager to support %s", FPEKeyTypeURL)
	}
	if km.DoesSupport("type.googleapis.com/google.crypto.tink.AesGcmKey") {
		t.Errorf("KeyManager should not support unrelated key types")
	}
}

func TestKeyManagerPrimitive(t *testing.T) {
	km := NewKeyManager()

	key := make([]byte, 32)
	p, err := km.Primitive(key)
	if err != nil {
		t.Fatalf("Failed to create primitive: %v", err)
	}
	if _, ok := p.(FPE); !ok {
		t.Errorf("Expected an FPE primitive, got %T", p)
	}

	for _, badLen := range []int{0, 8, 15, 17, 31, 33} {
		if _, err := km.Primitive(make([]byte, badLen)); err == nil {
			t.Errorf("Expected an error for a %d-byte key", badLen)
		}
	}
}

func TestKeyManagerNewKeyData(t *testing.T) {
	km := NewKeyManager()

	// Empty template defaults to AES-256.
	kd, err := km.NewKeyData(nil)
	if err != nil {
		t.Fatalf("Failed to create key data: %v", err)
	}
	if kd.TypeUrl != FPEKeyTypeURL {
		t.Errorf("Expected type URL %s, got %s", FPEKeyTypeURL, kd.TypeUrl)
	}
	if len(kd.Value) != 32 {
		t.Errorf("Expected a 32-byte key, got %d bytes", len(kd.Value))
	}

	for _, size := range []byte{16, 24, 32} {
		kd, err := km.NewKeyData([]byte{size})
		if err != nil {
			t.Fatalf("Failed to create key data for size %d: %v", size, err)
		}
		if len(kd.Value) != int(size) {
			t.Errorf("Expected a %d-byte key, got %d bytes", size, len(kd.Value))
		}
	}

	if _, err := km.NewKeyData([]byte{17}); err == nil {
		t.Errorf("Expected an error for an invalid template key size")
	}
}

func TestNewKeysetHandleFromKey(t *testing.T) {
	if err := registerKeyManager(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}

	handle, err := NewKeysetHandleFromKey(key)
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	primitive, err := New(handle, []byte("unit test tweak"))
	if err != nil {
		t.Fatalf("Failed to create primitive from handle: %v", err)
	}

	plaintext := "123-45-6789"
	token, err := primitive.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Failed to tokenize: %v", err)
	}
	back, err := primitive.Detokenize(token, plaintext)
	if err != nil {
		t.Fatalf("Failed to detokenize: %v", err)
	}
	if back != plaintext {
		t.Errorf("Round trip failed: expected %s, got %s", plaintext, back)
	}

	if _, err := NewKeysetHandleFromKey(make([]byte, 20)); err == nil {
		t.Errorf("Expected an error for a 20-byte key")
	}
}

func TestNewFromGeneratedKeyset(t *testing.T) {
	if err := registerKeyManager(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	handle, err := keyset.NewHandle(KeyTemplateAES128())
	if err != nil {
		t.Fatalf("Failed to create keyset handle from template: %v", err)
	}

	primitive, err := New(handle, nil)
	if err != nil {
		t.Fatalf("Failed to create primitive: %v", err)
	}

	plaintext := "4111-1111-1111-1111"
	token, err := primitive.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Failed to tokenize: %v", err)
	}
	if len(token) != len(plaintext) {
		t.Errorf("Format not preserved: expected length %d, got %d", len(plaintext), len(token))
	}
	back, err := primitive.Detokenize(token, plaintext)
	if err != nil {
		t.Fatalf("Failed to detokenize: %v", err)
	}
	if back != plaintext {
		t.Errorf("Round trip failed: expected %s, got %s", plaintext, back)
	}
}
