package tinkfpe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"
)

// FPEKeyTypeURL is the type URL under which FPE FF1 keys are registered
// with Tink's registry.
const FPEKeyTypeURL = "type.googleapis.com/google.crypto.tink.FpeFf1Key"

// KeyManager implements registry.KeyManager for FPE keys, so that keysets
// holding FPE key material can be created and resolved through Tink's
// registry like any other primitive's.
//
// The key value is the raw AES key material itself (16, 24, or 32 bytes);
// there is no dedicated protobuf message for FPE keys, so the KeyData value
// carries the bytes directly.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates an FPE key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{typeURL: FPEKeyTypeURL}
}

// Primitive creates an FPE primitive from the given serialized key. The
// primitive carries an empty tweak; use New to bind a tweak from a keyset
// handle.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	return newPrimitive(serializedKey, nil)
}

// DoesSupport returns true if this KeyManager supports the given key type
// URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new key according to the given key template. FPE keys
// have no protobuf message of their own, so key generation goes through
// NewKeyData instead.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("FPE keys carry raw key material; use NewKeyData")
}

// NewKeyData creates a new KeyData from the given key template. The
// template value holds the key size in bytes as a single byte; an empty
// template defaults to AES-256.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	keySize := 32
	if len(serializedKeyTemplate) > 0 {
		keySize = int(serializedKeyTemplate[0])
		if keySize != 16 && keySize != 24 && keySize != 32 {
			return nil, fmt.Errorf("invalid key size in template: %d bytes (must be 16, 24, or 32)", keySize)
		}
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           key,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for FPE FF1 keys, generating AES-256
// keys. For other key sizes, use KeyTemplateAES128 or KeyTemplateAES192.
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return KeyTemplateAES256()
}

// KeyTemplateAES128 creates a key template for FPE FF1 with AES-128.
func KeyTemplateAES128() *tink_go_proto.KeyTemplate {
	return keyTemplate(16)
}

// KeyTemplateAES192 creates a key template for FPE FF1 with AES-192.
func KeyTemplateAES192() *tink_go_proto.KeyTemplate {
	return keyTemplate(24)
}

// KeyTemplateAES256 creates a key template for FPE FF1 with AES-256.
func KeyTemplateAES256() *tink_go_proto.KeyTemplate {
	return keyTemplate(32)
}

func keyTemplate(keySize byte) *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{keySize},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw key, e.g. one
// exported from an HSM or an external key management system that is not a
// Tink KMS client. The key must be 16, 24, or 32 bytes.
//
//	hsmKey := []byte{...} // 32-byte key from your HSM
//	handle, err := tinkfpe.NewKeysetHandleFromKey(hsmKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//
// The resulting keyset is unencrypted; production deployments should wrap
// it with keyset.Write and an AEAD before storing it.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid key size: %d bytes (must be 16, 24, or 32)", len(key))
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tink_go_proto.Keyset_Key{{
			KeyData: &tink_go_proto.KeyData{
				TypeUrl:         FPEKeyTypeURL,
				Value:           key,
				KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tink_go_proto.KeyStatusType_ENABLED,
			OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
		}},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
