package tinkfpe

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
)

// New creates an FPE primitive from a Tink keyset handle, binding the given
// tweak to every Tokenize/Detokenize call. This is the main entry point for
// users following Tink's pattern.
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tenant-1234|customer.ssn"))
//	if err != nil {
//	    return err
//	}
//	token, err := primitive.Tokenize("123-45-6789")
func New(handle *keyset.Handle, tweak []byte) (FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}
	keyID := primary.KeyID
	if keyID == 0 {
		return nil, fmt.Errorf("invalid key ID in primary entry")
	}

	// Cleartext keysets are the only source this factory reads raw material
	// from; KMS-encrypted keysets must be decrypted by the caller first.
	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	var keyBytes []byte
	for _, key := range ks.GetKey() {
		if key.GetKeyId() != keyID {
			continue
		}
		keyData := key.GetKeyData()
		if keyData == nil {
			continue
		}
		if keyData.GetKeyMaterialType() != tink_go_proto.KeyData_SYMMETRIC {
			return nil, fmt.Errorf("key %d is not symmetric key material", keyID)
		}
		keyBytes = keyData.GetValue()
		break
	}
	if keyBytes == nil {
		return nil, fmt.Errorf("key with ID %d not found in keyset", keyID)
	}

	return newPrimitive(keyBytes, tweak)
}
