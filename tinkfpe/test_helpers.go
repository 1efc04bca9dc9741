package tinkfpe

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var registerOnce sync.Once

// registerKeyManager registers the FPE KeyManager with Tink's registry,
// once per process. Tink's registry rejects duplicate registrations, so
// tests funnel through this instead of calling
// registry.RegisterKeyManager directly.
func registerKeyManager() error {
	var err error
	registerOnce.Do(func() {
		if _, lookupErr := registry.GetKeyManager(FPEKeyTypeURL); lookupErr == nil {
			return
		}
		err = registry.RegisterKeyManager(NewKeyManager())
	})
	return err
}
