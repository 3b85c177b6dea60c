// Package providerdrv defines the provider driver abstraction and registry.
// Implementations live under adapters/drivers/provider/<name> and register
// themselves from init().
package providerdrv

import (
	"sync"

	"github.com/kvbridge/kvbridge/domain/model"
)

// Driver abstracts provider-specific behavior. A driver serves all three
// ports: vault control plane, cluster control plane, and secret data plane.
type Driver interface {
	// ID returns the provider identifier (e.g., "azure").
	ID() string

	model.VaultPort
	model.ClusterPort
	model.SecretPort
}

// Factory is a constructor function for a provider driver.
type Factory func(settings map[string]string) (Driver, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, exists := registry[name]
	return factory, exists
}
