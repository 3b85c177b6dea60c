package vault

import (
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Repos holds repositories needed for vault use cases.
type Repos struct {
	Vault domain.VaultRepository
}

// UseCase wires repositories and ports needed for vault use cases.
type UseCase struct {
	Repos     *Repos
	VaultPort model.VaultPort
}
