package secret

import (
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Repos holds repositories needed for secret use cases.
type Repos struct {
	Vault domain.VaultRepository
}

// UseCase wires repositories and ports needed for secret use cases.
type UseCase struct {
	Repos      *Repos
	SecretPort model.SecretPort
}
