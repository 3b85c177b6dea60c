package vault

import (
	"context"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// CreateInput contains data to register a vault.
type CreateInput struct {
	// Name is the Key Vault name.
	Name string `json:"name"`
	// ResourceGroup holds the vault's Azure resource group.
	ResourceGroup string `json:"resource_group"`
	// URI is the data plane endpoint; empty derives the default.
	URI string `json:"uri,omitempty"`
	// Driver selects the provider driver; empty means "azure".
	Driver string `json:"driver,omitempty"`
	// Settings holds driver-specific settings.
	Settings map[string]string `json:"settings,omitempty"`
}

// CreateOutput wraps the created vault.
type CreateOutput struct {
	Vault *model.Vault `json:"vault"`
}

// Create persists a new vault entity.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.ErrVaultInvalid
	}
	if err := naming.ValidateVaultName(in.Name); err != nil {
		return nil, err
	}
	driver := in.Driver
	if driver == "" {
		driver = "azure"
	}
	uri := in.URI
	if uri == "" {
		uri = "https://" + in.Name + ".vault.azure.net"
	}
	now := time.Now().UTC()
	v := &model.Vault{
		ID:            naming.VaultID(in.Name, in.ResourceGroup),
		Name:          in.Name,
		ResourceGroup: in.ResourceGroup,
		URI:           uri,
		Driver:        driver,
		Settings:      in.Settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.Repos.Vault.Create(ctx, v); err != nil {
		return nil, err
	}
	return &CreateOutput{Vault: v}, nil
}
