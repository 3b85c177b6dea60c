package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/kvbridge/kvbridge/domain/model"
)

// secretsClient builds a data plane client for the vault. The vault URI must
// be known (provisioned or configured).
func (d *driver) secretsClient(vault *model.Vault) (*azsecrets.Client, error) {
	if vault.URI == "" {
		return nil, fmt.Errorf("vault %s has no data plane URI", vault.Name)
	}
	client, err := azsecrets.NewClient(vault.URI, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create key vault secrets client: %w", err)
	}
	return client, nil
}

// SecretSet writes a new version of the secret and returns its version id.
func (d *driver) SecretSet(ctx context.Context, vault *model.Vault, name, value string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	client, err := d.secretsClient(vault)
	if err != nil {
		return "", err
	}
	resp, err := client.SetSecret(ctx, name, azsecrets.SetSecretParameters{
		Value: to.Ptr(value),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("set secret %s: %w", name, err)
	}
	if resp.ID == nil {
		return "", fmt.Errorf("set secret %s: response has no id", name)
	}
	return resp.ID.Version(), nil
}

// SecretGet reads a secret value. Empty version resolves the latest.
func (d *driver) SecretGet(ctx context.Context, vault *model.Vault, name, version string) (*model.SecretValue, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	client, err := d.secretsClient(vault)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetSecret(ctx, name, version, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("secret %s: %w", name, model.ErrSecretNotFound)
		}
		return nil, fmt.Errorf("get secret %s: %w", name, err)
	}
	sv := &model.SecretValue{Name: name}
	if resp.ID != nil {
		sv.Version = resp.ID.Version()
	}
	if resp.Value != nil {
		sv.Value = *resp.Value
	}
	if resp.Attributes != nil && resp.Attributes.Updated != nil {
		sv.Updated = *resp.Attributes.Updated
	}
	return sv, nil
}

// SecretVersions lists all versions of the secret ordered oldest first.
func (d *driver) SecretVersions(ctx context.Context, vault *model.Vault, name string) ([]model.SecretVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	client, err := d.secretsClient(vault)
	if err != nil {
		return nil, err
	}
	var versions []model.SecretVersion
	pager := client.NewListSecretPropertiesVersionsPager(name, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list versions of secret %s: %w", name, err)
		}
		for _, p := range page.Value {
			if p == nil || p.ID == nil {
				continue
			}
			v := model.SecretVersion{Version: p.ID.Version()}
			if p.Attributes != nil {
				if p.Attributes.Enabled != nil {
					v.Enabled = *p.Attributes.Enabled
				}
				if p.Attributes.Updated != nil {
					v.Updated = *p.Attributes.Updated
				}
			}
			versions = append(versions, v)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Updated.Before(versions[j].Updated)
	})
	return versions, nil
}
