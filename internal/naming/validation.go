package naming

import (
	"fmt"
	"regexp"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	bindingNameMaxLength = 24
	// Key Vault names: 3-24 alphanumerics and hyphens, starting with a letter.
	vaultNameRe = `^[a-zA-Z][a-zA-Z0-9-]{2,23}$`
	// Key Vault secret names: 1-127 alphanumerics and hyphens, nothing else.
	vaultSecretNameRe = `^[0-9a-zA-Z-]{1,127}$`
)

var (
	vaultNamePattern       = regexp.MustCompile(vaultNameRe)
	vaultSecretNamePattern = regexp.MustCompile(vaultSecretNameRe)
)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", labelKind)
	}
	if len(name) > maximum {
		return fmt.Errorf("%s name exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid %s name: %s", labelKind, strings.Join(errs, ", "))
	}
	return nil
}

// ValidateBindingName checks that a binding name is usable inside Kubernetes
// resource names derived from it.
func ValidateBindingName(name string) error {
	return validateDNS1123Label(name, bindingNameMaxLength, "binding")
}

// ValidateVaultName checks the Azure Key Vault naming rules.
func ValidateVaultName(name string) error {
	if !vaultNamePattern.MatchString(name) {
		return fmt.Errorf("invalid vault name %q: must match %s", name, vaultNameRe)
	}
	if strings.Contains(name, "--") {
		return fmt.Errorf("invalid vault name %q: consecutive hyphens not allowed", name)
	}
	return nil
}

// ValidateSecretKey checks that a Secret data key is a valid env-style key.
// This is the Kubernetes-side rule; Key Vault secret names follow
// ValidateVaultSecretName instead.
func ValidateSecretKey(key string) error {
	if errs := utilvalidation.IsConfigMapKey(key); len(errs) > 0 {
		return fmt.Errorf("invalid secret key %q: %s", key, strings.Join(errs, ", "))
	}
	return nil
}

// ValidateVaultSecretName checks the Azure Key Vault secret naming rules.
// Underscores and dots are legal in env keys but not here; see VaultSecretName
// for the mapping.
func ValidateVaultSecretName(name string) error {
	if !vaultSecretNamePattern.MatchString(name) {
		return fmt.Errorf("invalid vault secret name %q: must match %s", name, vaultSecretNameRe)
	}
	return nil
}
