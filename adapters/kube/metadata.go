package kube

// Annotations and labels applied to resources kvbridge manages.
const (
	// AnnotationSourceVault records the vault name a synced Secret came from.
	AnnotationSourceVault = "kvbridge.dev/source-vault"
	// AnnotationSourceSecret records the vault secret name.
	AnnotationSourceSecret = "kvbridge.dev/source-secret"
	// AnnotationSourceVersion records the vault secret version last synced.
	AnnotationSourceVersion = "kvbridge.dev/source-version"
	// AnnotationSecretHash records the short hash of the synced value.
	AnnotationSecretHash = "kvbridge.dev/secret-hash"
	// AnnotationRestartedAt is patched into pod templates to roll dependents.
	AnnotationRestartedAt = "kvbridge.dev/restarted-at"

	// LabelManagedBy marks resources created by kvbridge.
	LabelManagedBy = "app.kubernetes.io/managed-by"
	// ManagedByValue is the value set on LabelManagedBy.
	ManagedByValue = "kvbridge"
)
