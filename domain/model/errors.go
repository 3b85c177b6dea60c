package model

import "errors"

var (
	ErrVaultNotFound     = errors.New("vault not found")
	ErrVaultInvalid      = errors.New("vault invalid")
	ErrClusterNotFound   = errors.New("cluster not found")
	ErrClusterInvalid    = errors.New("cluster invalid")
	ErrBindingNotFound   = errors.New("binding not found")
	ErrBindingInvalid    = errors.New("binding invalid")
	ErrSyncStateNotFound = errors.New("sync state not found")
	ErrSecretNotFound    = errors.New("secret not found")
)
