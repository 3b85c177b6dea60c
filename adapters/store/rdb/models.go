package rdb

import "time"

// VaultRecord is the RDB persistence model for domain Vault.
// Table name: vaults
type VaultRecord struct {
	ID            string    `gorm:"primaryKey;type:text;not null"`
	Name          string    `gorm:"type:text;not null"`
	ResourceGroup string    `gorm:"type:text;not null"`
	URI           string    `gorm:"type:text"`
	Driver        string    `gorm:"type:text;not null"`
	Settings      string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (VaultRecord) TableName() string { return "vaults" }

// ClusterRecord persistence model
type ClusterRecord struct {
	ID            string    `gorm:"primaryKey;type:text;not null"`
	Name          string    `gorm:"type:text;not null"`
	ResourceGroup string    `gorm:"type:text;not null"`
	Existing      bool      `gorm:"not null"`
	Driver        string    `gorm:"type:text;not null"`
	Settings      string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (ClusterRecord) TableName() string { return "clusters" }

// BindingRecord persistence model
type BindingRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	Name        string    `gorm:"type:text;not null"`
	VaultID     string    `gorm:"type:text;not null"` // references Vault
	ClusterID   string    `gorm:"type:text;not null"` // references Cluster
	VaultSecret string    `gorm:"type:text;not null"`
	Namespace   string    `gorm:"type:text;not null"`
	SecretName  string    `gorm:"type:text;not null"`
	SecretKey   string    `gorm:"type:text;not null"`
	Deployment  string    `gorm:"type:text"`
	IntervalNS  int64     `gorm:"not null"` // poll interval in nanoseconds, 0 = default
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (BindingRecord) TableName() string { return "bindings" }

// SyncStateRecord persistence model, one row per binding.
type SyncStateRecord struct {
	BindingID string    `gorm:"primaryKey;type:text;not null"`
	Version   string    `gorm:"type:text"`
	Hash      string    `gorm:"type:text"`
	SyncedAt  time.Time `gorm:""`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SyncStateRecord) TableName() string { return "sync_states" }
