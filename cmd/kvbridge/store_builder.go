package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kvbridge/kvbridge/adapters/store/memory"
	"github.com/kvbridge/kvbridge/adapters/store/rdb"
	"github.com/kvbridge/kvbridge/config/kvbridgecfg"
	"github.com/kvbridge/kvbridge/domain"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from the command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "file:" + kvbridgecfg.DefaultConfigPath
}

// buildRepositories creates repositories based on db-url.
// file: URLs load kvbridge.yml into the in-memory store; sqlite: URLs open
// a persistent database.
func buildRepositories(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getDBURL(cmd)

	switch {
	case strings.HasPrefix(dbURL, "file:"):
		filePath := strings.TrimPrefix(dbURL, "file:")
		if filePath == "" {
			return nil, fmt.Errorf("file path is required for file: URL")
		}
		cfg, err := kvbridgecfg.Load(filePath)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", filePath, err)
		}

		store := memory.NewStore()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := store.LoadFromConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("load config into store: %w", err)
		}
		return store.Repositories(), nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &domain.Repositories{
			Vault:     rdb.NewVaultRepository(db),
			Cluster:   rdb.NewClusterRepository(db),
			Binding:   rdb.NewBindingRepository(db),
			SyncState: rdb.NewSyncStateRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
