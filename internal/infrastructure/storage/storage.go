// Package storage implements ports.KeyValueStore on sqlite, plain files and redis.
package storage

import (
	"context"
	"fmt"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Open builds the backend named by cfg.Storage. A sqlite database that
// cannot be opened degrades to the file backend so history keeps working.
func Open(ctx context.Context, cfg domain.Config, logger ports.Logger) (ports.KeyValueStore, error) {
	switch backend := cfg.StorageBackend(); backend {
	case domain.StorageBackendSQLite:
		store, err := OpenSQLite(ctx, cfg.Storage.Path)
		if err == nil {
			return store, nil
		}
		logger.Warn("sqlite unavailable, falling back to file storage", map[string]interface{}{
			"path":  cfg.Storage.Path,
			"error": err.Error(),
		})
		return NewFileStore(cfg.Storage.Dir), nil
	case domain.StorageBackendFile:
		return NewFileStore(cfg.Storage.Dir), nil
	case domain.StorageBackendRedis:
		return OpenRedis(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
