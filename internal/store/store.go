// Package store opens the configured core.TaskStore backend.
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/routine/internal/config"
	"github.com/JonMunkholm/routine/internal/core"
	"github.com/JonMunkholm/routine/internal/store/gormstore"
	"github.com/JonMunkholm/routine/internal/store/pgstore"
)

// Backend is a TaskStore that holds connections.
type Backend interface {
	core.TaskStore
	io.Closer
}

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Backend, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite, "":
		s, err := gormstore.Open(cfg.URL)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := s.DB().DB(); err == nil {
			sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
			sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
		}
		return s, nil
	case config.DriverPostgres:
		return pgstore.Connect(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
