package vanilla

import (
	"fmt"
	"time"

	"mods-merger/core/storage"
)

// Config holds configuration for the vanilla source.
type Config struct {
	// Source selects where vanilla assets come from (none, dir, storage).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the extracted game root, for the dir source.
	Dir string `mapstructure:"dir" default:"./vanilla"`
	// Prefix is the object key prefix, for the storage source.
	Prefix string `mapstructure:"prefix" default:"vanilla"`
	// CacheTTLSeconds caches vanilla reads in memory. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

const (
	SourceNone    = "none"
	SourceDir     = "dir"
	SourceStorage = "storage"
)

// New builds the configured source. client is only needed for the storage source.
func New(cfg Config, client storage.Client, bucket string) (Source, error) {
	var src Source
	switch cfg.Source {
	case SourceNone, "":
		return None{}, nil
	case SourceDir:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("vanilla dir source requires a directory")
		}
		src = NewDirSource(cfg.Dir)
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("vanilla storage source requires a storage client")
		}
		src = NewStorageSource(client, bucket, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown vanilla source %q", cfg.Source)
	}

	if cfg.CacheTTLSeconds > 0 {
		return NewCachedSource(src, time.Duration(cfg.CacheTTLSeconds)*time.Second), nil
	}
	return src, nil
}
