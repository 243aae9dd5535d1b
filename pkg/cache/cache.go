// Package cache stores rendered diagrams keyed by a hash of their input.
//
// # Overview
//
// Rendering a landmark graph through Graphviz is the slowest step of an
// export. The pipeline keys rendered SVG, PDF and PNG output by the hash of
// the DOT source it was produced from ([RenderKey]), so re-exporting an
// unchanged graph skips Graphviz entirely.
//
// # Backends
//
//   - [FileCache]: one file per entry under the XDG cache directory (CLI)
//   - [MemoryCache]: bounded in-process LRU (single server instance)
//   - [RedisCache]: shared cache for several server instances
//   - [NewNullCache]: caching disabled
//
// All backends honour per-entry TTLs; a zero TTL never expires.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with expiring entries.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted or evicted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Kind names a cache backend in configuration.
type Kind string

const (
	KindFile   Kind = "file"
	KindMemory Kind = "memory"
	KindRedis  Kind = "redis"
	KindNone   Kind = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Kind          Kind
	Dir           string // FileCache directory
	MemoryEntries int
	Redis         RedisConfig
}

// nullCache never stores anything.
type nullCache struct{}

// NewNullCache returns a cache with caching disabled: every Get misses.
func NewNullCache() Cache { return nullCache{} }

func (nullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error { return nil }
func (nullCache) Close() error { return nil }

// Open creates the cache described by opts. An empty kind selects the file
// cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Kind {
	case KindFile, "":
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindMemory:
		c, err := NewMemoryCache(opts.MemoryEntries)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindRedis:
		c, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache kind %q", opts.Kind)
}
