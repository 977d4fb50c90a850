// Package persist stores questionnaire sessions and prompt history in a
// key-value backend.
package persist

import (
	"errors"
	"fmt"
	"io"
	"regexp"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KV is the storage contract: get, set and remove opaque values by key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Store is a KV that holds resources.
type Store interface {
	KV
	io.Closer
}

// Backend names a KV implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// ValidBackends is the set of all valid backend names.
var ValidBackends = map[Backend]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendRedis:  true,
	BackendMemory: true,
}

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	Dir         string // file and sqlite
	RedisAddr   string
	RedisPrefix string
}

// Open returns the backend named in opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileKV(opts.Dir), nil
	case BackendSQLite:
		return NewSQLiteKV(opts.Dir)
	case BackendRedis:
		return NewRedisKV(opts.RedisAddr, opts.RedisPrefix)
	case BackendMemory:
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q: use file, sqlite, redis or memory", opts.Backend)
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
