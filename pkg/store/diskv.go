package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

// Config locates the cache blob.
type Config interface {
	CachePath() string
}

// Blob is an opaque byte store at one fixed path.
type Blob interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Path() string
}

// ErrNotFound is returned by Read when nothing has been cached yet.
var ErrNotFound = errors.New("store: blob not found")

// Load creates a Blob backed by diskv at the configured cache path.
func Load(cfg Config) (Blob, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	path, err := homedir.Expand(strings.TrimSpace(cfg.CachePath()))
	if err != nil {
		return nil, fmt.Errorf("store: expand %q: %w", cfg.CachePath(), err)
	}
	if path == "" {
		return nil, errors.New("store: cache path required")
	}
	path = filepath.Clean(path)
	dir, key := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return &blob{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			PathPerm:          0o755,
			FilePerm:          0o644,
		}),
		key:  key,
		path: path,
	}, nil
}

type blob struct {
	d    *diskv.Diskv
	key  string
	path string
}

func (b *blob) Path() string {
	return b.path
}

func (b *blob) Read() ([]byte, error) {
	data, err := b.d.Read(b.key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", b.path, err)
	}
	return data, nil
}

// Write replaces the blob. Concurrent readers may observe a partial write,
// which decodes as a cache miss.
func (b *blob) Write(data []byte) error {
	if err := b.d.Write(b.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", b.path, err)
	}
	return nil
}

// The blob lives directly under BasePath, no sharding directories.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
