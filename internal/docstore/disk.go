package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Disk is a filesystem-backed Cache rooted at a single directory.
type Disk struct {
	baseDir string
}

// NewDisk creates the base directory if needed and verifies it is usable.
func NewDisk(baseDir string) (*Disk, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}

	info, err := os.Stat(baseDir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("document cache path is not a directory")
		}
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(baseDir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create document cache directory: %w", mkErr)
		}
	default:
		return nil, fmt.Errorf("stat document cache directory: %w", err)
	}

	return &Disk{baseDir: baseDir}, nil
}

// Get returns the cached document bytes for key, or ErrMiss.
func (d *Disk) Get(key string) ([]byte, error) {
	path, err := d.entryPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("read cached document: %w", err)
	}
	return data, nil
}

// Put stores data under key, replacing any prior entry.
func (d *Disk) Put(key string, data []byte) error {
	path, err := d.entryPath(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cached document: %w", err)
	}
	return nil
}

// entryPath resolves key inside the base directory, rejecting anything that
// would escape it.
func (d *Disk) entryPath(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("cache key is required")
	}
	full := filepath.Join(d.baseDir, key)
	cleanBase := filepath.Clean(d.baseDir)
	if !strings.HasPrefix(filepath.Clean(full), cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("cache key escapes base directory")
	}
	return full, nil
}
