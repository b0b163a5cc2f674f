package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ManifestFilename is the declaration file every content package carries at
// its root.
const ManifestFilename = "ambient.toml"

// Source is named file access rooted at one content package. Path-pinned
// dependencies are reached through Sub; the loader uses Key to de-duplicate
// packages reached through different dependency chains.
type Source interface {
	// Get returns the contents of a file relative to the source root.
	Get(name string) ([]byte, error)
	// Sub returns a source rooted at a directory relative to this one.
	Sub(dir string) Source
	// Key is a canonical identity for the source root.
	Key() string
}

// DiskSource reads a package from a directory on disk.
type DiskSource struct {
	root string
}

func NewDiskSource(root string) DiskSource {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return DiskSource{root: abs}
}

func (s DiskSource) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %q from %q", name, s.root)
	}
	return data, nil
}

func (s DiskSource) Sub(dir string) Source {
	return DiskSource{root: filepath.Clean(filepath.Join(s.root, dir))}
}

func (s DiskSource) Key() string { return s.root }

// MemorySource serves a package from an in-memory file table. Used for
// deployment bundles and tests.
type MemorySource struct {
	key   string
	files map[string][]byte
}

func NewMemorySource(key string, files map[string][]byte) MemorySource {
	return MemorySource{key: key, files: files}
}

func (s MemorySource) Get(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, eris.Errorf("source %q holds no file %q", s.key, name)
	}
	return data, nil
}

func (s MemorySource) Sub(dir string) Source {
	sub := make(map[string][]byte)
	prefix := filepath.ToSlash(filepath.Clean(dir)) + "/"
	for name, data := range s.files {
		if rest, found := strings.CutPrefix(name, prefix); found {
			sub[rest] = data
		}
	}
	return MemorySource{key: s.key + "/" + filepath.ToSlash(filepath.Clean(dir)), files: sub}
}

func (s MemorySource) Key() string { return s.key }
