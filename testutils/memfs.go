package testutils

import (
	"io/fs"
	"path/filepath"
)

// MemFS is an in-memory rule file system for tests. Keys are absolute, slash-separated paths.
// Relative paths resolve against the root directory.
type MemFS struct {
	Files    map[string]string
	Symlinks map[string]string // Link path to target path.
}

// ReadFile returns the contents of a file, or an error wrapping fs.ErrNotExist.
func (m *MemFS) ReadFile(filename string) ([]byte, error) {
	s, ok := m.Files[filename]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

// Abs makes a path absolute relative to the root directory.
func (m *MemFS) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join("/", path), nil
}

// EvalSymlinks follows a single level of Symlinks.
func (m *MemFS) EvalSymlinks(path string) (string, error) {
	if target, ok := m.Symlinks[path]; ok {
		return target, nil
	}
	return path, nil
}
