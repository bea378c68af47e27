package ruleset

import (
	"os"
	"path/filepath"
)

// FileSystem is the file system functions the loader needs. Needed for mocking.
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	Abs(path string) (string, error)
	EvalSymlinks(path string) (string, error)
}

// NewFileSystem creates a FileSystem that uses the real OS file system.
func NewFileSystem() FileSystem {
	return &osFileSystem{}
}

type osFileSystem struct{}

func (f *osFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

func (f *osFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (f *osFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
