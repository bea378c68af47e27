package logging

import (
	"io"
	"os"
	"path/filepath"
)

// LogFileSystem is the interface to handle log file directory creation and file open/append
type LogFileSystem interface {
	MkDir(dirname string) error
	Open(name string) (io.WriteCloser, error)
}

// NewLogFileSystem creates a LogFileSystem backed by the OS.
func NewLogFileSystem() LogFileSystem {
	return &logFileSystemImpl{}
}

type logFileSystemImpl struct{}

// MkDir creates a directory named path, along with any necessary parents. If path is already a directory, MkDir does nothing.
func (fs *logFileSystemImpl) MkDir(name string) error {
	return os.MkdirAll(name, 0777)
}

// Open opens the file for appending, creating it if it does not exist.
func (fs *logFileSystemImpl) Open(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// OpenLogFile creates the directory of path if needed and opens path for appending log lines.
func OpenLogFile(fs LogFileSystem, path string) (io.WriteCloser, error) {
	if err := fs.MkDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return fs.Open(path)
}
