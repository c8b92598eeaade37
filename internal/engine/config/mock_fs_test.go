package config

import (
	"errors"
	"io/fs"
)

// errNotExist is the sentinel the mock file system reports for missing files.
var errNotExist = errors.New("file does not exist")

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	Files   map[string][]byte
	Home    string
	HomeErr error
}

func newMockFS() *MockFileSystem {
	return &MockFileSystem{Files: map[string][]byte{}, Home: "/home/test"}
}

func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	data, ok := m.Files[name]
	if !ok {
		return nil, errNotExist
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.Files[name] = data
	return nil
}

func (m *MockFileSystem) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.Home, m.HomeErr
}

func (m *MockFileSystem) Stat(_ string) (fs.FileInfo, error) {
	return nil, errNotExist
}

func (m *MockFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, errNotExist)
}
