package system

import (
	"io/fs"
	"os"
	"testing/fstest"
)

// MemFS is an in-memory VirtualFS/WritableVirtualFS for tests, so document
// manager and connectivity tests can build small multi-file workspaces
// without touching disk.
type MemFS struct {
	fstest.MapFS
}

var _ VirtualFS = (*MemFS)(nil)
var _ WritableVirtualFS = (*MemFS)(nil)

// NewMemFS constructs an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{MapFS: fstest.MapFS{}}
}

// WithFile adds or replaces a file's contents and returns the receiver so
// callers can chain calls while seeding a test workspace.
func (m *MemFS) WithFile(name string, data string) *MemFS {
	m.MapFS[name] = &fstest.MapFile{Data: []byte(data), Mode: 0o644}
	return m
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return m.MapFS.Open(name)
}

func (m *MemFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.MapFS[name] = &fstest.MapFile{Data: data, Mode: perm}
	return nil
}

func (m *MemFS) MkdirAll(_ string, _ os.FileMode) error {
	return nil
}
