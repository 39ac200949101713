package types

import "io/fs"

// ReadFS is the part of the filesystem used to find and load documents
type ReadFS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// FS adds the operations needed to write documents back
type FS interface {
	ReadFS
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}
