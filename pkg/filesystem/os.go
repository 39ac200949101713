package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/google/renameio/v2"
)

type osFS struct{}

// NewOS returns the filesystem used for real runs
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile replaces name atomically: the data goes to a pending file in
// the same directory which is fsynced and renamed over the target. An
// existing file keeps its permissions.
func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	pending, err := renameio.NewPendingFile(name,
		renameio.WithPermissions(perm),
		renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create pending file").WithDetail("file", name)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write pending file").WithDetail("file", name)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot replace file").WithDetail("file", name)
	}
	return nil
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
