package rules

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultRootGlob selects every file with an extension
const DefaultRootGlob = "**/*.*"

// DefaultIgnoreDirs are never descended into
var DefaultIgnoreDirs = []string{".git"}

// Scanner walks a directory tree and returns the files matching a glob
type Scanner struct {
	glob       string
	ignoreDirs map[string]bool
	fs         types.FS
	logger     zerolog.Logger
}

// NewScanner creates a scanner. An empty glob selects DefaultRootGlob.
func NewScanner(fs types.FS, glob string, ignoreDirs []string) (*Scanner, error) {
	if glob == "" {
		glob = DefaultRootGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, errors.Newf(errors.ErrInvalidPattern, "invalid root glob %q", glob).
			WithDetail("glob", glob)
	}
	ignored := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignored[d] = true
	}
	return &Scanner{
		glob:       glob,
		ignoreDirs: ignored,
		fs:         fs,
		logger:     logging.GetLogger("rules.scanner"),
	}, nil
}

// Glob returns the root glob
func (s *Scanner) Glob() string {
	return s.glob
}

// Scan returns the matching files below root sorted by relative path
func (s *Scanner) Scan(root string) ([]FileInfo, error) {
	s.logger.Debug().
		Str("root", root).
		Str("glob", s.glob).
		Msg("Scanning directory tree")

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot access root %s", root).
			WithDetail("root", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "root %s is not a directory", root).
			WithDetail("root", root)
	}

	var files []FileInfo
	if err := s.walk(root, "", &files); err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	s.logger.Debug().
		Int("fileCount", len(files)).
		Msg("Scan complete")
	return files, nil
}

// linksToFile keeps symlinks whose target is a regular file. Dangling
// links, such as editor lock files, and links to directories are skipped.
func (s *Scanner) linksToFile(p, rel string) bool {
	info, err := s.fs.Stat(p)
	if err != nil {
		s.logger.Trace().Err(err).Str("file", rel).Msg("Skipping dangling symlink")
		return false
	}
	if !info.Mode().IsRegular() {
		s.logger.Trace().Str("file", rel).Msg("Skipping symlink to a non regular file")
		return false
	}
	return true
}

func (s *Scanner) walk(dir, rel string, files *[]FileInfo) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "cannot read directory %s", dir).
			WithDetail("dir", dir)
	}
	for _, entry := range entries {
		name := entry.Name()
		childRel := name
		if rel != "" {
			childRel = path.Join(rel, name)
		}
		childPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.ignoreDirs[name] {
				s.logger.Trace().Str("dir", childRel).Msg("Skipping ignored directory")
				continue
			}
			if err := s.walk(childPath, childRel, files); err != nil {
				return err
			}
			continue
		}
		if t := entry.Type(); !t.IsRegular() {
			if t&os.ModeSymlink == 0 || !s.linksToFile(childPath, childRel) {
				continue
			}
		}
		matched, err := doublestar.Match(s.glob, childRel)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidPattern, "invalid root glob %q", s.glob)
		}
		if matched {
			*files = append(*files, FileInfo{Path: childPath, RelPath: childRel, Name: name})
		}
	}
	return nil
}
