// Package inventory manages the contents of the managed directory: the
// version-qualified terraform binaries and the active symlink. It works
// purely off the filesystem; install and activation logic live elsewhere.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/atakanttl/tvm/internal/logging"
)

// toolName mirrors the binary package's tool name. Inventory only needs the
// filename convention, not the installer itself.
const toolName = "terraform"

// ErrNoActiveVersion reports that no version is currently active: the
// symlink is absent or broken. Removing "unused" versions without an active
// one would delete everything, so it is refused explicitly.
var ErrNoActiveVersion = errors.New("no active terraform version is set")

// Entry describes one installed version file.
type Entry struct {
	Name   string // version-qualified filename, e.g. terraform_1.5.0_linux_amd64
	Active bool
}

// Store enumerates and removes installed versions and maintains the active
// symlink inside a managed directory.
type Store struct {
	dir string
	log *logrus.Logger
}

// NewStore creates a store over the managed directory.
func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		log: logging.NewLogger(),
	}
}

// LinkPath returns the path of the active symlink.
func (s *Store) LinkPath() string {
	return filepath.Join(s.dir, toolName)
}

// Installed returns the names of all installed version files, sorted in
// descending lexicographic order. The ordering is not semantic-version
// aware: terraform_1.9.x sorts after terraform_1.10.x.
func (s *Store) Installed() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, toolName+"_*"))
	if err != nil {
		return nil, fmt.Errorf("glob installed versions: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, filepath.Base(match))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ActiveName resolves the active symlink and returns the basename of its
// target. The second return is false when the symlink is absent, not a
// symlink, or points at nothing.
func (s *Store) ActiveName() (string, bool, error) {
	linkPath := s.LinkPath()

	info, err := os.Lstat(linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("stat active link: %w", err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return "", false, nil
	}

	target, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		// Broken link: treat as no active version
		return "", false, nil
	}

	return filepath.Base(target), true, nil
}

// List returns all installed versions in descending order with the active
// one marked. When no symlink resolves, no entry is marked.
func (s *Store) List() ([]Entry, error) {
	names, err := s.Installed()
	if err != nil {
		return nil, err
	}

	activeName, hasActive, err := s.ActiveName()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{
			Name:   name,
			Active: hasActive && name == activeName,
		})
	}

	return entries, nil
}

// SetActive repoints the active symlink at targetPath, removing any existing
// link first. The repoint is not conditional on the current target; using an
// already-active version recreates the link.
func (s *Store) SetActive(targetPath string) error {
	linkPath := s.LinkPath()

	if _, err := os.Lstat(linkPath); err == nil {
		s.log.Info("Removing existing symbolic link...")
		if err := os.Remove(linkPath); err != nil {
			return fmt.Errorf("remove existing link: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat existing link: %w", err)
	}

	s.log.Infof("Creating a symbolic link for %s to %s", targetPath, linkPath)
	if err := os.Symlink(targetPath, linkPath); err != nil {
		return fmt.Errorf("create link: %w", err)
	}

	return nil
}

// RemoveUnused deletes every installed version except the active one.
// Returns ErrNoActiveVersion when the symlink is absent or broken. A delete
// failure aborts the remaining batch.
func (s *Store) RemoveUnused() error {
	activeName, hasActive, err := s.ActiveName()
	if err != nil {
		return err
	}
	if !hasActive {
		return ErrNoActiveVersion
	}

	names, err := s.Installed()
	if err != nil {
		return err
	}

	for _, name := range names {
		if name == activeName {
			continue
		}

		path := filepath.Join(s.dir, name)
		s.log.Infof("Removing: %s", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	return nil
}

// RemoveAll deletes every entry matching the tool's filename prefix,
// including the active symlink itself, without confirmation. A delete
// failure aborts the remaining batch.
func (s *Store) RemoveAll() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, toolName+"*"))
	if err != nil {
		return fmt.Errorf("glob tool files: %w", err)
	}

	for _, path := range matches {
		s.log.Infof("Removing: %s", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	return nil
}
