// Package snippet manages the store directory of cron snippet files.
// Each regular, non-hidden file in the directory is one snippet whose name is
// the file name. The directory is created lazily by the first add.
package snippet

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/aatumaykin/crondir/internal/logger"
)

// Snippet is a single file in the store directory.
type Snippet struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Content reads the snippet file.
func (s Snippet) Content() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read snippet %s: %w", s.Name, err)
	}
	return string(data), nil
}

// Store provides access to the snippet directory.
type Store struct {
	path   string
	logger *logger.Logger
}

// NewStore creates a Store rooted at path. The directory is not created.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path:   path,
		logger: log,
	}
}

// Path returns the store directory.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the store directory exists.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.IsDir()
}

// List returns the snippets sorted by name.
// Hidden files and anything that is not a regular file are skipped;
// symlinks are followed.
func (s *Store) List() ([]Snippet, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, s.path)
		}
		s.logger.Error("failed to read store directory", err,
			logger.Field{Key: "dir", Value: s.path})
		return nil, err
	}

	snippets := make([]Snippet, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(s.path, entry.Name())
		if !entry.Type().IsRegular() {
			if entry.Type()&fs.ModeSymlink == 0 {
				continue
			}
			// Symlinked snippets count when they point at a regular file
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				s.logger.Debug("skipping symlink",
					logger.Field{Key: "file", Value: path})
				continue
			}
		}
		snippets = append(snippets, Snippet{
			Name: entry.Name(),
			Path: path,
		})
	}

	// os.ReadDir already sorts, keep the contract explicit
	sort.Slice(snippets, func(i, j int) bool {
		return snippets[i].Name < snippets[j].Name
	})

	return snippets, nil
}

// AddFile copies source into the store as name, or as the source base name
// when name is empty. An existing snippet is only overwritten with force.
func (s *Store) AddFile(source, name string, force bool) (Snippet, error) {
	info, err := os.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return Snippet{}, fmt.Errorf("file %s %w", source, ErrNotFound)
	}

	if name == "" {
		name = filepath.Base(source)
	}
	name, err = normalizeName(name)
	if err != nil {
		return Snippet{}, err
	}

	dest := filepath.Join(s.path, name)
	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(info, destInfo) {
		return Snippet{}, fmt.Errorf("%s and %s %w", source, dest, ErrSameFile)
	}
	if _, err := os.Lstat(dest); err == nil && !force {
		return Snippet{}, fmt.Errorf("%s %w. Use --force to overwrite", dest, ErrConflict)
	}

	// Create cron dir - only place this happens
	if err := os.MkdirAll(s.path, 0755); err != nil {
		s.logger.Error("failed to create store directory", err,
			logger.Field{Key: "dir", Value: s.path})
		return Snippet{}, err
	}

	if err := copyFile(source, dest, info.Mode().Perm()); err != nil {
		s.logger.Error("failed to copy snippet", err,
			logger.Field{Key: "source", Value: source},
			logger.Field{Key: "dest", Value: dest})
		return Snippet{}, err
	}

	s.logger.Debug("snippet added",
		logger.Field{Key: "name", Value: name},
		logger.Field{Key: "source", Value: source},
		logger.Field{Key: "force", Value: force})

	return Snippet{Name: name, Path: dest}, nil
}

// AddString stores contents, joined by newlines, as the snippet name.
// The text is materialized in a temporary file and added with AddFile.
func (s *Store) AddString(name string, force bool, contents ...string) (Snippet, error) {
	if name == "" {
		return Snippet{}, fmt.Errorf("%w: name is required", ErrInvalidName)
	}

	tmp, err := os.CreateTemp("", "crondir-snippet-*")
	if err != nil {
		return Snippet{}, fmt.Errorf("failed to create temporary snippet: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(contents, "\n")); err != nil {
		tmp.Close()
		return Snippet{}, fmt.Errorf("failed to write temporary snippet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Snippet{}, fmt.Errorf("failed to close temporary snippet: %w", err)
	}

	return s.AddFile(tmp.Name(), name, force)
}

// Remove deletes the snippet name. A missing snippet is an error unless
// force is set, in which case Remove reports false.
func (s *Store) Remove(name string, force bool) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	// Files created outside crondir keep their on-disk form, so the literal
	// name wins over its NFC form.
	target := filepath.Join(s.path, name)
	_, err := os.Lstat(target)
	if os.IsNotExist(err) {
		if nfc := norm.NFC.String(name); nfc != name {
			target = filepath.Join(s.path, nfc)
			_, err = os.Lstat(target)
		}
	}
	if err != nil {
		if !os.IsNotExist(err) {
			return false, err
		}
		if !force {
			return false, fmt.Errorf("%s %w. Use --force to ignore", target, ErrNotFound)
		}
		return false, nil
	}

	if err := os.Remove(target); err != nil {
		s.logger.Error("failed to remove snippet", err,
			logger.Field{Key: "file", Value: target})
		return false, err
	}

	s.logger.Debug("snippet removed", logger.Field{Key: "name", Value: name})
	return true, nil
}

// normalizeName converts name to NFC so that names typed on different
// platforms map to the same file, and rejects names that escape the store.
func normalizeName(name string) (string, error) {
	name = norm.NFC.String(name)
	if err := checkName(name); err != nil {
		return "", err
	}
	return name, nil
}

// checkName rejects names that are not a single file inside the store.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// copyFile copies bytes verbatim, replacing dest.
func copyFile(source, dest string, perm os.FileMode) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
