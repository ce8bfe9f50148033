// Package state persists the scene the CLI operates on.
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/attrorder/internal/scene"
)

// Store reads and writes a scene document as YAML on a filesystem.
type Store struct {
	lock   sync.Mutex
	fs     vfs.FileSystem
	path   string
	logger *slog.Logger
}

// NotFoundError indicates that the scene file does not exist yet.
type NotFoundError struct {
	// Path is the scene file that was looked up.
	Path string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "scene file not found"
	}
	return fmt.Sprintf("scene file %q not found, run \"attrorder scene init\" first", e.Path)
}

// IsNotFoundError reports whether err indicates a missing scene file.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// NewStore constructs a Store for the scene file at path. The OS filesystem is
// used unless fss supplies another one.
func NewStore(path string, logger *slog.Logger, fss ...vfs.FileSystem) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("scene path is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	var fs vfs.FileSystem = osfs.New()
	if len(fss) > 0 && fss[0] != nil {
		fs = fss[0]
	}
	return &Store{fs: fs, path: path, logger: logger}, nil
}

// Path returns the scene file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the scene file exists.
func (s *Store) Exists() (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, err := s.fs.Stat(s.path); err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat scene %q: %w", s.path, err)
	}
	return true, nil
}

// Load reads the scene document and builds a scene from it.
func (s *Store) Load(opts scene.Options) (*scene.Scene, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := vfs.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, &NotFoundError{Path: s.path}
		}
		return nil, fmt.Errorf("read scene %q: %w", s.path, err)
	}

	var doc scene.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %q: %w", s.path, err)
	}
	sc, err := scene.FromDocument(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", s.path, err)
	}
	s.logger.Debug("scene loaded", "path", s.path, "objects", len(doc.Objects))
	return sc, nil
}

// Save writes the scene document, creating parent directories as needed.
func (s *Store) Save(sc *scene.Scene) error {
	if sc == nil {
		return fmt.Errorf("scene is nil")
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := yaml.Marshal(sc.Document())
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if dir := path.Dir(s.path); dir != "." && dir != "/" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, vfs.ErrExist) {
			return fmt.Errorf("create scene directory %q: %w", dir, err)
		}
	}
	if err := vfs.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %q: %w", s.path, err)
	}
	s.logger.Debug("scene saved", "path", s.path)
	return nil
}
