package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a requested file or folder does not exist
// under the docs root.
var ErrNotFound = errors.New("not found")

// Folder is the payload of GET /api/folder/{path}.
type Folder struct {
	Path    string   `json:"path"`
	Folders []string `json:"folders"`
	Files   []string `json:"files"`
}

// Store serves the document repository rooted at a single directory. Listings
// hide excluded names and folders that are empty after exclusion. Folder
// results are cached until the filesystem watcher reports a change.
type Store struct {
	root           string
	excludeFiles   []string
	excludeFolders []string

	mu    sync.RWMutex
	cache map[string]*Folder
}

// NewStore creates a Store for the given root directory. The exclude slices
// hold glob patterns matched against bare names (not paths).
func NewStore(root string, excludeFiles, excludeFolders []string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving docs root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat docs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root is not a directory: %s", abs)
	}
	return &Store{
		root:           abs,
		excludeFiles:   excludeFiles,
		excludeFolders: excludeFolders,
		cache:          make(map[string]*Folder),
	}, nil
}

// Root returns the absolute docs root directory.
func (s *Store) Root() string { return s.root }

// ListFolder returns the visible contents of the folder at the given
// slash-separated relative path. "" and "." both name the root.
func (s *Store) ListFolder(rel string) (*Folder, error) {
	rel = normalizeFolderPath(rel)

	s.mu.RLock()
	if cached, ok := s.cache[rel]; ok {
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	abs, err := s.secureJoin(rel)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
			return nil, fmt.Errorf("folder %s: %w", rel, ErrNotFound)
		}
		return nil, fmt.Errorf("reading folder %s: %w", rel, err)
	}

	folder := &Folder{Path: rel, Folders: []string{}, Files: []string{}}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if matchAny(s.excludeFolders, name) {
				continue
			}
			if s.isFolderEmpty(filepath.Join(abs, name)) {
				continue
			}
			folder.Folders = append(folder.Folders, name)
		} else {
			if strings.HasPrefix(name, stagingPrefix) || matchAny(s.excludeFiles, name) {
				continue
			}
			folder.Files = append(folder.Files, name)
		}
	}
	sort.Strings(folder.Folders)
	sort.Strings(folder.Files)

	s.mu.Lock()
	s.cache[rel] = folder
	s.mu.Unlock()

	return folder, nil
}

// ReadFile returns the bytes of the file at the given relative path.
func (s *Store) ReadFile(rel string) ([]byte, error) {
	clean, err := SanitizeRelativePath(rel)
	if err != nil {
		return nil, err
	}
	abs, err := s.secureJoin(clean)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		if info, statErr := os.Stat(abs); statErr != nil || info.IsDir() {
			return nil, fmt.Errorf("file %s: %w", rel, ErrNotFound)
		}
		return nil, fmt.Errorf("reading file %s: %w", rel, err)
	}
	return content, nil
}

// FileExists reports whether the relative path names a readable regular file.
func (s *Store) FileExists(rel string) bool {
	clean, err := SanitizeRelativePath(rel)
	if err != nil {
		return false
	}
	abs, err := s.secureJoin(clean)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// Invalidate drops all cached folder listings. Called by the watcher.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]*Folder)
	s.mu.Unlock()
}

// isFolderEmpty reports whether a folder contains nothing visible after
// exclusion. Unreadable folders count as empty.
func (s *Store) isFolderEmpty(abs string) bool {
	entries, err := os.ReadDir(abs)
	if err != nil {
		return true
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if !matchAny(s.excludeFolders, name) {
				return false
			}
		} else if !strings.HasPrefix(name, stagingPrefix) && !matchAny(s.excludeFiles, name) {
			return false
		}
	}
	return true
}

// secureJoin joins rel under the root and rejects any result that escapes it.
func (s *Store) secureJoin(rel string) (string, error) {
	joined := filepath.Join(s.root, filepath.FromSlash(rel))
	check, err := filepath.Rel(s.root, joined)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", rel, err)
	}
	if check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes docs root", rel)
	}
	return joined, nil
}

// SanitizeRelativePath normalizes a client-supplied path and rejects absolute
// paths and parent traversal.
func SanitizeRelativePath(p string) (string, error) {
	clean := strings.TrimSpace(p)
	if clean == "" {
		return "", errors.New("path is required")
	}
	clean = filepath.Clean(filepath.FromSlash(clean))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid path %q", p)
	}
	return filepath.ToSlash(clean), nil
}

// normalizeFolderPath maps the various spellings of the root folder to ".".
func normalizeFolderPath(rel string) string {
	rel = strings.Trim(strings.TrimSpace(rel), "/")
	if rel == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
}

// matchAny reports whether the name matches any of the glob patterns.
// Invalid patterns never match.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
