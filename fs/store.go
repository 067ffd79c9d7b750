// Package fs writes extraction results to a directory of JSON files.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/locgen"
)

// Ensure ResultStore implements locgen.ResultStore at compile time.
var _ locgen.ResultStore = (*ResultStore)(nil)

// ResultStore implements locgen.ResultStore with atomic update semantics.
// Results are saved to a temporary directory, then moved into place on
// Commit. Sources that map to the same file name get a numeric suffix
// (login.json, login-2.json) instead of overwriting each other.
type ResultStore struct {
	baseDir string
	name    string

	mu      sync.Mutex
	written map[string]bool
}

// NewResultStore creates a new ResultStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewResultStore(baseDir, name string) *ResultStore {
	return &ResultStore{
		baseDir: baseDir,
		name:    name,
		written: make(map[string]bool),
	}
}

func (s *ResultStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ResultStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the elements extracted from source as an indented JSON array.
func (s *ResultStore) Save(ctx context.Context, source string, elems []*locgen.ElementInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := SourcePath(source)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), s.claim(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if elems == nil {
		elems = []*locgen.ElementInfo{}
	}
	data, err := json.MarshalIndent(elems, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// claim reserves relPath for this store, adding a -N suffix before the
// extension when an earlier Save already used it.
func (s *ResultStore) claim(relPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ext := filepath.Ext(relPath)
	stem := strings.TrimSuffix(relPath, ext)
	candidate := relPath
	for n := 2; s.written[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	s.written[candidate] = true
	return candidate
}

// Commit replaces the output directory with the saved results.
func (s *ResultStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved results.
func (s *ResultStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// SourcePath converts a source to a relative JSON file path. Dot segments
// in URL paths are resolved first, so the result never leaves the output
// directory.
//
//	https://example.com/login  → example.com/login.json
//	https://example.com/docs/  → example.com/docs/index.json
//	pages/signup.html          → signup.json
//	-                          → stdin.json
func SourcePath(source string) (string, error) {
	if source == "-" {
		return "stdin.json", nil
	}

	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
		if p == "" || strings.HasSuffix(u.Path, "/") {
			p = path.Join(p, "index")
		}
		p = strings.TrimSuffix(p, path.Ext(p))
		rel := filepath.Join(u.Hostname(), filepath.FromSlash(p)+".json")
		if !filepath.IsLocal(rel) || u.Hostname() == "" {
			return "", locgen.Errorf(locgen.EINVALID, "cannot derive a file name from source %q", source)
		}
		return rel, nil
	}

	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) {
		return "", locgen.Errorf(locgen.EINVALID, "cannot derive a file name from source %q", source)
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json", nil
}
