package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileName is the name of the node configuration file.
const DefaultFileName = "bitcore-node-divi.json"

// Result is a located configuration file.
type Result struct {
	// Path is the absolute directory that directly contains the file.
	Path string
	// Config is the parsed content of the file.
	Config map[string]any

	name string
}

// File returns the full path of the located configuration file.
func (r Result) File() string {
	if r.name == "" {
		return filepath.Join(r.Path, DefaultFileName)
	}
	return filepath.Join(r.Path, r.name)
}

// Finder walks up a directory tree looking for FileName.
// The zero value searches for DefaultFileName.
type Finder struct {
	FileName string
}

// FindConfig searches for DefaultFileName starting at cwd.
func FindConfig(cwd string) (Result, bool, error) {
	return Finder{}.Find(cwd)
}

// Find checks cwd and then each of its ancestors for the configuration file.
// It returns the first match, or ok == false once the root has been checked.
// The search stops at the first match even when the file fails to parse.
func (f Finder) Find(cwd string) (Result, bool, error) {
	if cwd == "" || !filepath.IsAbs(cwd) {
		return Result{}, false, fmt.Errorf("%w: %q", ErrInvalidArgument, cwd)
	}

	dir := filepath.Clean(cwd)
	for {
		res, ok, err := f.lookup(dir)
		if err != nil || ok {
			return res, ok, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Result{}, false, nil
		}
		dir = parent
	}
}

// FindIn checks dir alone for the configuration file, without ascending.
func (f Finder) FindIn(dir string) (Result, bool, error) {
	if dir == "" || !filepath.IsAbs(dir) {
		return Result{}, false, fmt.Errorf("%w: %q", ErrInvalidArgument, dir)
	}
	return f.lookup(filepath.Clean(dir))
}

func (f Finder) lookup(dir string) (Result, bool, error) {
	name := f.fileName()
	candidate := filepath.Join(dir, name)
	found, err := isFile(candidate)
	if err != nil {
		return Result{}, false, fmt.Errorf("stat %s: %w", candidate, err)
	}
	if !found {
		return Result{}, false, nil
	}

	cfg, err := load(candidate)
	if err != nil {
		return Result{}, false, err
	}
	return Result{Path: dir, Config: cfg, name: name}, true, nil
}

func (f Finder) fileName() string {
	if f.FileName == "" {
		return DefaultFileName
	}
	return f.FileName
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// A literal null decodes into a nil map without error.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &ParseError{Path: path, Err: errors.New("expected a JSON object, got null")}
	}

	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}
