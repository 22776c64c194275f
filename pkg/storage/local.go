package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localDisk stores files on the local filesystem under a root directory.
type localDisk struct {
	root    string
	baseURL string
}

// NewLocal returns a Disk rooted at dir. baseURL is prepended by URL().
func NewLocal(dir, baseURL string) (Disk, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &localDisk{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// abs joins path onto the root and rejects traversal outside it.
func (d *localDisk) abs(path string) (string, error) {
	full := filepath.Join(d.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, d.root) {
		return "", fmt.Errorf("storage: path escapes root: %s", path)
	}
	return full, nil
}

func (d *localDisk) Put(path string, content []byte) error {
	full, err := d.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	return os.WriteFile(full, content, 0o644)
}

func (d *localDisk) PutStream(path string, r io.Reader) error {
	full, err := d.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage: write: %w", err)
	}
	return nil
}

func (d *localDisk) Get(path string) ([]byte, error) {
	full, err := d.abs(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return b, nil
}

func (d *localDisk) GetStream(path string) (io.ReadCloser, error) {
	full, err := d.abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return f, nil
}

func (d *localDisk) Exists(path string) bool {
	full, err := d.abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func (d *localDisk) Delete(path string) error {
	full, err := d.abs(path)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (d *localDisk) Files(directory string) ([]string, error) {
	full, err := d.abs(directory)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", directory, err)
	}
	var out []string
	prefix := strings.Trim(directory, "/")
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if prefix == "" {
			out = append(out, e.Name())
		} else {
			out = append(out, prefix+"/"+e.Name())
		}
	}
	return out, nil
}
