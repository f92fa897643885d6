// Package file keeps private copies of sensitive screenshots on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	configfile "github.com/custodia-labs/shotbrain/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure Vault implements the interface.
var _ driven.ImageVault = (*Vault)(nil)

// Vault copies images into a private directory.
type Vault struct {
	dir string
}

// New creates a vault rooted at dir. If dir is empty, uses ~/.shotbrain/vault.
func New(dir string) (*Vault, error) {
	if dir == "" {
		home, err := configfile.HomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, "vault")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}

	return &Vault{dir: abs}, nil
}

// Dir returns the vault directory.
func (v *Vault) Dir() string {
	return v.dir
}

// Store copies srcPath to <dir>/<id><ext> and returns the new path.
func (v *Vault) Store(ctx context.Context, id, srcPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("vault id %q: %w", id, domain.ErrInvalidInput)
	}

	dst := filepath.Join(v.dir, id+strings.ToLower(filepath.Ext(srcPath)))
	if err := copyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("copying to vault: %w", err)
	}
	return dst, nil
}

// Remove deletes the vault copy at path. Paths outside the vault and
// missing files are ignored.
func (v *Vault) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.contains(path) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing from vault: %w", err)
	}
	return nil
}

func (v *Vault) contains(path string) bool {
	if path == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(v.dir, abs)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..")
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}
