package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0644))
	return path
}

func TestNew_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SHOTBRAIN_HOME", home)

	v, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "vault"), v.Dir())
	assert.DirExists(t, v.Dir())
}

func TestNew_InvalidDir(t *testing.T) {
	_, err := New("/invalid\x00path")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)
	src := writeImage(t, t.TempDir(), "Screenshot_1.PNG")

	dst, err := v.Store(context.Background(), "abc", src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(v.Dir(), "abc.png"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst+".tmp")
}

func TestStore_InvalidID(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)
	src := writeImage(t, t.TempDir(), "a.png")

	for _, id := range []string{"", "..", "../x", `a\b`} {
		_, err := v.Store(context.Background(), id, src)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
	}
}

func TestStore_MissingSource(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = v.Store(context.Background(), "abc", filepath.Join(t.TempDir(), "gone.png"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "copying to vault")
}

func TestRemove(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	dst, err := v.Store(ctx, "abc", writeImage(t, t.TempDir(), "a.jpg"))
	require.NoError(t, err)

	require.NoError(t, v.Remove(ctx, dst))
	assert.NoFileExists(t, dst)

	// Second removal of a missing file is not an error.
	assert.NoError(t, v.Remove(ctx, dst))
}

func TestRemove_OutsideVault(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)
	outside := writeImage(t, t.TempDir(), "keep.png")

	require.NoError(t, v.Remove(context.Background(), outside))
	assert.FileExists(t, outside)

	require.NoError(t, v.Remove(context.Background(), ""))
	require.NoError(t, v.Remove(context.Background(), v.Dir()))
	assert.DirExists(t, v.Dir())
}
