package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadSearchOrder(t *testing.T) {
	base, mod := t.TempDir(), t.TempDir()
	write(t, filepath.Join(base, "sounds", "move.wav"), "base")
	write(t, filepath.Join(mod, "sounds", "move.wav"), "mod")
	write(t, filepath.Join(base, "only.txt"), "only")

	m := NewManager()
	m.AddDir(base)
	m.AddDir(mod)

	data, err := m.Load(filepath.Join("sounds", "move.wav"))
	require.NoError(t, err)
	assert.Equal(t, "mod", string(data), "later directories win")

	data, err = m.Load("only.txt")
	require.NoError(t, err)
	assert.Equal(t, "only", string(data))

	abs := filepath.Join(base, "only.txt")
	data, err = m.Load(abs)
	require.NoError(t, err)
	assert.Equal(t, "only", string(data))

	_, err = m.Load("missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCachesUntilFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.xml")
	write(t, path, "v1")

	m := NewManager()
	m.AddDir(dir)

	_, err := m.Load("scene.xml")
	require.NoError(t, err)
	data, err := m.Load("scene.xml")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	write(t, path, "version 2")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	data, err = m.Load("scene.xml")
	require.NoError(t, err)
	assert.Equal(t, "version 2", string(data))

	m.Close()
	hits, misses = m.Stats()
	assert.Zero(t, hits+misses)
	assert.Zero(t, m.cache.Len())
}

func TestDirectoriesAreNotFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "textures"), 0755))

	m := NewManager()
	m.AddDir(dir)
	_, err := m.Load("textures")
	assert.ErrorIs(t, err, ErrNotFound)
}
