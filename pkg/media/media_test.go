package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	a := NewKey("Holiday.MP4")
	b := NewKey("Holiday.MP4")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".mp4"))
	assert.Len(t, NewKey("noext"), 36)
}

func TestFSStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewFSStore(dir, "/uploads")

	ref, err := store.Save("abc.mp4", strings.NewReader("video bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.mp4", ref)

	data, err := os.ReadFile(filepath.Join(dir, "abc.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))

	require.NoError(t, store.Remove("abc.mp4"))
	_, err = os.Stat(filepath.Join(dir, "abc.mp4"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove("abc.mp4"), "removing twice is fine")
}

func TestFSStoreKeepsKeysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, "/uploads")

	ref, err := store.Save("../../escape.mp4", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.mp4", ref)
	_, err = os.Stat(filepath.Join(dir, "escape.mp4"))
	assert.NoError(t, err)
}
