package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not real audio"), 0644))
	return path
}

func TestScanner_FiltersAndSortsByTitle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.mp3")
	writeFile(t, dir, "sub/Apple.flac")
	writeFile(t, dir, "cover.jpg")
	writeFile(t, dir, "notes.txt")

	tracks, err := NewScanner(dir).Scan()

	require.NoError(t, err)
	require.Len(t, tracks, 2, "Only audio files should be listed")
	assert.Equal(t, "Apple", tracks[0].Title)
	assert.Equal(t, "zebra", tracks[1].Title)
}

func TestScanner_UntaggedFileFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "03 - Daydream.ogg")

	tracks, err := NewScanner(dir).Scan()

	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, path, tracks[0].Path)
	assert.Equal(t, "03 - Daydream", tracks[0].Title)
	assert.Empty(t, tracks[0].Artist)
}

func TestScanner_MissingRootFails(t *testing.T) {
	tracks, err := NewScanner(filepath.Join(t.TempDir(), "nope")).Scan()

	// WalkDir reports the root error through the callback, which skips it.
	require.NoError(t, err)
	assert.Empty(t, tracks)
}
