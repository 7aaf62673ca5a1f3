package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	tcases := []struct {
		name    string
		allowed bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"scan.JpEg", true},
		{"anim.gif", true},
		{"archive.tar.jpg", true},
		{"payload.exe", false},
		{"image.png.exe", false},
		{"png", false},
		{"", false},
		{"trailingdot.", false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, AllowedFile(tc.name))
		})
	}
}

func TestSecureFilename(t *testing.T) {
	tcases := []struct {
		in   string
		want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`..\..\windows\win.ini`, "windows_win.ini"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"photo.PNG", "photo.PNG"},
		{"  spaced   out .jpg ", "spaced_out_.jpg"},
		{"semi;colon$.gif", "semicolon.gif"},
		{"...", ""},
		{"日本語", ""},
	}

	for _, tc := range tcases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SecureFilename(tc.in))
		})
	}
}

func TestStore_SaveOverwriteRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(dir)
	require.NoError(t, err)

	url, err := store.Save("cat.png", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "cat.png")), url)

	// last write wins
	_, err = store.Save("cat.png", strings.NewReader("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	files, err := store.List()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "cat.png", files[0].Name)
	assert.Equal(t, url, files[0].Path)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, "cat.png"))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, store.Remove(url))
}

func TestStore_RejectsUnsafeNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidFilename)

	_, err = store.Save("../escape.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidFilename)

	assert.ErrorIs(t, store.Remove("/etc/passwd"), ErrOutsideDir)
}
