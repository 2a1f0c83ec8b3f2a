package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/media/", 1024)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "profile_pictures", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/profile_pictures/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(root, strings.TrimPrefix(url, "/media/"))
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", 1024)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "profile_pictures", strings.NewReader("%PDF-1.4\n..."))
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestLocalStore_RejectsOversizedFiles(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", 8)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "profile_pictures", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestLocalStore_DeleteIgnoresForeignPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", 8)
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/a.png"))
	assert.NoError(t, store.Delete(context.Background(), "/media/../etc/passwd"))
}

func TestSaveProfilePicture_MapsRejectionsToFieldErrors(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", 1024)
	require.NoError(t, err)

	_, err = SaveProfilePicture(context.Background(), store, strings.NewReader(""))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The submitted file is empty."}, appErr.Fields["profile_picture"])

	_, err = SaveProfilePicture(context.Background(), store, strings.NewReader("plain text"))
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields["profile_picture"][0], "Upload a valid image")

	url, err := SaveProfilePicture(context.Background(), store, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/profile_pictures/"))
}
