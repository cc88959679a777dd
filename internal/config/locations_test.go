package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGoogleDriveFolder(t *testing.T) {
	home := t.TempDir()
	assert.Empty(t, FindGoogleDriveFolder(home))

	drive := filepath.Join(home, "GoogleDrive")
	require.NoError(t, os.Mkdir(drive, 0755))
	assert.Equal(t, drive, FindGoogleDriveFolder(home))

	preferred := filepath.Join(home, "Google Drive")
	require.NoError(t, os.Mkdir(preferred, 0755))
	assert.Equal(t, preferred, FindGoogleDriveFolder(home))
}

func TestFindGoogleDriveFolderIgnoresFiles(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "GDrive"), nil, 0644))
	assert.Empty(t, FindGoogleDriveFolder(home))
}

func TestSuggestStoreDirPrefersDrive(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	assert.Equal(t, home, SuggestStoreDir())

	docs := filepath.Join(home, "Documents")
	require.NoError(t, os.Mkdir(docs, 0755))
	assert.Equal(t, docs, SuggestStoreDir())

	driveDocs := filepath.Join(home, "Google Drive", "Documents")
	require.NoError(t, os.MkdirAll(driveDocs, 0755))
	assert.Equal(t, driveDocs, SuggestStoreDir())
}

func TestSuggestDeviceName(t *testing.T) {
	name := SuggestDeviceName()
	assert.NotEmpty(t, name)
	assert.LessOrEqual(t, len([]rune(name)), 30)
}

func TestStorePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "clockbuster_desktop.db"), StorePath("/data", "desktop"))
}
