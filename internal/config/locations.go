package config

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/JRDK92/Clockbuster/internal/parser"
)

// googleDriveNames are the folder names the Drive desktop client has used in the home dir
var googleDriveNames = []string{"Google Drive", "GoogleDrive", "GDrive"}

// FindGoogleDriveFolder returns the Drive folder under home, or "" if there is none
func FindGoogleDriveFolder(home string) string {
	for _, name := range googleDriveNames {
		path := filepath.Join(home, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// SuggestStoreDir picks where a new store should live: Drive's Documents folder so the
// file syncs between devices, else ~/Documents, else the home directory
func SuggestStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	if drive := FindGoogleDriveFolder(home); drive != "" {
		docs := filepath.Join(drive, "Documents")
		if info, err := os.Stat(docs); err == nil && info.IsDir() {
			return docs
		}
	}

	docs := filepath.Join(home, "Documents")
	if info, err := os.Stat(docs); err == nil && info.IsDir() {
		return docs
	}
	return home
}

// SuggestDeviceName returns "user-host" for the current machine
func SuggestDeviceName() string {
	username := os.Getenv("USER")
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = filepath.Base(u.Username) // DOMAIN\user on Windows
	}
	host, _ := os.Hostname()

	if name := parser.DefaultDeviceName(username, host); name != "" {
		return name
	}
	return "device"
}

// StorePath is the conventional store location for device inside dir
func StorePath(dir, device string) string {
	return filepath.Join(dir, parser.StoreFileName(device))
}
