package identity

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvVarStore overrides the store location.
const EnvVarStore = "GITID_STORE"

// AppDirName is the per-user directory holding the store, hooks and config.
const AppDirName = "gitid"

// StoreFileName is the store's file name inside AppDir.
const StoreFileName = "identities"

// AppDir returns the per-user application directory.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// StorePath returns the store file inside appDir.
func StorePath(appDir string) string {
	return filepath.Join(appDir, StoreFileName)
}
