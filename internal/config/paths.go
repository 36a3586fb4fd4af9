// ABOUTME: Standard filesystem paths for kilo-go configuration
// ABOUTME: Follows XDG: $XDG_CONFIG_HOME/kilo-go, falling back to ~/.config/kilo-go

package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName     = "kilo-go"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory.
func GlobalDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// GlobalConfigFile returns the path to the global settings file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}
