// Package iofs prepares directories and files bikeq needs at startup.
package iofs

import (
	_ "embed"
	"os"

	"github.com/bikeq/bikeq/pkg/config"
)

// ConfigYAML is the template written on the first run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the config template unless a config file
// already exists. It reports if the file was created.
func EnsureConfigFile(homeDir string) (bool, error) {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0600); err != nil {
		return false, CopyFileError(configPath, err)
	}

	return true, nil
}

// ReadFile reads a file with a user-facing error on failure.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}
