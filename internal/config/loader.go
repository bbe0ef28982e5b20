package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing default file is
// not an error.
const DefaultPath = "./config.yaml"

// Load reads the YAML file named by CONFIG_PATH (or DefaultPath), applies
// environment overrides and env-default tags, and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom is Load with an explicit file path. An explicit path that does
// not exist is an error; an empty path falls back to DefaultPath.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	file, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if file != "" {
		err = cleanenv.ReadConfig(file, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(file), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolvePath returns the file to read, or "" for environment-only loading.
func resolvePath(path string) (string, error) {
	if path == "" {
		if _, err := os.Stat(DefaultPath); errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return DefaultPath, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file %s: %w", path, err)
	}
	return path, nil
}

func describe(file string) string {
	if file == "" {
		return "env"
	}
	return file
}
