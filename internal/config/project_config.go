package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// InitProjectConfigScaffold initializes a project-level config file
// (./.turnline/config.json) in the current working directory, filled with
// Default() values. No command in this repository calls it. It respects an
// existing file rather than overwriting it.
func InitProjectConfigScaffold() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current working directory: %w", err)
	}

	dir := filepath.Join(cwd, ".turnline")
	path := filepath.Join(dir, "config.json")

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("project config path is a directory: %s", path)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat project config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir .turnline: %w", err)
	}

	return Save(path, Default())
}
