package am

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/shapegen/errors"
)

// WriteProjectConfig writes cfg as shapegen.toml into dir and returns its
// path. An existing file is kept as a rotating backup (.back1..3) when
// overwrite is set; without overwrite an existing file is an error.
func WriteProjectConfig(dir string, cfg *Config, overwrite bool) (string, error) {
	configPath := filepath.Join(dir, ProjectConfigName)

	if _, err := os.Stat(configPath); err == nil {
		if !overwrite {
			return "", errors.WithHint(
				errors.Newf("%s already exists", configPath),
				"pass --force to replace it (the old file is kept as .back1)")
		}
		if err := createBackup(configPath); err != nil {
			return "", errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", configPath)
	}

	return configPath, nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
