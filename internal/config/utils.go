package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/keepnote/internal/constants"
)

const template = `# Keepnote Configuration File

# Notes directory path
# Default:
# notePath = %q

# Editor command, arguments allowed
# Default:
# editor = "$EDITOR or vim"

# What the delete key does: "trash" moves notes to <notePath>/.trash, "remove" deletes them
# deleteMode = "trash"

# [search]
# initialMode = "content"   # or "files"
# pager = "bat"             # or "builtin"
# previewContext = 5        # lines kept above a highlighted match
# shell = "/bin/sh"

# [keys]
# toggle = "tab"
# delete = "ctrl-d"
# copy = "ctrl-y"

# [[hooks.postCreate]]
# exec = "git"
# args = ["-C", "{notes}", "add", "{file}"]
`

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// GetEnvPath returns the optional dotenv file next to the default config.
func GetEnvPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.EnvFile)
}

// EnsureConfigExists writes the commented template to path if no file is
// there yet.
func EnsureConfigExists(path, homeDir string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ConfigInitError{msg: fmt.Sprintf("failed to create config directory: %v", err)}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		content := fmt.Sprintf(template, filepath.Join(homeDir, "notes"))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return &ConfigInitError{msg: fmt.Sprintf("failed to create config file: %v", err)}
		}
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}
