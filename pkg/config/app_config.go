// Package config handles cntr's configuration: build metadata, the xdg
// config directory, and the small set of user-overridable knobs (shell,
// helper binaries, extra PATH entries) that feed the marker payload (§4.3).
// Modeled directly on lazydocker's pkg/config/app_config.go.
package config

import (
	"os"

	"github.com/OpenPeeDeeP/xdg"
)

// AppConfig contains the base configuration fields required to run cntr,
// mirroring the teacher's AppConfig but trimmed of the TUI/compose-file
// knobs that don't apply to a one-shot attach CLI.
type AppConfig struct {
	Debug      bool
	Version    string
	Commit     string
	Name       string
	UserConfig *UserConfig
	ConfigDir  string
}

// NewAppConfig makes a new app config, creating the xdg config directory and
// loading (or defaulting) the user config the same way
// config.NewAppConfig does for lazydocker.
func NewAppConfig(name, version, commit string, debuggingFlag bool) (*AppConfig, error) {
	configDir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Name:       name,
		Version:    version,
		Commit:     commit,
		Debug:      debuggingFlag || os.Getenv("DEBUG") == "TRUE",
		UserConfig: userConfig,
		ConfigDir:  configDir,
	}, nil
}

func configDir(projectName string) string {
	if envConfigDir := os.Getenv("CONFIG_DIR"); envConfigDir != "" {
		return envConfigDir
	}
	return xdg.New("", projectName).ConfigHome()
}

func findOrCreateConfigDir(projectName string) (string, error) {
	folder := configDir(projectName)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}
	return folder, nil
}
