package config

import (
	"os"
	"path/filepath"

	yaml "github.com/jesseduffield/yaml"
)

// UserConfig holds the handful of options an operator can override in
// config.yml, following the teacher's "small struct, yaml tags, sensible
// zero-value defaults" shape (pkg/config/user_config.go) rather than its
// full GUI theme/command-template surface, which has no analogue here.
type UserConfig struct {
	// Shell is the command execed inside the container once the overlay is
	// mounted and namespaces are joined, unless overridden on the command
	// line. Defaults to "/bin/sh".
	Shell string `yaml:"shell,omitempty"`

	// HelperBinaries is copied into the marker payload's bin/ directory
	// (§4.3) and prepended to PATH inside the container via /.cntr/bin.
	HelperBinaries []string `yaml:"helperBinaries,omitempty"`

	// ExtraPathDirs are additional host directories prepended to PATH
	// alongside /.cntr/bin, for debuggers installed outside the usual
	// locations.
	ExtraPathDirs []string `yaml:"extraPathDirs,omitempty"`

	// LockTimeoutSeconds bounds how long an attach waits to acquire
	// /var/lib/cntr/.lock before giving up with AlreadyAttached.
	LockTimeoutSeconds int `yaml:"lockTimeoutSeconds,omitempty"`

	// GraceSeconds bounds how long the parent waits after sending SIGTERM to
	// the child before escalating to SIGKILL (§5 Cancellation).
	GraceSeconds int `yaml:"graceSeconds,omitempty"`
}

// GetDefaultConfig returns cntr's baked-in defaults, the same role
// config.GetDefaultConfig() plays for lazydocker.
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Shell:              "/bin/sh",
		HelperBinaries:     nil,
		ExtraPathDirs:      []string{"/.cntr/bin"},
		LockTimeoutSeconds: 0,
		GraceSeconds:       5,
	}
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	base := GetDefaultConfig()
	return loadUserConfig(configDir, &base)
}

func loadUserConfig(configDir string, base *UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		file, err := os.Create(fileName)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, base); err != nil {
		return nil, err
	}

	return base, nil
}
