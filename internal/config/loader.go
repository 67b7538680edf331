package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in every search directory.
const ConfigFile = "jaimp.yaml"

// Load loads JAIMP configuration.
// Search order: customPath -> ~/.jaimp/configs/jaimp.yaml -> ./configs/jaimp.yaml -> embedded default.
// Files are decoded over the built-in defaults, so partial files are fine.
// The second return value names the source that was used.
func Load(customPath string) (JaimpConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return JaimpConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return JaimpConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or broken files fall through to the next source.
	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultJaimpYAML)
	if err != nil {
		return DefaultJaimpConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (JaimpConfig, error) {
	cfg := DefaultJaimpConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JaimpConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return JaimpConfig{}, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg JaimpConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// HomeDir returns ~/.jaimp, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jaimp")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
