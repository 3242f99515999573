// FILE: eventweaver/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

func defaults() *Config {
	return &Config{
		// Sub-tables must be non-nil here so their config paths
		// register; a nil pointer would leave [heuristics.burst] and
		// friends unscannable.
		Heuristics: HeuristicsConfig{
			Gap:                &GapThresholds{},
			Burst:              &BurstThresholds{},
			SeverityRegression: &SeverityThresholds{},
		},
		Logging: DefaultLogConfig(),
	}
}

// Load reads the TOML file at path, layered under WEAVE_* environment
// overrides, and returns a validated configuration. Relative source
// paths resolve against the config file's directory.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("WEAVE_").
		WithFile(path).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	baseDir := filepath.Dir(path)
	for i := range finalConfig.Sources {
		finalConfig.Sources[i].normalize(finalConfig.Defaults)
		finalConfig.Sources[i].Path = resolvePath(finalConfig.Sources[i].Path, baseDir)
	}
	if finalConfig.Logging == nil {
		finalConfig.Logging = DefaultLogConfig()
	}

	return finalConfig, finalConfig.validate()
}

func resolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(baseDir, path)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	return "WEAVE_" + env
}

// ConfigPath picks the config file location: the --config flag wins,
// then WEAVE_CONFIG_FILE, then WEAVE_CONFIG_DIR, then the user
// config directory.
func ConfigPath(flag string) string {
	if flag != "" {
		return flag
	}

	if configFile := os.Getenv("WEAVE_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("WEAVE_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("WEAVE_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "eventweaver.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "eventweaver.toml")
	}

	return "eventweaver.toml"
}
