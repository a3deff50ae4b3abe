/*
Package config manages TOML config for lstrings.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/lstrings/internal/utils"
	"github.com/bastiangx/lstrings/pkg/modelfile"
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/bastiangx/lstrings/pkg/report"
	"github.com/charmbracelet/log"
)

// AppDir is the directory name used under the user config dir.
const AppDir = "lstrings"

// Config holds the entire config structure
type Config struct {
	Scan    ScanConfig    `toml:"scan"`
	Model   ModelConfig   `toml:"model"`
	Output  OutputConfig  `toml:"output"`
	Runtime RuntimeConfig `toml:"runtime"`
}

// ScanConfig has string detection and ordering options.
type ScanConfig struct {
	MinLength int    `toml:"min_length"`
	Sort      string `toml:"sort"`
	Reverse   bool   `toml:"reverse"`
	Format    string `toml:"format"`
	Unique    bool   `toml:"unique"`
}

// ModelConfig points at the reference English model.
type ModelConfig struct {
	Path string `toml:"path"`
}

// OutputConfig holds output options.
type OutputConfig struct {
	Encoding string `toml:"encoding"`
	Filename bool   `toml:"filename"`
}

// RuntimeConfig holds process level options.
type RuntimeConfig struct {
	Jobs int `toml:"jobs"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MinLength: 4,
			Sort:      "address",
			Reverse:   false,
			Format:    "n",
			Unique:    false,
		},
		Model: ModelConfig{
			Path: modelfile.DefaultName,
		},
		Output: OutputConfig{
			Encoding: "text",
			Filename: false,
		},
		Runtime: RuntimeConfig{
			Jobs: 0,
		},
	}
}

// Validate checks that every selector names a supported value.
func (c *Config) Validate() error {
	if c.Scan.MinLength < 0 {
		return fmt.Errorf("invalid min_length %d: must not be negative", c.Scan.MinLength)
	}
	if _, err := rank.ParseMode(c.Scan.Sort); err != nil {
		return err
	}
	if _, err := report.ParseOffsetFormat(c.Scan.Format); err != nil {
		return err
	}
	if _, err := report.ParseEncoding(c.Output.Encoding); err != nil {
		return err
	}
	if c.Runtime.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: must not be negative", c.Runtime.Jobs)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME or ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	base := filepath.Join(homeDir, ".config")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		base = xdg
	}
	primaryPath := filepath.Join(base, AppDir)
	if utils.FileExists(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", AppDir)
	if utils.FileExists(macOSPath) {
		return macOSPath, nil
	}
	return primaryPath, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/lstrings/config.toml, when it exists
// 3. Builtin defaults
//
// The returned path is empty when builtin defaults are used.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr != nil {
			return nil, "", fmt.Errorf("config file %s: %w", customConfigPath, statErr)
		}
		config, err := LoadConfig(customConfigPath)
		if err != nil {
			return nil, "", err
		}
		log.Debugf("Loaded config from custom path: %s", customConfigPath)
		return config, customConfigPath, nil
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Debugf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	if !utils.FileExists(defaultPath) {
		return DefaultConfig(), "", nil
	}

	config, err := LoadConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file at %s: %w", configPath, err)
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever sections still decode on their own.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "scan"); ok {
		extractScanConfig(section, &config.Scan)
	}
	if section, ok := utils.ExtractSection(tempConfig, "model"); ok {
		extractModelConfig(section, &config.Model)
	}
	if section, ok := utils.ExtractSection(tempConfig, "output"); ok {
		extractOutputConfig(section, &config.Output)
	}
	if section, ok := utils.ExtractSection(tempConfig, "runtime"); ok {
		extractRuntimeConfig(section, &config.Runtime)
	}
	return config, nil
}

func extractScanConfig(data map[string]any, scan *ScanConfig) {
	if val, ok := utils.ExtractInt64(data, "min_length"); ok {
		scan.MinLength = val
	}
	if val, ok := utils.ExtractString(data, "sort"); ok {
		scan.Sort = val
	}
	if val, ok := utils.ExtractBool(data, "reverse"); ok {
		scan.Reverse = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		scan.Format = val
	}
	if val, ok := utils.ExtractBool(data, "unique"); ok {
		scan.Unique = val
	}
}

func extractModelConfig(data map[string]any, model *ModelConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		model.Path = val
	}
}

func extractOutputConfig(data map[string]any, output *OutputConfig) {
	if val, ok := utils.ExtractString(data, "encoding"); ok {
		output.Encoding = val
	}
	if val, ok := utils.ExtractBool(data, "filename"); ok {
		output.Filename = val
	}
}

func extractRuntimeConfig(data map[string]any, runtime *RuntimeConfig) {
	if val, ok := utils.ExtractInt64(data, "jobs"); ok {
		runtime.Jobs = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
