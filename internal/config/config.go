package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"

	"dxview/internal/constants"
	apperrors "dxview/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Window WindowConfig `json:"window"`
	Theme  ThemeConfig  `json:"theme"`
	Server ServerConfig `json:"server"`
	UI     UIConfig     `json:"ui"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings
type ThemeConfig struct {
	Dark     bool   `json:"dark"`
	FontSize int    `json:"fontSize"`
	FontPath string `json:"fontPath"`
}

// ServerConfig represents backend connection settings
type ServerConfig struct {
	BaseURL        string `json:"baseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	RecentDays     int    `json:"recentDays"`    // days window for /api/recent
	TokenFromRing  bool   `json:"tokenFromRing"` // read the API token from the OS keyring
}

// AutoRefreshConfig represents background refresh settings for the recent list
type AutoRefreshConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"intervalSeconds"`
}

// UIConfig represents UI-related settings
type UIConfig struct {
	ItemSpacing     int               `json:"itemSpacing"`
	ExcludePatterns []string          `json:"excludePatterns"` // doublestar globs hidden from the recent list
	AutoRefresh     AutoRefreshConfig `json:"autoRefresh"`
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
		return config, nil
	}

	// Parse config file into a temporary config
	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, apperrors.NewConfigError("load", "parsing config file", err)
	}

	// Merge file config with defaults
	mergeConfigs(config, &fileConfig)
	dropInvalidPatterns(config)
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.NewConfigError("save", "creating config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return apperrors.NewConfigError("save", "encoding config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return apperrors.NewConfigError("save", "writing config file", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Theme: ThemeConfig{
			Dark:     true,
			FontSize: 14,
			FontPath: "",
		},
		Server: ServerConfig{
			BaseURL:        constants.DefaultServerURL,
			TimeoutSeconds: constants.DefaultTimeoutSeconds,
			RecentDays:     constants.DefaultRecentDays,
			TokenFromRing:  false,
		},
		UI: UIConfig{
			ItemSpacing:     constants.DefaultItemSpacing,
			ExcludePatterns: make([]string, 0),
			AutoRefresh: AutoRefreshConfig{
				Enabled:         false,
				IntervalSeconds: int(constants.DefaultRefreshInterval.Seconds()),
			},
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\dxview\config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, constants.ApplicationName)

	case "darwin":
		// macOS: ~/Library/Application Support/dxview/config.json
		home, err := os.UserHomeDir()
		if err != nil {
			return constants.ConfigFileName
		}
		configDir = filepath.Join(home, "Library", "Application Support", constants.ApplicationName)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/dxview/config.json or ~/.config/dxview/config.json
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, constants.ApplicationName)
	}

	return filepath.Join(configDir, constants.ConfigFileName)
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	// Merge Window config
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	// Merge Theme config
	// Note: for bool values, we can't distinguish between false and unset, so we always use file value
	defaultConfig.Theme.Dark = fileConfig.Theme.Dark
	if fileConfig.Theme.FontSize != 0 {
		defaultConfig.Theme.FontSize = fileConfig.Theme.FontSize
	}
	if fileConfig.Theme.FontPath != "" {
		defaultConfig.Theme.FontPath = fileConfig.Theme.FontPath
	}

	// Merge Server config
	if fileConfig.Server.BaseURL != "" {
		defaultConfig.Server.BaseURL = fileConfig.Server.BaseURL
	}
	if fileConfig.Server.TimeoutSeconds != 0 {
		defaultConfig.Server.TimeoutSeconds = fileConfig.Server.TimeoutSeconds
	}
	if fileConfig.Server.RecentDays != 0 {
		defaultConfig.Server.RecentDays = fileConfig.Server.RecentDays
	}
	defaultConfig.Server.TokenFromRing = fileConfig.Server.TokenFromRing

	// The backend accepts 1..30 days; clamp rather than erroring out
	if defaultConfig.Server.RecentDays < constants.MinRecentDays {
		defaultConfig.Server.RecentDays = constants.MinRecentDays
	}
	if defaultConfig.Server.RecentDays > constants.MaxRecentDays {
		defaultConfig.Server.RecentDays = constants.MaxRecentDays
	}

	// Merge UI config
	if fileConfig.UI.ItemSpacing != 0 {
		defaultConfig.UI.ItemSpacing = fileConfig.UI.ItemSpacing
	}
	if fileConfig.UI.ExcludePatterns != nil {
		defaultConfig.UI.ExcludePatterns = fileConfig.UI.ExcludePatterns
	}
	defaultConfig.UI.AutoRefresh.Enabled = fileConfig.UI.AutoRefresh.Enabled
	if fileConfig.UI.AutoRefresh.IntervalSeconds != 0 {
		defaultConfig.UI.AutoRefresh.IntervalSeconds = fileConfig.UI.AutoRefresh.IntervalSeconds
	}
	if defaultConfig.UI.AutoRefresh.IntervalSeconds < int(constants.MinRefreshInterval.Seconds()) {
		defaultConfig.UI.AutoRefresh.IntervalSeconds = int(constants.MinRefreshInterval.Seconds())
	}
}

// dropInvalidPatterns removes exclude patterns doublestar cannot compile so
// a single typo doesn't disable filtering for the rest
func dropInvalidPatterns(config *Config) {
	valid := config.UI.ExcludePatterns[:0]
	for _, p := range config.UI.ExcludePatterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		} else {
			log.Printf("Ignoring invalid exclude pattern: %s", p)
		}
	}
	config.UI.ExcludePatterns = valid
}
