package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	GitHub struct {
		Token    string `koanf:"token"`
		Username string `koanf:"username"`
	} `koanf:"github"`

	Telegram struct {
		BotToken string `koanf:"bot_token"`
		ChatID   string `koanf:"chat_id"`
	} `koanf:"telegram"`

	Safety struct {
		MaxActionsPerRun int     `koanf:"max_actions_per_run"`
		DelayMinSeconds  float64 `koanf:"delay_min_seconds"`
		DelayMaxSeconds  float64 `koanf:"delay_max_seconds"`
	} `koanf:"safety"`

	General struct {
		DataDir string `koanf:"data_dir"`
	} `koanf:"general"`
}

// bareEnvVars maps the environment variable names used by cron/CI deployments
// to config keys. They take precedence over file and FOLLOWSYNC_* values.
var bareEnvVars = map[string]string{
	"GITHUB_TOKEN":       "github.token",
	"GITHUB_USERNAME":    "github.username",
	"TELEGRAM_BOT_TOKEN": "telegram.bot_token",
	"TELEGRAM_CHAT_ID":   "telegram.chat_id",
}

// LoadConfig loads the configuration from defaults, an optional TOML file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"github.username":            "TheLastKhan",
		"safety.max_actions_per_run": 10,
		"safety.delay_min_seconds":   2.0,
		"safety.delay_max_seconds":   5.0,
		"general.data_dir":           "fsdata",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations - prioritize the data directory
		// for containerized environments
		defaultPaths := []string{"./fsdata/followsync.toml", "./followsync.toml", "$HOME/.followsync.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix FOLLOWSYNC_. Only the first
	// underscore separates section from key, so FOLLOWSYNC_SAFETY_MAX_ACTIONS_PER_RUN
	// maps to safety.max_actions_per_run.
	k.Load(env.Provider("FOLLOWSYNC_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "FOLLOWSYNC_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil)

	// The bare names win so that existing cron setups keep working unchanged.
	overrides := map[string]interface{}{}
	for envName, key := range bareEnvVars {
		if v := os.Getenv(envName); v != "" {
			overrides[key] = v
		}
	}
	if len(overrides) > 0 {
		k.Load(confmap.Provider(overrides, "."), nil)
	}

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create sample configuration
	sampleConfig := `# followsync configuration

[github]
token = "your-github-pat"
username = "your-login"

[telegram]
# Leave empty to disable notifications
bot_token = ""
chat_id = ""

[safety]
max_actions_per_run = 10
delay_min_seconds = 2.0
delay_max_seconds = 5.0

[general]
data_dir = "fsdata"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("github token is required (set GITHUB_TOKEN or github.token)")
	}

	if config.GitHub.Username == "" {
		return fmt.Errorf("github username is required")
	}

	if config.Safety.MaxActionsPerRun <= 0 {
		return fmt.Errorf("max_actions_per_run must be positive")
	}

	if config.Safety.DelayMinSeconds < 0 {
		return fmt.Errorf("delay_min_seconds must not be negative")
	}

	if config.Safety.DelayMaxSeconds < config.Safety.DelayMinSeconds {
		return fmt.Errorf("delay_max_seconds must be >= delay_min_seconds")
	}

	return nil
}

// WhitelistPath returns the allow-list file location under the data directory.
func (c *Config) WhitelistPath() string {
	return filepath.Join(c.General.DataDir, "whitelist.txt")
}

// BlacklistPath returns the deny-list file location under the data directory.
func (c *Config) BlacklistPath() string {
	return filepath.Join(c.General.DataDir, "blacklist.txt")
}

// HistoryPath returns the history document location under the data directory.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.General.DataDir, "history.json")
}
