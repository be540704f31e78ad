package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chatsource/pkg/models"
)

// Store points at one platform's on-disk message store. Paths may be
// home-relative (~/...); expansion happens in the reader at connect time.
type Store struct {
	Path string `yaml:"path"`
}

type Config struct {
	Stores struct {
		IMessage Store `yaml:"imessage"`
		WhatsApp Store `yaml:"whatsapp"`
		Signal   Store `yaml:"signal"`
	} `yaml:"stores"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration for a stock macOS install.
func Default() *Config {
	var cfg Config
	cfg.Stores.IMessage.Path = "~/Library/Messages/chat.db"
	cfg.Stores.WhatsApp.Path = "~/Library/Group Containers/group.net.whatsapp.WhatsApp.shared/ChatStorage.sqlite"
	cfg.Stores.Signal.Path = "~/Library/Application Support/Signal/sql/db.sqlite"
	cfg.Logging.Level = "info"
	return &cfg
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadEnvOverrides applies environment overrides onto cfg and reports
// whether any were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false
	if v := os.Getenv("CHATSOURCE_IMESSAGE_DB"); v != "" {
		envUsed = true
		cfg.Stores.IMessage.Path = v
	}
	if v := os.Getenv("CHATSOURCE_WHATSAPP_DB"); v != "" {
		envUsed = true
		cfg.Stores.WhatsApp.Path = v
	}
	if v := os.Getenv("CHATSOURCE_SIGNAL_DB"); v != "" {
		envUsed = true
		cfg.Stores.Signal.Path = v
	}
	if v := os.Getenv("CHATSOURCE_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	return envUsed
}

// StorePath returns the configured store path for a platform.
func (c *Config) StorePath(p models.Platform) (string, error) {
	switch p {
	case models.PlatformIMessage:
		return c.Stores.IMessage.Path, nil
	case models.PlatformWhatsApp:
		return c.Stores.WhatsApp.Path, nil
	case models.PlatformSignal:
		return c.Stores.Signal.Path, nil
	default:
		return "", fmt.Errorf("unknown platform: %s", p)
	}
}
