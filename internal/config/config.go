// Package config loads pgdesk settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appName = "pgdesk"

// Config holds all application configuration
type Config struct {
	General     GeneralConfig             `mapstructure:"general"`
	UI          UIConfig                  `mapstructure:"ui"`
	Workspace   WorkspaceConfig           `mapstructure:"workspace"`
	History     HistoryConfig             `mapstructure:"history"`
	Log         LogConfig                 `mapstructure:"log"`
	Performance PerformanceConfig         `mapstructure:"performance"`
	Connections []models.ConnectionConfig `mapstructure:"connections"`
}

type GeneralConfig struct {
	Language          string `mapstructure:"language"`
	DefaultConnection string `mapstructure:"default_connection"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`
	PanelWidthRatio int    `mapstructure:"panel_width_ratio"`
}

type WorkspaceConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type PerformanceConfig struct {
	ConnectionPoolSize  int `mapstructure:"connection_pool_size"`
	QueryTimeout        int `mapstructure:"query_timeout"`
	MetadataConcurrency int `mapstructure:"metadata_concurrency"`
}

// QueryTimeoutDuration returns the query timeout as a duration
func (p PerformanceConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(p.QueryTimeout) * time.Millisecond
}

var defaults = map[string]interface{}{
	"general.language":                 "en",
	"general.default_connection":       "",
	"ui.theme":                         "default",
	"ui.mouse_enabled":                 true,
	"ui.panel_width_ratio":             25,
	"workspace.page_size":              999,
	"history.path":                     "",
	"log.level":                        "info",
	"log.file":                         "",
	"performance.connection_pool_size": 5,
	"performance.query_timeout":        30000,
	"performance.metadata_concurrency": 4,
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	cfg := &Config{
		General:     GeneralConfig{Language: "en"},
		UI:          UIConfig{Theme: "default", MouseEnabled: true, PanelWidthRatio: 25},
		Workspace:   WorkspaceConfig{PageSize: 999},
		Log:         LogConfig{Level: "info"},
		Performance: PerformanceConfig{ConnectionPoolSize: 5, QueryTimeout: 30000, MetadataConcurrency: 4},
	}
	cfg.fillPaths()
	return cfg
}

// Load reads configuration from configFile, or from the default search path
// when it is empty. Flags, when given, override file and environment values.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("connection"); f != nil {
			if err := v.BindPFlag("general.default_connection", f); err != nil {
				return nil, fmt.Errorf("error binding flag: %w", err)
			}
		}
	}

	// A missing file is fine when it was not asked for explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	for i := range cfg.Connections {
		cfg.Connections[i] = cfg.Connections[i].Normalize()
	}
	cfg.fillPaths()

	return &cfg, nil
}

func (c *Config) fillPaths() {
	dir, err := GetConfigPath()
	if err != nil {
		dir = "."
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(dir, "consoles.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dir, "pgdesk.log")
	}
}

// FindConnection returns the connection with the given alias or id
func (c *Config) FindConnection(aliasOrID string) (models.ConnectionConfig, bool) {
	for _, conn := range c.Connections {
		if conn.Alias == aliasOrID || conn.ID == aliasOrID {
			return conn, true
		}
	}
	return models.ConnectionConfig{}, false
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}
