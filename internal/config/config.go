package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vancomm/minefield/internal/minefield"
)

type Config struct {
	Development bool            `mapstructure:"development"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Game        GameConfig      `mapstructure:"game"`
	WebSocket   WebSocketConfig `mapstructure:"websocket"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	BasePath      string        `mapstructure:"base_path"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	// AllowedOrigins lists CORS origins; "*" or an empty list allows any.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	File   string `mapstructure:"file"`
}

type GameConfig struct {
	Preset string `mapstructure:"preset"`
	// Seed makes mine placement reproducible; 0 means random.
	Seed uint64 `mapstructure:"seed"`
}

type WebSocketConfig struct {
	ReadBufferSize  int `mapstructure:"read_buffer_size"`
	WriteBufferSize int `mapstructure:"write_buffer_size"`
}

const envPrefix = "MINES"

func setDefaults(v *viper.Viper) {
	v.SetDefault("development", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.session_ttl", 24*time.Hour)
	v.SetDefault("server.sweep_interval", 10*time.Minute)
	v.SetDefault("server.shutdown_grace", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("game.preset", minefield.Beginner.String())
	v.SetDefault("game.seed", 0)

	v.SetDefault("websocket.read_buffer_size", 1024)
	v.SetDefault("websocket.write_buffer_size", 1024)
}

// Load reads defaults, then the optional config file at path, then MINES_*
// environment variables. An empty path looks for config.yaml in the working
// directory and /etc/minefield, and is fine if none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/minefield")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Game.ParsePreset(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must be set")
	}
	if c.Server.SessionTTL <= 0 || c.Server.SweepInterval <= 0 {
		return errors.New("server.session_ttl and server.sweep_interval must be positive")
	}
	return nil
}

func (g GameConfig) ParsePreset() (minefield.Preset, error) {
	return minefield.ParsePreset(g.Preset)
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"development":     c.Development,
		"addr":            c.Server.Addr,
		"base_path":       c.Server.BasePath,
		"session_ttl":     c.Server.SessionTTL.String(),
		"sweep_interval":  c.Server.SweepInterval.String(),
		"allowed_origins": c.Server.AllowedOrigins,
		"log_level":       c.Log.Level,
		"log_format":      c.Log.Format,
		"log_file":        c.Log.File,
		"game_preset":     c.Game.Preset,
		"game_seed":       c.Game.Seed,
		"ws_read_buffer":  c.WebSocket.ReadBufferSize,
		"ws_write_buffer": c.WebSocket.WriteBufferSize,
	}
}
