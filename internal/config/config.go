package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	LiveKit   LiveKitConfig   `mapstructure:"livekit"`
	Stats     StatsConfig     `mapstructure:"stats"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Host      string `mapstructure:"host"`
	StaticDir string `mapstructure:"static_dir"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LiveKitConfig holds the credentials used to mint room access tokens.
// The relay never talks to LiveKit itself; clients take the token there.
type LiveKitConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type StatsConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type WebSocketConfig struct {
	SendBufferSize int   `mapstructure:"send_buffer_size"`
	MaxMessageSize int64 `mapstructure:"max_message_size"`
}

func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.static_dir", "public")
	viper.SetDefault("cors.allow_origins", []string{"http://localhost:3000"})
	viper.SetDefault("livekit.api_key", "")
	viper.SetDefault("livekit.api_secret", "")
	viper.SetDefault("livekit.token_ttl", 6*time.Hour)
	viper.SetDefault("stats.interval", 30*time.Second)
	viper.SetDefault("websocket.send_buffer_size", 256)
	viper.SetDefault("websocket.max_message_size", 64*1024)

	// Configuration file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/collab-relay/")

	// Environment variable support
	viper.AutomaticEnv()

	// Environment variable mappings
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.static_dir", "STATIC_DIR")
	viper.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
	viper.BindEnv("livekit.api_key", "LIVEKIT_API_KEY")
	viper.BindEnv("livekit.api_secret", "LIVEKIT_API_SECRET")
	viper.BindEnv("livekit.token_ttl", "LIVEKIT_TOKEN_TTL")
	viper.BindEnv("stats.interval", "STATS_INTERVAL")
	viper.BindEnv("websocket.send_buffer_size", "WS_SEND_BUFFER_SIZE")
	viper.BindEnv("websocket.max_message_size", "WS_MAX_MESSAGE_SIZE")

	// Read configuration file (optional - will use defaults/env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
