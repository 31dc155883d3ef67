package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Storage struct {
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Mode            string        `mapstructure:"mode"`
	Port            int           `mapstructure:"port"`
	ReadLimit       int64         `mapstructure:"read_limit"`
	SendBuffer      int           `mapstructure:"send_buffer"`
	FrameRateLimit  int           `mapstructure:"frame_rate_limit"`
	FrameRateWindow time.Duration `mapstructure:"frame_rate_window"`
	Secret          string        `mapstructure:"secret"`
	Storage         Storage       `mapstructure:"storage"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8000)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("send_buffer", 32)
	v.SetDefault("frame_rate_limit", 0)
	v.SetDefault("frame_rate_window", "1m")
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.dsn", "codesync.db")
	v.SetDefault("storage.addr", "localhost:6379")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
