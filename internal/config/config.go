package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type OTPConfig struct {
	CodeLength     int `yaml:"code_length"`
	TTLSeconds     int `yaml:"ttl_seconds"`
	LinkTTLMinutes int `yaml:"link_ttl_minutes"`
}

type LimiterConfig struct {
	Backend       string `yaml:"backend"` // "memory" (по умолчанию) или "redis"
	RedisAddr     string `yaml:"redis_addr"`
	MaxAttempts   int    `yaml:"max_attempts"`
	WindowMinutes int    `yaml:"window_minutes"`
	SweepMinutes  int    `yaml:"sweep_minutes"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Frontend struct {
		URL string `yaml:"url"`
	} `yaml:"frontend"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func (c OTPConfig) TTL() time.Duration     { return time.Duration(c.TTLSeconds) * time.Second }
func (c OTPConfig) LinkTTL() time.Duration { return time.Duration(c.LinkTTLMinutes) * time.Minute }

func (c LimiterConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

func (c LimiterConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepMinutes) * time.Minute
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// дефолты
	if cfg.OTP.CodeLength <= 0 {
		cfg.OTP.CodeLength = 6
	}
	if cfg.OTP.TTLSeconds <= 0 {
		cfg.OTP.TTLSeconds = 60
	}
	if cfg.OTP.LinkTTLMinutes <= 0 {
		cfg.OTP.LinkTTLMinutes = 15
	}
	if cfg.Limiter.Backend == "" {
		cfg.Limiter.Backend = "memory"
	}
	if cfg.Limiter.MaxAttempts <= 0 {
		cfg.Limiter.MaxAttempts = 5
	}
	if cfg.Limiter.WindowMinutes <= 0 {
		cfg.Limiter.WindowMinutes = 30
	}
	if cfg.Limiter.SweepMinutes <= 0 {
		cfg.Limiter.SweepMinutes = 5
	}
	if cfg.Frontend.URL == "" {
		cfg.Frontend.URL = "http://localhost:3000"
	}
	return &cfg
}
