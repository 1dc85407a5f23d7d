package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Mail     MailConfig     `yaml:"mail"`
	Board    BoardConfig    `yaml:"board"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

// APIConfig aponta para a API remota do CRM.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Key     string        `yaml:"key"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url"`
}

type MailConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

type BoardConfig struct {
	RollbackOnFailure bool `yaml:"rollback_on_failure"`
	// RefreshInterval recarrega o quadro do servidor periodicamente; 0 desliga.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			Env:      "dev",
			LogLevel: "info",
		},
		API: APIConfig{
			URL:     "http://localhost:3001/api",
			Timeout: 10 * time.Second,
		},
		Mail: MailConfig{
			Port: 587,
			From: "nao-responda@lintra.com.br",
		},
		Board: BoardConfig{
			RollbackOnFailure: true,
			RefreshInterval:   time.Minute,
		},
	}
}

// Load aplica, nesta ordem: defaults, arquivo yaml (se existir), .env e variáveis de ambiente.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// .env é opcional
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := os.Getenv("LINTRA_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("LINTRA_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("LINTRA_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("MAIL_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("MAIL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = p
		}
	}
	if v := os.Getenv("MAIL_USER"); v != "" {
		cfg.Mail.User = v
	}
	if v := os.Getenv("MAIL_PASS"); v != "" {
		cfg.Mail.Pass = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("BOARD_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Board.RefreshInterval = d
		}
	}
	if v := os.Getenv("ROLLBACK_ON_FAILURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Board.RollbackOnFailure = b
		}
	}
}

// NewLogger monta o logger zap do ambiente. outputs substitui stdout/stderr
// (o quadro em tela cheia grava o log em arquivo).
func (c *Config) NewLogger(outputs ...string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Server.Env == "dev" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(strings.ToLower(c.Server.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(outputs) > 0 {
		zc.OutputPaths = outputs
		zc.ErrorOutputPaths = outputs
	}
	return zc.Build()
}
