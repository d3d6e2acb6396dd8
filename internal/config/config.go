package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr               = ":8080"
	defaultTimezone               = "Asia/Hong_Kong"
	defaultImageHeight            = 900
	defaultProposalExpiryInterval = time.Hour
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	// MigrationsDir каталог с миграциями; пусто - встроенные в бинарник
	MigrationsDir    string `mapstructure:"MIGRATIONS_DIR"`
	Timezone         string `mapstructure:"TIMEZONE"`
	DefaultLocation  string `mapstructure:"DEFAULT_LOCATION"`
	StatusConfigPath string `mapstructure:"STATUS_CONFIG_PATH"`
	ImageHeight      int    `mapstructure:"IMAGE_HEIGHT"`

	ProposalExpiryInterval time.Duration `mapstructure:"PROPOSAL_EXPIRY_INTERVAL"`

	location *time.Location
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:            getenv("DB_DSN"),
		TelegramToken:    getenv("TELEGRAM_TOKEN"),
		Environment:      getenv("ENV"),
		LogLevel:         getenv("LOG_LEVEL"),
		HTTPAddr:         getenv("HTTP_ADDR"),
		MigrationsDir:    getenv("MIGRATIONS_DIR"),
		Timezone:         getenv("TIMEZONE"),
		DefaultLocation:  getenv("DEFAULT_LOCATION"),
		StatusConfigPath: getenv("STATUS_CONFIG_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	cfg.ImageHeight = defaultImageHeight
	if v := getenv("IMAGE_HEIGHT"); v != "" {
		height, err := strconv.Atoi(v)
		if err != nil || height <= 0 {
			return nil, fmt.Errorf("invalid IMAGE_HEIGHT %q", v)
		}
		cfg.ImageHeight = height
	}

	cfg.ProposalExpiryInterval = defaultProposalExpiryInterval
	if v := getenv("PROPOSAL_EXPIRY_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			return nil, fmt.Errorf("invalid PROPOSAL_EXPIRY_INTERVAL %q", v)
		}
		cfg.ProposalExpiryInterval = interval
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// Location часовой пояс центра
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IsProduction запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
