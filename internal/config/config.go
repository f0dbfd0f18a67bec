package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		App        App        `yaml:"app"`
		HTTP       HTTP       `yaml:"http"`
		Prometheus Prometheus `yaml:"prometheus"`
		Log        Log        `yaml:"log"`
		PG         PG         `yaml:"postgres"`
		JWT        JWT        `yaml:"jwt"`
		Kafka      Kafka      `yaml:"kafka"`
		Files      Files      `yaml:"files"`
		Export     Export     `yaml:"export"`
	}

	App struct {
		Name    string `env-required:"true" yaml:"name" env:"APP_NAME"`
		Version string `env-required:"true" yaml:"version" env:"APP_VERSION"`
	}

	HTTP struct {
		Port         string        `env-required:"true" yaml:"port" env:"HTTP_PORT"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	}

	Prometheus struct {
		Port string `env-required:"true" yaml:"port" env:"PROMETHEUS_PORT"`
	}

	Log struct {
		Level string `env-required:"true" yaml:"level" env:"LOG_LEVEL"`
	}

	PG struct {
		URL         string `env-required:"true" env:"PG_URL"`
		MaxPoolSize int    `env-required:"true" yaml:"max_pool_size" env:"PG_MAX_POOL_SIZE"`
	}

	JWT struct {
		SignKey  string        `env-required:"true" env:"JWT_SIGN_KEY"`
		TokenTTL time.Duration `env-required:"true" yaml:"token_ttl" env:"JWT_TOKEN_TTL"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC"`
	}

	Files struct {
		LogDirs  []string `yaml:"log_dirs" env:"FILES_LOG_DIRS"`
		DemoMode bool     `yaml:"demo_mode" env:"FILES_DEMO_MODE"`
	}

	Export struct {
		MaxRows int64 `yaml:"max_rows" env:"EXPORT_MAX_ROWS"`
	}
)

func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("env read error: %w", err)
	}

	return cfg, nil
}
