package config

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	RedisAddr  string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	HTTPServer `yaml:"http_server"`
	Backend    `yaml:"backend"`
	Calendar   `yaml:"calendar"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_URL" env-required:"true" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type Calendar struct {
	StartHour       int           `yaml:"start_hour" env-default:"8" validate:"min=0,max=23"`
	EndHour         int           `yaml:"end_hour" env-default:"18" validate:"min=0,max=23,gtefield=StartHour"`
	MinAdvanceHours int           `yaml:"min_advance_hours" env-default:"12" validate:"min=0"`
	ServiceName     string        `yaml:"service_name" env-default:"Photo Session"`
	SessionTTL      time.Duration `yaml:"session_ttl" env-default:"24h"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env-default:"1m"`
}

func MustLoad() *Config {
	godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	return &cfg
}
