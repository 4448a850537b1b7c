// config - источник загрузки конфигурации headlines.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Перед чтением подхватывается ./.env (godotenv): уже заданные переменные
// окружения не перетираются. ENV всегда накладывается поверх файла.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/newsreader/headlines/internal/models"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ErrMissingAPIKey — ключ newsapi не задан ни в файле, ни в окружении.
var ErrMissingAPIKey = errors.New("newsapi api key is not set (API_KEY)")

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	NewsAPI  NewsAPIConfig  `yaml:"newsapi"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// HTTPConfig — HTTP API (команда serve).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// NewsAPIConfig — доступ к newsapi.org.
type NewsAPIConfig struct {
	BaseURL   string `yaml:"base_url"   env:"NEWSAPI_BASE_URL"   env-default:"https://newsapi.org/v2"`
	APIKey    string `yaml:"api_key"    env:"API_KEY"`
	UserAgent string `yaml:"user_agent" env:"NEWSAPI_USER_AGENT" env-default:"headlines"`
	// Async — исполнять запросы через AsyncExecutor (ожидание с отменой по контексту).
	Async bool `yaml:"async" env:"NEWSAPI_ASYNC" env-default:"false"`
}

// DefaultsConfig — выборка при старте и при пустых параметрах запроса.
type DefaultsConfig struct {
	Country  string `yaml:"country"  env:"DEFAULT_COUNTRY"  env-default:"us"`
	Category string `yaml:"category" env:"DEFAULT_CATEGORY" env-default:"general"`
}

// TimeoutConfig — таймауты: Service — на входящий HTTP-запрос,
// Request — на один исходящий вызов newsapi.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"TIMEOUT_SERVICE" env-default:"15s"`
	Request time.Duration `yaml:"request" env:"TIMEOUT_REQUEST" env-default:"10s"`
}

// Query возвращает запрос по умолчанию. Значения уже проверены validate.
func (d DefaultsConfig) Query() models.Query {
	country, _ := models.ParseCountry(d.Country)
	category, _ := models.ParseCategory(d.Category)

	return models.Query{Category: category, Country: country}
}

// RequireAPIKey — ошибка, если ключ не задан.
func (c *Config) RequireAPIKey() error {
	if c.NewsAPI.APIKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}

func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func load(path string) (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid env %q: want local, dev or prod", c.Env)
	}

	if u, err := url.Parse(c.NewsAPI.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid newsapi.base_url %q", c.NewsAPI.BaseURL)
	}

	if _, err := models.ParseCountry(c.Defaults.Country); err != nil {
		return fmt.Errorf("invalid defaults.country: %w", err)
	}

	if _, err := models.ParseCategory(c.Defaults.Category); err != nil {
		return fmt.Errorf("invalid defaults.category: %w", err)
	}

	if c.Timeouts.Service <= 0 || c.Timeouts.Request <= 0 {
		return fmt.Errorf("timeouts must be positive: service=%s request=%s", c.Timeouts.Service, c.Timeouts.Request)
	}

	return nil
}
