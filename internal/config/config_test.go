package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newsreader/headlines/internal/models"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// chdir — смена текущего рабочего каталога с авто-возвратом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// unsetenv снимает переменную на время теста (с восстановлением).
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "8080"
newsapi:
  base_url: "http://localhost:9999/v2"
  api_key: "file-key-123456"
  user_agent: "headlines-test"
  async: true
defaults:
  country: "gb"
  category: "technology"
timeouts:
  service: "3s"
  request: "2s"
`

// Минимальный YAML (всё остальное — через дефолты/ENV).
const minimalYAML = `
env: "dev"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	require.Equal(t, "http://localhost:9999/v2", cfg.NewsAPI.BaseURL)
	require.Equal(t, "file-key-123456", cfg.NewsAPI.APIKey)
	require.Equal(t, "headlines-test", cfg.NewsAPI.UserAgent)
	require.True(t, cfg.NewsAPI.Async)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
	require.Equal(t, 2*time.Second, cfg.Timeouts.Request)
	require.Equal(t, models.Query{Category: models.Technology, Country: "gb"}, cfg.Defaults.Query())
	require.NoError(t, cfg.RequireAPIKey())
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_WithExplicitPath_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	require.False(t, cfg.NewsAPI.Async)
	require.Equal(t, models.Query{Category: models.General, Country: "us"}, cfg.Defaults.Query())
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "8080", cfg.HTTP.Port)
}

// CONFIG_PATH важнее local.yaml.
func TestLoad_Priority_ENVWinsOverLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "7777" }
`)

	envPath := writeFile(t, dir, "from_env.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", envPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
}

// Явный путь важнее CONFIG_PATH и local.yaml.
func TestLoad_Priority_ExplicitWinsOverEnvAndLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	explicit := writeFile(t, dir, "explicit.yaml", `
env: "prod"
http: { host: "0.0.0.0", port: "8080" }
`)
	badFromEnv := writeFile(t, dir, "bad.yaml", brokenYAML)
	t.Setenv("CONFIG_PATH", badFromEnv)
	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "9999" }
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_EnvOverlay_OverridesValuesFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("API_KEY", "env-key-abcdef")
	t.Setenv("DEFAULT_COUNTRY", "fr")
	t.Setenv("TIMEOUT_SERVICE", "5s")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "18080", cfg.HTTP.Port)
	require.Equal(t, "env-key-abcdef", cfg.NewsAPI.APIKey)
	require.Equal(t, "fr", cfg.Defaults.Country)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
}

// «Только ENV» без файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("HTTP_PORT", "50080")
	t.Setenv("API_KEY", "only-env-key")
	t.Setenv("DEFAULT_CATEGORY", "Sports")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "only-env-key", cfg.NewsAPI.APIKey)
	require.Equal(t, models.Sports, cfg.Defaults.Query().Category)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Service)
	require.Equal(t, 10*time.Second, cfg.Timeouts.Request)
}

// .env подхватывается, но не перетирает уже заданные переменные.
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	unsetenv(t, "API_KEY")
	t.Setenv("HTTP_PORT", "1234")

	writeFile(t, ".", ".env", "API_KEY=from-dotenv-key\nHTTP_PORT=9999\n")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-dotenv-key", cfg.NewsAPI.APIKey)
	require.Equal(t, "1234", cfg.HTTP.Port)
}

func TestLoad_MissingKeyIsNotALoadError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	unsetenv(t, "API_KEY")

	cfg, err := Load("")
	require.NoError(t, err)
	require.ErrorIs(t, cfg.RequireAPIKey(), ErrMissingAPIKey)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"env", `env: "stage"`, "invalid env"},
		{"base_url", "newsapi: { base_url: \"newsapi.org\" }", "invalid newsapi.base_url"},
		{"country", "defaults: { country: \"xx\" }", "invalid defaults.country"},
		{"category", "defaults: { category: \"weather\" }", "invalid defaults.category"},
		{"timeout", "timeouts: { request: \"-1s\" }", "timeouts must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "c.yaml", tt.yaml)

			_, err := Load(p)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
