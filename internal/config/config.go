package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера фермы.
type Config struct {
	// Настройки HTTP
	Port           string   `envconfig:"PORT" default:"8081"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Настройки логирования
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Настройки AI (OpenAI-совместимый API или локальная Ollama)
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel      string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	AIAPIKey     string        `envconfig:"OPENAI_API_KEY"`

	// Настройки кэша спутниковых данных
	EarthDataCacheTTL time.Duration `envconfig:"EARTHDATA_CACHE_TTL" default:"5m"`
}

// Load загружает конфигурацию из переменных окружения.
// Отсутствие API-ключа не является ошибкой: сервер работает
// на запасных сценариях.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
