package config

import "github.com/caarlos0/env/v10"

const (
	SeedSourceMock     = "mock"
	SeedSourcePostgres = "postgres"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort              string `env:"HTTP_PORT" envDefault:"8080"`
	SeedSource            string `env:"SEED_SOURCE" envDefault:"mock"`
	DatabaseURL           string `env:"DATABASE_URL"`
	// Con SEED_SOURCE=postgres los ids son UUID: hay que fijarlo explícitamente.
	DefaultConversationID string `env:"DEFAULT_CONVERSATION_ID" envDefault:"1"`
	SidebarOpen           bool   `env:"SIDEBAR_OPEN" envDefault:"true"`
	DateLocale            string `env:"DATE_LOCALE" envDefault:"en-US"`
	SessionSecret         string `env:"SESSION_SECRET"`
	SessionTTLHours       int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	SendRateMax           int    `env:"SEND_RATE_MAX" envDefault:"0"`
	SendRateWindowSeconds int    `env:"SEND_RATE_WINDOW_SECONDS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
