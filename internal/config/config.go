package config

import (
	"errors"
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string `env:"BOT_TOKEN"`
	AdminChatID int64  `env:"ADMIN_CHAT_ID"`
	AdminEmail  string `env:"ADMIN_EMAIL"`

	MongoURI  string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB   string `env:"MONGO_DB" envDefault:"divarkhaf"`
	RedisAddr string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	NATSURL   string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	MinIOEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOBucket    string `env:"MINIO_BUCKET" envDefault:"listing-photos"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPEmail    string `env:"SMTP_EMAIL"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	if cfg.AdminChatID == 0 {
		return nil, errors.New("ADMIN_CHAT_ID is required")
	}
	return cfg, nil
}
