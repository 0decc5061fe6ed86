package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config хранит все настройки приложения
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   string `env:"PORT" envDefault:"8080"`

	// DSN можно задать целиком, иначе он собирается из DB_* переменных
	DSN    string `env:"DB_DSN"`
	DBHost string `env:"DB_HOST"`
	DBPort string `env:"DB_PORT" envDefault:"5432"`
	DBUser string `env:"DB_USER"`
	DBPass string `env:"DB_PASS"`
	DBName string `env:"DB_NAME"`

	Secret        string        `env:"SECRET"`
	SecretPass    string        `env:"SECRET_PASS"`
	SecretVer     string        `env:"SECRET_VER"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"true"`

	RedisHost   string        `env:"REDIS_HOST"`
	RedisPort   string        `env:"REDIS_PORT" envDefault:"6379"`
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"benches-cache"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"benches"`
	S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"true"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	PhotoWorkers int `env:"PHOTO_WORKERS" envDefault:"2"`
	PhotoQueue   int `env:"PHOTO_QUEUE" envDefault:"64"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	TaskQueue       string        `env:"TASK_QUEUE" envDefault:"emails"`
	TaskConcurrency int           `env:"TASK_CONCURRENCY" envDefault:"4"`
	TaskMaxRetries  int           `env:"TASK_MAX_RETRIES" envDefault:"3"`
	TaskRetryDelay  time.Duration `env:"TASK_RETRY_DELAY" envDefault:"20s"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,https://localhost:5173"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`

	SuperuserEmail    string `env:"SUPERUSER_EMAIL"`
	SuperuserUsername string `env:"SUPERUSER_USERNAME" envDefault:"admin"`
	SuperuserPassword string `env:"SUPERUSER_PASSWORD"`
}

// Load читает .env (если есть) и возвращает заполненный Config
func Load() (*Config, error) {
	// Попробуем загрузить файл .env — если его нет, просто пропускаем
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DSN == "" {
		if cfg.DBHost == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("DB_DSN or DB_HOST/DB_NAME must be set")
		}
		cfg.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("SECRET must be set")
	}
	// Отдельные секреты для сброса пароля и верификации необязательны
	if cfg.SecretPass == "" {
		cfg.SecretPass = cfg.Secret
	}
	if cfg.SecretVer == "" {
		cfg.SecretVer = cfg.Secret
	}
	if cfg.PhotoWorkers <= 0 {
		cfg.PhotoWorkers = 1
	}
	if cfg.TaskMaxRetries < 0 {
		cfg.TaskMaxRetries = 0
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &cfg, nil
}

// RedisAddr возвращает адрес Redis или пустую строку, если Redis не настроен
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction сообщает, запущено ли приложение в боевом режиме
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}
