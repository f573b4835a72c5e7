// config реализует конфигурацию cv-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// BlobMinio - фото профилей в MinIO/S3.
	BlobMinio = "minio"
	// BlobGCS - фото профилей в Google Cloud Storage.
	BlobGCS = "gcs"
)

// Config - корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения (перед чтением подхватывается ./.env, если он есть).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	Blob     BlobConfig    `yaml:"blob"`
	Photo    PhotoConfig   `yaml:"photo"`
	Redis    RedisConfig   `yaml:"redis"`
	Auth     AuthConfig    `yaml:"auth"`
	AI       AIConfig      `yaml:"ai"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Sessions SessionConfig `yaml:"sessions"`
}

// HTTPConfig - публичный REST-сервер (API + health/metrics).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50095"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig - настройки подключения к MongoDB (коллекции cvs и users).
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// BlobConfig - хранилище фото профилей.
type BlobConfig struct {
	Backend string    `yaml:"backend" env:"BLOB_BACKEND" env-default:"minio"`
	S3      S3Config  `yaml:"s3"`
	GCS     GCSConfig `yaml:"gcs"`
}

// S3Config - MinIO/S3.
// PublicBaseURL пуст - наружу отдаётся presigned GET со сроком PresignTTL.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER"`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-default:"profile-images"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"168h"`
}

// GCSConfig - Google Cloud Storage. Пустой CredentialsFile - используются ADC.
type GCSConfig struct {
	Bucket          string `yaml:"bucket" env:"GCS_BUCKET"`
	CredentialsFile string `yaml:"credentials_file" env:"GCS_CREDENTIALS_FILE"`
}

// PhotoConfig - ограничения на загружаемое фото.
type PhotoConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"PHOTO_MAX_SIZE_BYTES" env-default:"5242880"`
}

// RedisConfig - уведомления об изменениях CV. Пустой URL - уведомления отключены.
type RedisConfig struct {
	URL     string `yaml:"url" env:"REDIS_URL"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"cv:changed"`
}

// AuthConfig - проверка access-токенов внешнего провайдера идентичности.
type AuthConfig struct {
	JWTSecret string   `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string   `yaml:"issuer" env:"JWT_ISSUER" env-default:"auth-service"`
	Audience  []string `yaml:"audience" env:"JWT_AUDIENCE" env-separator:"," env-default:"cv-service"`
}

// AIConfig - внешние возможности: улучшение текста и распознавание речи.
// Пустой APIKey - локальная эвристика для текста, распознавание речи недоступно.
type AIConfig struct {
	APIKey      string  `yaml:"api_key" env:"AI_API_KEY"`
	Model       string  `yaml:"model" env:"AI_MODEL" env-default:"gemini-2.5-flash"`
	Temperature float32 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.7"`
	MaxTokens   int32   `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"500"`
	Locale      string  `yaml:"locale" env:"AI_SPEECH_LOCALE" env-default:"it-IT"`
}

// TimeoutConfig - дедлайны обработки запроса: общий и для потоковой расшифровки речи.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
	Stream  time.Duration `yaml:"stream" env:"STREAM_TIMEOUT" env-default:"2m"`
}

// SessionConfig - сессии редактирования в памяти процесса.
// IdleTTL = 0 - сессии живут до SignOut.
type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idle_ttl" env:"SESSION_IDLE_TTL" env-default:"30m"`
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) .env + ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

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

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	case path != "":
		c, err = tryRead(path)
	case envPath != "":
		c, err = tryRead(envPath)
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = tryRead("local.yaml")
			break
		}

		// .env необязателен: отсутствие файла не ошибка.
		_ = godotenv.Load()

		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	switch c.Blob.Backend {
	case BlobMinio:
		if c.Blob.S3.Endpoint == "" || c.Blob.S3.Bucket == "" {
			return fmt.Errorf("blob.s3.endpoint and blob.s3.bucket are required for minio backend")
		}
	case BlobGCS:
		if c.Blob.GCS.Bucket == "" {
			return fmt.Errorf("blob.gcs.bucket is required for gcs backend")
		}
	default:
		return fmt.Errorf("blob.backend must be %q or %q", BlobMinio, BlobGCS)
	}

	if c.Photo.MaxSizeBytes <= 0 {
		return fmt.Errorf("photo.max_size_bytes must be > 0")
	}

	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be > 0")
	}

	if c.Timeouts.Service < 0 {
		return fmt.Errorf("timeouts.service must be >= 0")
	}

	if c.Timeouts.Stream < 0 {
		return fmt.Errorf("timeouts.stream must be >= 0")
	}

	if c.Sessions.IdleTTL < 0 {
		return fmt.Errorf("sessions.idle_ttl must be >= 0")
	}

	return nil
}
