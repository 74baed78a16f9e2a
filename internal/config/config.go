package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read from the environment (optionally seeded from a .env file)
// or, when CONFIG_PATH is set, from that YAML file with env overrides.
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	HTTP   HTTP   `yaml:"http"`
	DB     DB     `yaml:"db"`
	Auth   Auth   `yaml:"auth"`
	Redis  Redis  `yaml:"redis"`
	Mail   Mail   `yaml:"mail"`
	Import Import `yaml:"import"`
	Admin  Admin  `yaml:"admin"`
}

type HTTP struct {
	Addr           string        `yaml:"addr" env:"HTTP_ADDR" env-default:":3333"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ORIGINS" env-default:"http://localhost:3000"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DB struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"gympoint"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`

	// Path is only used by the sqlite driver.
	Path string `yaml:"path" env:"DB_PATH" env-default:"gympoint.db"`
}

// DSN builds the postgres connection string.
func (c DB) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type Auth struct {
	Secret string        `yaml:"secret" env:"APP_SECRET" env-default:"gympoint-dev-secret"`
	TTL    time.Duration `yaml:"ttl" env:"AUTH_TTL" env-default:"168h"`
}

type Redis struct {
	// Addr left empty disables the mail queue.
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Queue    string `yaml:"queue" env:"REDIS_QUEUE" env-default:"gympoint:mail"`
}

type Mail struct {
	Host        string `yaml:"host" env:"MAIL_HOST" env-default:"localhost"`
	Port        int    `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	User        string `yaml:"user" env:"MAIL_USER"`
	Password    string `yaml:"password" env:"MAIL_PASSWORD"`
	From        string `yaml:"from" env:"MAIL_FROM" env-default:"Gympoint <noreply@gympoint.com>"`
	Workers     int    `yaml:"workers" env:"MAIL_WORKERS" env-default:"2"`
	MetricsAddr string `yaml:"metrics_addr" env:"WORKER_METRICS_ADDR" env-default:":9091"`
}

type Import struct {
	Dir         string `yaml:"dir" env:"UPLOAD_DIR" env-default:"uploads"`
	MaxUploadMB int64  `yaml:"max_upload_mb" env:"IMPORT_MAX_MB" env-default:"100"`
}

// Admin holds the seeded administrator account and the API URL the admin
// client talks to.
type Admin struct {
	Name     string `yaml:"name" env:"ADMIN_NAME" env-default:"Administrator"`
	Email    string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@gympoint.com"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"123456"`
	APIURL   string `yaml:"api_url" env:"API_URL" env-default:"http://localhost:3333"`
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return cfg
}
