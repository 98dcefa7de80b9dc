package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/fitlog/fitlog/server/internal/services"
)

const (
	defaultServerPort = "5000"
	defaultEnvFile    = ".env"
	// Секрет для локальной разработки, в проде задается JWT_SECRET.
	devJWTSecret = "dev-secret-change"

	// Переменные окружения.
	envServerPort  = "SERVER_PORT"
	envTLSCertFile = "TLS_CERT_FILE"
	envTLSKeyFile  = "TLS_KEY_FILE"
	envDatabaseDSN = "DATABASE_DSN"
	envJWTSecret   = "JWT_SECRET" //nolint:gosec // Имя переменной окружения, не секрет
	envTokenTTL    = "TOKEN_TTL"
)

// config хранит конфигурацию сервера.
type config struct {
	EnvFile     string
	Port        string
	CertFile    string
	KeyFile     string
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	AutoMigrate bool
}

// bindFlags регистрирует общие флаги сервера.
func bindFlags(flags *pflag.FlagSet, cfg *config) {
	flags.StringVar(&cfg.EnvFile, "env-file", defaultEnvFile, "Файл с переменными окружения")
	flags.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flags.StringVar(&cfg.CertFile, "cert-file", "",
		fmt.Sprintf("Путь к TLS-сертификату (env: %s)", envTLSCertFile))
	flags.StringVar(&cfg.KeyFile, "key-file", "",
		fmt.Sprintf("Путь к TLS-ключу (env: %s)", envTLSKeyFile))
	flags.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к PostgreSQL (env: %s)", envDatabaseDSN))
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Секрет подписи токенов сессии (env: %s)", envJWTSecret))
	flags.DurationVar(&cfg.TokenTTL, "token-ttl", 0,
		fmt.Sprintf("Время жизни сессии (env: %s, default: %s)", envTokenTTL, services.DefaultTokenTTL))
}

// loadDotEnv подгружает файл окружения, если он есть.
// Уже заданные переменные окружения не перезаписываются.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	log.Printf("[Config] Загружены переменные из %s", path)
	return nil
}

// applyEnv дополняет незаданные флаги значениями окружения и значениями по умолчанию.
func (c *config) applyEnv(flags *pflag.FlagSet) error {
	fromEnv := func(name, key string, dst *string) {
		if flags.Changed(name) {
			return
		}
		if value, ok := os.LookupEnv(key); ok {
			*dst = value
		}
	}
	fromEnv("port", envServerPort, &c.Port)
	fromEnv("cert-file", envTLSCertFile, &c.CertFile)
	fromEnv("key-file", envTLSKeyFile, &c.KeyFile)
	fromEnv("database-dsn", envDatabaseDSN, &c.DatabaseDSN)
	fromEnv("jwt-secret", envJWTSecret, &c.JWTSecret)

	if !flags.Changed("token-ttl") {
		if value, ok := os.LookupEnv(envTokenTTL); ok {
			ttl, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("некорректное значение %s: %w", envTokenTTL, err)
			}
			c.TokenTTL = ttl
		}
	}

	if c.Port == "" {
		c.Port = defaultServerPort
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = services.DefaultTokenTTL
	}
	if c.JWTSecret == "" {
		log.Printf("[Config] %s не задан, используется секрет для разработки", envJWTSecret)
		c.JWTSecret = devJWTSecret
	}
	return nil
}

// TLSEnabled сообщает, заданы ли сертификат и ключ.
func (c *config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// validateDatabase проверяет наличие строки подключения.
func (c *config) validateDatabase() error {
	if c.DatabaseDSN == "" {
		return errors.New("не указана строка подключения к БД (--database-dsn или " + envDatabaseDSN + ")")
	}
	return nil
}

// validateServe проверяет конфигурацию для запуска сервера.
func (c *config) validateServe() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("TLS требует и сертификат, и ключ (--cert-file и --key-file)")
	}
	return nil
}
