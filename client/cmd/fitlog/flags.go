package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

const (
	// Путь к файлу хранилища по умолчанию.
	defaultDataPath = "fitlog.json"
	// Значение -data для хранилища в памяти.
	memoryDataPath = ":memory:"
	// Квота хранилища по умолчанию, как у типичного localStorage.
	defaultMaxStoreBytes = 5 << 20
	// Сколько последних тренировок показывать на панели.
	defaultRecentCount = 5

	// Переменные окружения.
	envDataPath  = "FITLOG_DATA_PATH"
	envServerURL = "FITLOG_SERVER_URL"
)

// config хранит конфигурацию клиента.
type config struct {
	DataPath      string
	DataSource    string // Откуда взят путь (для логов)
	ServerURL     string
	Debug         bool
	ShowVersion   bool
	RecentCount   int
	LenientLogin  bool
	MaxStoreBytes int64
	Timeout       time.Duration
}

// parseFlags разбирает флаги и переменные окружения.
// Явно заданный флаг имеет приоритет над переменной окружения.
func parseFlags() (*config, error) {
	cfg := &config{}

	flag.StringVar(&cfg.DataPath, "data", defaultDataPath,
		fmt.Sprintf("Путь к файлу хранилища или %s (env: %s)", memoryDataPath, envDataPath))
	flag.StringVar(&cfg.ServerURL, "server-url", "",
		fmt.Sprintf("URL сервера FitLog (env: %s, по умолчанию сохраненный или http://127.0.0.1:5000)", envServerURL))
	flag.BoolVar(&cfg.Debug, "debug", false, "Включить режим отладки TUI")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Показать версию и дату сборки")
	flag.IntVar(&cfg.RecentCount, "recent", defaultRecentCount, "Сколько последних тренировок показывать на панели")
	flag.BoolVar(&cfg.LenientLogin, "lenient-login", false,
		"Совместимый режим входа. По умолчанию вход успешен только при статусе 2xx, "+
			"это намеренно строже прежнего веб-клиента FitLog. Флаг возвращает прежнее поведение: "+
			"вход успешен при ok=true или username в теле ответа")
	flag.Int64Var(&cfg.MaxStoreBytes, "max-store-bytes", defaultMaxStoreBytes, "Квота хранилища в байтах, 0 - без квоты")
	flag.DurationVar(&cfg.Timeout, "timeout", 0, "Таймаут запросов к серверу, 0 - без таймаута")

	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	cfg.DataSource = "по умолчанию"
	if !explicit["data"] {
		if value, ok := os.LookupEnv(envDataPath); ok && value != "" {
			cfg.DataPath = value
			cfg.DataSource = "переменная окружения (" + envDataPath + ")"
		}
	} else {
		cfg.DataSource = "флаг -data"
	}
	if !explicit["server-url"] {
		if value, ok := os.LookupEnv(envServerURL); ok {
			cfg.ServerURL = value
		}
	}

	if cfg.DataPath == "" {
		return nil, errors.New("путь к хранилищу не может быть пустым (-data или " + envDataPath + ")")
	}
	if cfg.RecentCount <= 0 {
		return nil, errors.New("значение -recent должно быть положительным")
	}
	if cfg.MaxStoreBytes < 0 {
		return nil, errors.New("значение -max-store-bytes не может быть отрицательным")
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("значение -timeout не может быть отрицательным")
	}
	return cfg, nil
}
