package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/client/internal/tui"
)

const (
	logDir             = "logs"
	logFileName        = "client.log"
	logFilePermissions = 0666
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
//
//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
var (
	version    = "dev"
	buildDate  = "unknown"
	commitHash = "N/A"
)

// setupLogging настраивает логирование в файл logs/client.log.
// Терминал занят TUI, поэтому в stdout не пишем.
func setupLogging(debug bool) {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("Не удалось создать директорию для логов: " + err.Error())
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	// Файл остается открытым до завершения процесса

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
}

// openStore открывает хранилище по конфигурации.
func openStore(cfg *config) (kvstore.Store, error) {
	if cfg.DataPath == memoryDataPath {
		return kvstore.NewMemoryStore(cfg.MaxStoreBytes), nil
	}
	store, err := kvstore.NewFileStore(cfg.DataPath, cfg.MaxStoreBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}
	return store, nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	if cfg.ShowVersion {
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("FitLog Client")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		os.Exit(0)
	}

	setupLogging(cfg.Debug)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Не удалось открыть хранилище", "path", cfg.DataPath, "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	slog.Info("Запуск FitLog",
		"data_path", cfg.DataPath,
		"source", cfg.DataSource,
		"debug_mode", cfg.Debug,
		"server_url", cfg.ServerURL,
		"lenient_login", cfg.LenientLogin,
	)

	err = tui.Start(tui.Options{
		Store:        store,
		DataPath:     cfg.DataPath,
		ServerURL:    cfg.ServerURL,
		Timeout:      cfg.Timeout,
		LenientLogin: cfg.LenientLogin,
		RecentCount:  cfg.RecentCount,
		Debug:        cfg.Debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
