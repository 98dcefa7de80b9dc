// Package migrations содержит SQL-миграции схемы сервера, встроенные в бинарник.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // Драйвер миграций для PostgreSQL
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Source возвращает источник миграций из встроенных файлов.
func Source() (source.Driver, error) {
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения встроенных миграций: %w", err)
	}
	return src, nil
}

// Up применяет все непримененные миграции к базе по DSN.
func Up(dsn string) error {
	src, err := Source()
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	defer func() {
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			log.Printf("[Migrate] Ошибка закрытия мигратора: %v, %v", srcErr, dbErr)
		}
	}()

	if err = migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("[Migrate] Схема уже актуальна")
			return nil
		}
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	version, _, _ := migrator.Version()
	log.Printf("[Migrate] Миграции применены, версия схемы: %d", version)
	return nil
}
