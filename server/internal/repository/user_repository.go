package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fitlog/fitlog/models"
)

// Код ошибки PostgreSQL unique_violation.
const pgUniqueViolationCode = "23505"

// Ошибки репозитория пользователей.
var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
)

// UserRepository хранит учетные записи сервера.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает репозиторий пользователей поверх PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const (
	insertUserQuery = `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`
	selectUserQuery = `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
)

// CreateUser добавляет пользователя. Имя уникально с учетом регистра.
func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, insertUserQuery, user.Username, user.PasswordHash).Scan(&id)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Printf("[UserRepo] Имя '%s' уже занято", user.Username)
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	log.Printf("[UserRepo] Создан пользователь '%s' (ID %d)", user.Username, id)
	return id, nil
}

// GetUserByUsername ищет пользователя по точному имени.
func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, selectUserQuery, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	return &user, nil
}
