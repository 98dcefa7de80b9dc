package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/repository"
)

// Ошибки сервиса аутентификации.
var (
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
	ErrInvalidToken       = errors.New("невалидный токен сессии")
)

// DefaultTokenTTL - время жизни сессии по умолчанию.
const DefaultTokenTTL = 24 * time.Hour

const tokenIssuer = "fitlog-server"

// AuthService регистрирует пользователей и выдает токены сессии.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (string, error)
}

// sessionClaims - полезная нагрузка токена сессии.
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService создает сервис аутентификации. Токены подписываются HS256 секретом secret.
func NewAuthService(userRepo repository.UserRepository, secret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register хеширует пароль bcrypt и создает пользователя.
func (s *authService) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	_, err = s.userRepo.CreateUser(ctx, &models.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь '%s'", username)
	return nil
}

// Login проверяет пароль и возвращает подписанный токен сессии.
// Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Вход неизвестного пользователя '%s'", username)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[AuthService] Неверный пароль для '%s'", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Username)
	if err != nil {
		return "", err
	}
	log.Printf("[AuthService] Сессия создана для '%s'", username)
	return token, nil
}

// ParseToken проверяет подпись и срок токена и возвращает имя пользователя.
func (s *authService) ParseToken(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

func (s *authService) issueToken(username string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}
