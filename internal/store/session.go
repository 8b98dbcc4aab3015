package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	sessionRepo "github.com/m04kA/SMC-FleetDesk/internal/infra/storage/session"
)

// Session текущая сессия пользователя: bearer токен и профиль.
// Реализует fleetapi.TokenSource.
type Session struct {
	repo TokenRepository
	log  Logger
	now  func() time.Time

	mu        sync.RWMutex
	token     string
	user      *domain.User
	expiresAt time.Time
}

// NewSession создает пустую сессию поверх постоянного хранилища токена
func NewSession(repo TokenRepository, log Logger) *Session {
	return &Session{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Token текущий bearer токен, пустая строка если сессии нет
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// User текущий пользователь
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated есть ли активная сессия
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != "" && s.user != nil
}

// IsAdmin активна ли сессия администратора
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != "" && s.user.IsAdmin()
}

// ExpiresAt время истечения токена, нулевое если неизвестно
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}

// Info снимок сессии
func (s *Session) Info() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.user == nil {
		return domain.Session{}, false
	}
	return domain.Session{
		Token:  s.token,
		UserID: s.user.ID,
		Email:  s.user.Email,
		Role:   s.user.Role,
	}, true
}

// start сохраняет токен в хранилище и активирует сессию
func (s *Session) start(ctx context.Context, token string, user domain.User) error {
	claims, err := inspectToken(token)
	if err != nil {
		s.log.Warn("Session.start: token is not a readable JWT: %v", err)
	}

	if err := s.repo.Save(ctx, token); err != nil {
		return fmt.Errorf("%w: save token: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = &user
	s.expiresAt = claims.expiresAt

	return nil
}

// setToken активирует токен без профиля (восстановление до проверки)
func (s *Session) setToken(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = nil
	s.expiresAt = expiresAt
}

func (s *Session) setUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
}

// clear сбрасывает сессию и удаляет сохраненный токен
func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("%w: delete token: %v", ErrInternal, err)
	}
	return nil
}

// loadStored достает сохраненный токен и проверяет его срок
func (s *Session) loadStored(ctx context.Context) (string, time.Time, error) {
	token, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return "", time.Time{}, ErrNoStoredSession
		}
		return "", time.Time{}, fmt.Errorf("%w: load token: %v", ErrInternal, err)
	}

	claims, err := inspectToken(token)
	if err != nil {
		// непрозрачный токен, срок проверит сервер
		s.log.Warn("Session.loadStored: token is not a readable JWT: %v", err)
		return token, time.Time{}, nil
	}

	if !claims.expiresAt.IsZero() && !claims.expiresAt.After(s.now()) {
		return "", time.Time{}, ErrSessionExpired
	}

	return token, claims.expiresAt, nil
}

type tokenClaims struct {
	expiresAt time.Time
}

// inspectToken читает claims без проверки подписи: подпись проверяет fleet API,
// клиенту нужен только срок действия
func inspectToken(token string) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}, err
	}

	var result tokenClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.expiresAt = exp.Time
	}

	return result, nil
}
