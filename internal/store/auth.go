package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// Login вход по email и паролю
func (c *Container) Login(ctx context.Context, req fleetapi.LoginRequest) (*domain.User, error) {
	c.log.Info("Login: signing in email=%s", req.Email)

	res, err := c.api.Auth.Login(ctx, req)
	if err != nil {
		c.log.Warn("Login: failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	return c.startSession(ctx, res)
}

// Register регистрация клиента, сессия начинается сразу
func (c *Container) Register(ctx context.Context, req fleetapi.RegisterRequest) (*domain.User, error) {
	c.log.Info("Register: registering email=%s", req.Email)

	res, err := c.api.Auth.Register(ctx, req)
	if err != nil {
		c.log.Warn("Register: failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	return c.startSession(ctx, res)
}

// RegisterMechanic регистрация механика администратором, сессия не меняется
func (c *Container) RegisterMechanic(ctx context.Context, req fleetapi.RegisterRequest) (*domain.User, error) {
	if !c.Session.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := c.api.Auth.RegisterMechanic(ctx, req)
	if err != nil {
		c.log.Warn("RegisterMechanic: failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	c.log.Info("RegisterMechanic: mechanic id=%s registered", user.ID)
	return user, nil
}

// Logout завершает сессию. Ошибка сервера не мешает локальному выходу.
func (c *Container) Logout(ctx context.Context) error {
	if c.Session.Token() != "" {
		if err := c.api.Auth.Logout(ctx); err != nil && !errors.Is(err, fleetapi.ErrUnauthorized) {
			c.log.Warn("Logout: server logout failed: %v", err)
		}
	}

	c.Reset()
	if err := c.Session.clear(ctx); err != nil {
		c.log.Error("Logout: %v", err)
		return err
	}

	c.log.Info("Logout: session closed")
	return nil
}

// Restore восстанавливает сессию из постоянного хранилища при старте
func (c *Container) Restore(ctx context.Context) (*domain.User, error) {
	token, expiresAt, err := c.Session.loadStored(ctx)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			c.log.Info("Restore: stored token expired, removing")
			if clearErr := c.Session.clear(ctx); clearErr != nil {
				c.log.Error("Restore: %v", clearErr)
			}
		}
		return nil, err
	}

	c.Session.setToken(token, expiresAt)

	user, err := c.api.Auth.Check(ctx)
	if err != nil {
		// 401 уже сбросил сессию через HandleUnauthorized
		c.log.Warn("Restore: token check failed: %v", err)
		if !errors.Is(err, fleetapi.ErrUnauthorized) {
			c.Session.setToken("", expiresAt)
		}
		return nil, err
	}

	c.Session.setUser(*user)
	c.log.Info("Restore: session restored for user id=%s role=%s", user.ID, user.Role)
	return user, nil
}

// Profile профиль текущего пользователя с сервера
func (c *Container) Profile(ctx context.Context) (*domain.User, error) {
	current, ok := c.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	user, err := c.api.Users.Get(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	c.Session.setUser(*user)
	return user, nil
}

// UpdateProfile изменяет профиль (имя, почтовый индекс)
func (c *Container) UpdateProfile(ctx context.Context, input fleetapi.ProfileInput) (*domain.User, error) {
	current, ok := c.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if input.PostalCode != nil {
		if err := domain.ValidatePostalCode(*input.PostalCode); err != nil {
			return nil, err
		}
	}

	user, err := c.api.Users.Update(ctx, current.ID, input)
	if err != nil {
		c.log.Warn("UpdateProfile: failed for user id=%s: %v", current.ID, err)
		return nil, err
	}

	c.Session.setUser(*user)
	c.log.Info("UpdateProfile: profile of user id=%s updated", user.ID)
	return user, nil
}

func (c *Container) startSession(ctx context.Context, res *fleetapi.AuthResult) (*domain.User, error) {
	// кэш предыдущего пользователя не должен быть виден новому
	c.Reset()

	if err := c.Session.start(ctx, res.Token, res.User); err != nil {
		c.log.Error("startSession: %v", err)
		return nil, fmt.Errorf("start session: %w", err)
	}

	c.log.Info("startSession: user id=%s role=%s signed in", res.User.ID, res.User.Role)
	user := res.User
	return &user, nil
}
