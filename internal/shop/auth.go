package shop

import (
	"context"
	"fmt"

	"github.com/glowify/storefront/internal/api"
	"github.com/glowify/storefront/internal/domain"
)

// Register creates an account. Name, email and password must be non-empty.
// A rejection by the endpoint (duplicate email and the like) surfaces as
// ErrRegistrationRejected.
func (s *Shop) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrRegistrationRejected)
	}

	if err := s.api.Register(ctx, name, email, password); err != nil {
		if _, ok := api.IsStatus(err); ok {
			return fmt.Errorf("%w: %v", ErrRegistrationRejected, err)
		}
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info("registered", map[string]any{"email": email})
	return nil
}

// Login exchanges credentials for an identity, installs it in the session
// store and refreshes the cart for the new owner. A refresh failure is not
// fatal: the identity stands and the cart stays empty until the next fetch.
func (s *Shop) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == "" || password == "" {
		return domain.Identity{}, fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
	}

	id, err := s.api.Login(ctx, email, password)
	if err != nil {
		if _, ok := api.IsStatus(err); ok {
			return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return domain.Identity{}, fmt.Errorf("login: %w", err)
	}

	s.store.SetIdentity(&id)
	s.log.WithUser(id.UserID).Info("logged_in", nil)

	if _, err := s.RefreshCart(ctx); err != nil {
		s.log.WithUser(id.UserID).Warn("cart_refresh_failed", nil, err)
	}
	return id, nil
}

// SignIn is the combined flow behind the auth modal: optionally register,
// then log in. A registration failure aborts without attempting login.
// Callers show AuthMessage for any returned error; the typed cause is kept
// for logging only.
func (s *Shop) SignIn(ctx context.Context, name, email, password string, register bool) (domain.Identity, error) {
	if register {
		if err := s.Register(ctx, name, email, password); err != nil {
			return domain.Identity{}, err
		}
	}
	return s.Login(ctx, email, password)
}

// Logout drops the identity. The store clears the cart with it.
func (s *Shop) Logout() {
	id, ok := s.store.Identity()
	s.store.SetIdentity(nil)
	if ok {
		s.log.WithUser(id.UserID).Info("logged_out", nil)
	}
}
