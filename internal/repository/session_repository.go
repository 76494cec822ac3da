package repository

import (
	"context"
	"errors"
	"fmt"

	"catering_manager/internal/store"
)

const sessionActive = "active"

// SessionRepository stores the login flag. The value is the bare string
// "active", not JSON.
type SessionRepository interface {
	IsActive(ctx context.Context) (bool, error)
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
}

type sessionRepository struct {
	st  store.Store
	key string
}

func NewSessionRepository(st store.Store, key string) SessionRepository {
	return &sessionRepository{st: st, key: key}
}

func (r *sessionRepository) IsActive(ctx context.Context) (bool, error) {
	val, err := r.st.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return string(val) == sessionActive, nil
}

func (r *sessionRepository) Activate(ctx context.Context) error {
	if err := r.st.Set(ctx, r.key, []byte(sessionActive)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Deactivate(ctx context.Context) error {
	if err := r.st.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
