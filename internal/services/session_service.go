package services

import (
	"context"
	"strings"

	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

// SessionService is the login gate. Any non-empty credentials are accepted;
// the only state is the persisted "active" flag.
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Active(ctx context.Context) (bool, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	log         *logrus.Entry
}

func NewSessionService(sessionRepo repository.SessionRepository, logger *logrus.Logger) SessionService {
	return &sessionService{sessionRepo: sessionRepo, log: componentLogger(logger, "session")}
}

func (s *sessionService) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return NewValidationError("please enter username and password")
	}
	if err := persist(ctx, s.log, "session", s.sessionRepo.Activate); err != nil {
		return err
	}
	s.log.WithField("username", strings.TrimSpace(username)).Info("logged in")
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := persist(ctx, s.log, "session", s.sessionRepo.Deactivate); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}

func (s *sessionService) Active(ctx context.Context) (bool, error) {
	active, err := s.sessionRepo.IsActive(ctx)
	if err != nil {
		return false, &StorageError{Collection: "session", Err: err}
	}
	return active, nil
}
