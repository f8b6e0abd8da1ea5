package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// demoPassword is the single placeholder credential every demo account
// accepts. This service is a stand-in for a real identity provider and is
// explicitly not a security mechanism.
const demoPassword = "password"

type authService struct {
	repo           repositories.Repository
	sessions       *cache.CacheHelper
	sessionTTL     time.Duration
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewAuthService(repo repositories.Repository, redisClient *redis.Client, sessionTTL time.Duration, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) AuthService {
	return &authService{
		repo:           repo,
		sessions:       cache.NewCacheManager(redisClient).Session,
		sessionTTL:     sessionTTL,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// Login verifies the email against persisted users and the password against
// the demo literal, then issues an opaque session token
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateLogin(req); len(errs) > 0 {
		return nil, errs
	}

	// Sessions live only in the session store. Without one, an issued token
	// could never resolve, so refuse to log anyone in.
	if !s.sessions.Available() {
		return nil, fmt.Errorf("session store unavailable: %w", cache.ErrCacheNotAvailable)
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same error as a wrong password: never reveal which part failed
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if req.Password != demoPassword {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Set(ctx, session.ID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	// Best-effort; a broker failure must not fail the login
	event := events.NewEvent(events.EventUserLoggedIn, events.LoginEvent{
		UserID:  user.ID,
		Role:    string(user.Role),
		LoginAt: session.CreatedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish login event", "user_id", user.ID, "error", err)
	}

	return &LoginResponse{
		Token:     session.ID,
		User:      user,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the session
func (s *authService) Logout(ctx context.Context, token string) error {
	session, err := s.getSession(ctx, token)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("User logged out", "user_id", session.UserID)

	return nil
}

// CurrentUser resolves a session token to its user
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	session, err := s.getSession(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, nil, session.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

func (s *authService) getSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	err := s.sessions.Get(ctx, token, &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) || errors.Is(err, cache.ErrCacheNotAvailable) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Redis TTL should make this unreachable, but the expiry on the session
	// itself is authoritative
	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}

	return &session, nil
}
