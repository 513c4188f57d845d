package service

import (
	"context"
	"log/slog"
	"time"

	"counting-down-back/internal/config"
	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"
)

// SessionStore — персистентность сессий (Mongo)
type SessionStore interface {
	Create(ctx context.Context, session model.Session) (*model.Session, error)
	GetByID(ctx context.Context, sessionID string, now time.Time) (*model.Session, error)
	GetByUser(ctx context.Context, user model.UserType, now time.Time) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type AuthService struct {
	cfg      *config.Config
	sessions SessionStore
}

func NewAuthService(cfg *config.Config, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions}
}

func (s *AuthService) userByAccessKey(accessKey string) (model.UserType, bool) {
	switch {
	case s.cfg.AccessKeyDanfeng != "" && accessKey == s.cfg.AccessKeyDanfeng:
		return model.UserDanfeng, true
	case s.cfg.AccessKeyJoris != "" && accessKey == s.cfg.AccessKeyJoris:
		return model.UserJoris, true
	}
	return "", false
}

// Login обменивает ключ доступа на сессию. Живая сессия пользователя
// переиспользуется, а не заменяется.
func (s *AuthService) Login(ctx context.Context, accessKey string) (*model.SessionResponse, error) {
	now := utcNow()
	if _, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		return nil, err
	}

	user, ok := s.userByAccessKey(accessKey)
	if !ok {
		slog.Warn("login attempt with invalid access key")
		return nil, shared.ErrUnauthorized
	}

	existing, err := s.sessions.GetByUser(ctx, user, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return sessionResponse(existing), nil
	}

	created, err := s.sessions.Create(ctx, model.Session{
		SessionID: shared.GenerateCryptoID(shared.SessionIDBytes),
		UserType:  user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("created new session", "user", user)
	return sessionResponse(created), nil
}

// GetSession возвращает живую сессию; истекшие и незнакомые идентификаторы
// неразличимы для клиента
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*model.SessionResponse, error) {
	now := utcNow()
	if _, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, sessionID, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, shared.ErrUnauthorized
	}
	return sessionResponse(session), nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (s *AuthService) CountActiveSessions(ctx context.Context) (int64, error) {
	return s.sessions.CountActive(ctx, utcNow())
}

func sessionResponse(session *model.Session) *model.SessionResponse {
	return &model.SessionResponse{
		SessionID: session.SessionID,
		UserType:  session.UserType,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
}
