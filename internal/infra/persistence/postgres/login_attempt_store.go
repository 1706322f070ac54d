package postgres

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loginAttemptStore implements service.LoginAttemptTracker on the login_attempts table.
type loginAttemptStore struct {
	db          *gorm.DB
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// LoginAttemptStoreParams holds dependencies for the login attempt store, injected by Fx.
type LoginAttemptStoreParams struct {
	fx.In

	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

// NewLoginAttemptStore is the constructor for loginAttemptStore.
func NewLoginAttemptStore(params LoginAttemptStoreParams) service.LoginAttemptTracker {
	return &loginAttemptStore{
		db:          params.DB,
		maxAttempts: params.Config.Auth.MaxLoginAttempts,
		window:      params.Config.Auth.LockoutDuration,
		now:         time.Now,
		logger:      params.Logger,
	}
}

// Locked reports whether the key reached the attempt limit inside its window.
func (s *loginAttemptStore) Locked(ctx context.Context, key string) (bool, time.Time, error) {
	var attemptM model.LoginAttemptModel

	err := s.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, s.now()).
		First(&attemptM).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, errors.Wrap(err, "failed to read login attempts")
	}

	if attemptM.Attempts >= s.maxAttempts {
		return true, attemptM.ExpiresAt, nil
	}

	return false, time.Time{}, nil
}

// RecordFailure increments the counter. An expired row starts a fresh window.
func (s *loginAttemptStore) RecordFailure(ctx context.Context, key string) (int, error) {
	now := s.now()
	attemptM := model.LoginAttemptModel{Key: key, Attempts: 1, ExpiresAt: now.Add(s.window)}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "key"}},
				DoUpdates: clause.Assignments(map[string]any{
					"attempts": gorm.Expr(
						"CASE WHEN login_attempts.expires_at <= ? THEN 1 ELSE login_attempts.attempts + 1 END", now),
					"expires_at": gorm.Expr(
						"CASE WHEN login_attempts.expires_at <= ? THEN ? ELSE login_attempts.expires_at END", now, now.Add(s.window)),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "attempts"}, {Name: "expires_at"}}},
		).
		Create(&attemptM).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to record login failure")
	}

	if attemptM.Attempts >= s.maxAttempts {
		s.logger.Warn("Login locked", slog.Int("attempts", attemptM.Attempts), slog.Time("until", attemptM.ExpiresAt))
	}

	return attemptM.Attempts, nil
}

// Reset removes the key after a successful login.
func (s *loginAttemptStore) Reset(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.LoginAttemptModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to reset login attempts")
	}

	return nil
}
