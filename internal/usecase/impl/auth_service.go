package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	attempts     service.LoginAttemptTracker
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Attempts     service.LoginAttemptTracker
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		attempts:     params.Attempts,
		logger:       params.Logger,
	}
}

// Login checks the credentials and issues a token pair. Failed attempts are
// counted per email and lock the account for the configured window.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	key := strings.ToLower(strings.TrimSpace(input.Email))

	locked, until, err := srv.attempts.Locked(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read login attempts")
	}
	if locked {
		logger.Warn("Login blocked for locked account", slog.String("email", util.MaskEmail(key)), slog.Time("until", until))

		return nil, domainerrors.ErrAccountLocked
	}

	user, err := srv.userRepo.FindByEmail(ctx, key)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if user == nil || !srv.hasher.Check(input.Password, user.PasswordHash) {
		count, recordErr := srv.attempts.RecordFailure(ctx, key)
		if recordErr != nil {
			logger.Error("Failed to record login failure", slog.Any("error", recordErr))
		}
		logger.Warn("Invalid login attempt", slog.String("email", util.MaskEmail(key)), slog.Int("attempts", count))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	if err := srv.attempts.Reset(ctx, key); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	logger.Info("User logged in", slog.String("userID", user.ID.String()))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
