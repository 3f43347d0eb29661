// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/errors"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// usernameBlacklist holds the characters a username must not contain. They
// are the usual injection suspects for markup, path and query contexts.
const usernameBlacklist = "<>{}[]\\=;:'\"&$"

const verificationTokenTTL = 24 * time.Hour

// authService implements the AuthUsecase interface.
type authService struct {
	txManager             repository.TransactionManager
	userRepo              repository.UserRepository
	sessionRepo           repository.SessionRepository
	verificationTokenRepo repository.VerificationTokenRepository
	hasher                service.PasswordHasher
	tokenService          service.SessionTokenService
	verificationTokens    service.VerificationTokenSource
	sessionTTL            time.Duration
	allowedEmailDomains   []string
	// dummyRecord is a well-formed hash record checked against the submitted
	// password when the username does not exist, so both login failure paths
	// cost one key derivation.
	dummyRecord string
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager             repository.TransactionManager
	UserRepo              repository.UserRepository
	SessionRepo           repository.SessionRepository
	VerificationTokenRepo repository.VerificationTokenRepository
	Hasher                service.PasswordHasher
	TokenService          service.SessionTokenService
	VerificationTokens    service.VerificationTokenSource
	Config                *config.Config
	Logger                *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	dummyRecord, err := params.Hasher.Hash("timing-equalizer-dummy")
	if err != nil {
		return nil, errors.Wrap(err, "failed to precompute dummy hash record")
	}

	sessionTTL := 7 * 24 * time.Hour
	allowedDomains := config.DefaultAllowedEmailDomains
	if params.Config != nil {
		if params.Config.Session != nil && params.Config.Session.TTL > 0 {
			sessionTTL = params.Config.Session.TTL
		}
		if params.Config.Registration != nil && len(params.Config.Registration.AllowedEmailDomains) > 0 {
			allowedDomains = params.Config.Registration.AllowedEmailDomains
		}
	}

	return &authService{
		txManager:             params.TxManager,
		userRepo:              params.UserRepo,
		sessionRepo:           params.SessionRepo,
		verificationTokenRepo: params.VerificationTokenRepo,
		hasher:                params.Hasher,
		tokenService:          params.TokenService,
		verificationTokens:    params.VerificationTokens,
		sessionTTL:            sessionTTL,
		allowedEmailDomains:   allowedDomains,
		dummyRecord:           dummyRecord,
		logger:                params.Logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and opens a session for it. The validation
// order is part of the contract: presence, username charset, email domain,
// username uniqueness, email uniqueness, password strength.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Username, email and password are required")
	}
	if strings.ContainsAny(username, usernameBlacklist) {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Username contains invalid characters")
	}
	if !srv.emailDomainAllowed(email) {
		return nil, domainerrors.ErrEmailDomainNotAllowed
	}

	if err := srv.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}
	if err := srv.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	// Role is forced to user no matter what the client sent.
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		out, err := srv.openSession(ctx, repoFactory.SessionRepo(), user)
		if err != nil {
			return err
		}
		output = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Uint64("userID", uint64(user.ID)), slog.String("username", user.Username))

	return output, nil
}

// Login verifies credentials and opens a session. Both failure paths, unknown
// username and wrong password, cost one key derivation and yield the same
// generic error.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.dummyRecord)

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	output, err := srv.openSession(ctx, srv.sessionRepo, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Uint64("userID", uint64(user.ID)))

	return output, nil
}

// Logout deletes the session behind the token. Unknown tokens are a no-op.
func (srv *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.tokenService.HashToken(token)); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// CurrentUser resolves the user behind a session token.
func (srv *authService) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	session, err := srv.sessionRepo.FindByTokenHash(ctx, srv.tokenService.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to find session user")
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash. Other
// sessions of the user stay valid.
func (srv *authService) ChangePassword(ctx context.Context, userID uint, input usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find user for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrCurrentPasswordIncorrect
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user.PasswordHash = hash
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.Uint64("userID", uint64(userID)))

	return nil
}

// UpdateProfile modifies the caller's own profile fields. Username and email
// are required even when unchanged; uniqueness checks exclude the caller's
// own row, and a changed email re-passes the domain allow-list.
func (srv *authService) UpdateProfile(ctx context.Context, userID uint, input usecase.UpdateProfileInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Username and email are required")
	}
	if strings.ContainsAny(username, usernameBlacklist) {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Username contains invalid characters")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user for profile update")
	}

	if !strings.EqualFold(email, user.Email) && !srv.emailDomainAllowed(email) {
		return nil, domainerrors.ErrEmailDomainNotAllowed
	}

	if err := srv.ensureUsernameFree(ctx, username, userID); err != nil {
		return nil, err
	}
	if err := srv.ensureEmailFree(ctx, email, userID); err != nil {
		return nil, err
	}

	// A changed email has not been re-verified yet.
	if !strings.EqualFold(email, user.Email) {
		user.IsEmailVerified = false
	}

	user.Username = username
	user.Email = email
	user.Name = input.Name
	user.Bio = input.Bio

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user.Sanitized(), nil
}

// RequestEmailVerification issues a fresh verification token. Any previous
// token for the user is deleted first, so the newest link always wins.
func (srv *authService) RequestEmailVerification(ctx context.Context, userID uint) (string, error) {
	if _, err := srv.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domainerrors.ErrUserNotFound
		}

		return "", errors.Wrap(err, "failed to find user for verification request")
	}

	token, err := srv.verificationTokens.Generate()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate verification token")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.VerificationTokenRepo()

		if err := tokenRepo.DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete prior verification tokens")
		}

		record := &entity.EmailVerificationToken{
			UserID:    userID,
			Token:     token,
			ExpiresAt: time.Now().Add(verificationTokenTTL),
		}

		return tokenRepo.Create(ctx, record)
	})
	if err != nil {
		return "", err
	}

	srv.log(ctx).Info("Verification token issued", slog.Uint64("userID", uint64(userID)))

	return token, nil
}

// VerifyEmail consumes a verification token and marks the user verified. A
// found-but-expired token is deleted and reported with its own message.
func (srv *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domainerrors.ErrVerificationTokenInvalid
	}

	record, err := srv.verificationTokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationTokenNotFound) {
			return domainerrors.ErrVerificationTokenInvalid
		}

		return errors.Wrap(err, "failed to find verification token")
	}

	if record.Expired(time.Now()) {
		if err := srv.verificationTokenRepo.Delete(ctx, record.ID); err != nil {
			return errors.Wrap(err, "failed to delete expired verification token")
		}

		return domainerrors.ErrVerificationTokenExpired
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, record.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user for verification")
		}

		user.IsEmailVerified = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to mark user verified")
		}

		return repoFactory.VerificationTokenRepo().Delete(ctx, record.ID)
	})
}

// CleanupExpiredSessions removes expired session rows.
func (srv *authService) CleanupExpiredSessions(ctx context.Context) error {
	if err := srv.sessionRepo.DeleteExpired(ctx); err != nil {
		return errors.Wrap(err, "failed to delete expired sessions")
	}

	return nil
}

// openSession issues a fresh token, persists its hash and returns the output
// handed back to the cookie layer.
func (srv *authService) openSession(ctx context.Context, sessionRepo repository.SessionRepository, user *entity.User) (*usecase.AuthOutput, error) {
	token, tokenHash, err := srv.tokenService.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(srv.sessionTTL),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return &usecase.AuthOutput{
		User:      user.Sanitized(),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (srv *authService) emailDomainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])
	for _, allowed := range srv.allowedEmailDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}

	return false
}

// ensureUsernameFree rejects a username already held by a different user.
// excludeID carries the caller's own row on profile updates; zero means no
// exclusion.
func (srv *authService) ensureUsernameFree(ctx context.Context, username string, excludeID uint) error {
	existing, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check username uniqueness")
	}

	if existing.ID != excludeID {
		return domainerrors.ErrUsernameTaken
	}

	return nil
}

func (srv *authService) ensureEmailFree(ctx context.Context, email string, excludeID uint) error {
	existing, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check email uniqueness")
	}

	if existing.ID != excludeID {
		return domainerrors.ErrEmailTaken
	}

	return nil
}
