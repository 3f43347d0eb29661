package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/errors"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers retrieves all user accounts, sanitized.
func (srv *accountService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	sanitized := make([]*entity.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

// GetUser retrieves a single user account, sanitized.
func (srv *accountService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user.Sanitized(), nil
}

// UpdateUser modifies a user account. This is the only path that may change a
// user's role; any field not listed in the input is left untouched by design.
func (srv *accountService) UpdateUser(ctx context.Context, id uint, input usecase.AdminUpdateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Username and email are required")
	}
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Role must be one of user, designer or admin")
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user for update")
	}

	if err := srv.ensureUsernameFree(ctx, username, id); err != nil {
		return nil, err
	}
	if err := srv.ensureEmailFree(ctx, email, id); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.Name = input.Name
	user.Bio = input.Bio
	user.Role = input.Role

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated by admin", slog.Uint64("userID", uint64(id)), slog.String("role", user.Role.String()))

	return user.Sanitized(), nil
}

// ForceDeleteUser removes a user and everything it owns in one transaction:
// cart, reviews, order items, orders, sessions, verification tokens, then the
// user row. Rating aggregates of the products the user had reviewed are
// recomputed before the transaction commits.
func (srv *accountService) ForceDeleteUser(ctx context.Context, id uint) error {
	if _, err := srv.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find user for force delete")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CartRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete cart")
		}

		reviewedProducts, err := repoFactory.ReviewRepo().DeleteByUserID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete reviews")
		}
		for _, productID := range reviewedProducts {
			if err := recomputeProductRating(ctx, repoFactory, productID); err != nil {
				return err
			}
		}

		orderRepo := repoFactory.OrderRepo()
		if err := orderRepo.DeleteItemsByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete order items")
		}
		if err := orderRepo.DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete orders")
		}

		if err := repoFactory.SessionRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}
		if err := repoFactory.VerificationTokenRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete verification tokens")
		}

		return repoFactory.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("User force deleted", slog.Uint64("userID", uint64(id)))

	return nil
}

func (srv *accountService) ensureUsernameFree(ctx context.Context, username string, excludeID uint) error {
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

func (srv *accountService) ensureEmailFree(ctx context.Context, email string, excludeID uint) error {
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
