package impl

import (
	"context"
	"log/slog"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/errors"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo repository.CartRepository
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo repository.CartRepository
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo: params.CartRepo,
		logger:   params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart retrieves the user's cart. A user without a cart gets an empty one
// back rather than an error.
func (srv *cartService) GetCart(ctx context.Context, userID uint) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &entity.Cart{UserID: userID, Items: []entity.CartItem{}}, nil
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

// ReplaceCart overwrites the user's cart with the given items. The whole
// document is replaced; there is no merging with what was stored before.
func (srv *cartService) ReplaceCart(ctx context.Context, userID uint, items []entity.CartItem) (*entity.Cart, error) {
	for _, item := range items {
		if item.ProductID == 0 {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Cart item product is required")
		}
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Cart item quantity must be positive")
		}
	}

	if items == nil {
		items = []entity.CartItem{}
	}

	cart := &entity.Cart{
		UserID: userID,
		Items:  items,
	}
	if err := srv.cartRepo.Replace(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to replace cart")
	}

	srv.log(ctx).Debug("Cart replaced",
		slog.Uint64("userID", uint64(userID)), slog.Int("items", len(items)))

	return cart, nil
}

// ClearCart removes the user's cart. Clearing an absent cart is a no-op.
func (srv *cartService) ClearCart(ctx context.Context, userID uint) error {
	if err := srv.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
