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

// reviewService implements the ReviewUsecase interface. Every write runs in a
// transaction together with the owning product's rating recompute.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListReviews retrieves the reviews of a product.
func (srv *reviewService) ListReviews(ctx context.Context, productID uint) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// CreateReview adds the user's review of a product, one per user per product.
func (srv *reviewService) CreateReview(ctx context.Context, userID, productID uint, input usecase.ReviewInput) (*entity.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product for review")
	}

	if _, err := srv.reviewRepo.FindByProductAndUser(ctx, productID, userID); err == nil {
		return nil, domainerrors.ErrConflict.WithMessage("You have already reviewed this product")
	} else if !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing review")
	}

	review := &entity.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return err
		}

		return recomputeProductRating(ctx, repoFactory, productID)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Review created",
		slog.Uint64("productID", uint64(productID)), slog.Uint64("userID", uint64(userID)))

	return review, nil
}

// UpdateReview modifies the user's own review.
func (srv *reviewService) UpdateReview(ctx context.Context, userID, reviewID uint, input usecase.ReviewInput) (*entity.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review for update")
	}
	if review.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ReviewRepo().Update(ctx, review); err != nil {
			return err
		}

		return recomputeProductRating(ctx, repoFactory, review.ProductID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review. Admins may delete any review, users only
// their own.
func (srv *reviewService) DeleteReview(ctx context.Context, userID uint, isAdmin bool, reviewID uint) error {
	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}

		return errors.Wrap(err, "failed to find review for delete")
	}
	if !isAdmin && review.UserID != userID {
		return domainerrors.ErrForbidden
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ReviewRepo().Delete(ctx, reviewID); err != nil {
			return err
		}

		return recomputeProductRating(ctx, repoFactory, review.ProductID)
	})
}

func validateReviewInput(input usecase.ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return domainerrors.ErrValidationFailed.WithMessage("Rating must be between 1 and 5")
	}

	return nil
}
