package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// ReviewInput defines the editable fields of a review.
type ReviewInput struct {
	Rating  int
	Comment string
}

// ReviewUsecase defines the interface for review operations. Every write
// recomputes the owning product's rating aggregate in the same transaction.
type ReviewUsecase interface {
	// ListReviews retrieves the reviews of a product.
	ListReviews(ctx context.Context, productID uint) ([]*entity.Review, error)

	// CreateReview adds the user's review of a product. One per user per
	// product.
	CreateReview(ctx context.Context, userID, productID uint, input ReviewInput) (*entity.Review, error)

	// UpdateReview modifies the user's own review.
	UpdateReview(ctx context.Context, userID, reviewID uint, input ReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. Admins may delete any review, users
	// only their own.
	DeleteReview(ctx context.Context, userID uint, isAdmin bool, reviewID uint) error
}
