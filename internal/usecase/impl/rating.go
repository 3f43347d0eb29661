package impl

import (
	"context"

	"atelier/internal/domain/repository"
	"atelier/internal/errors"
)

// recomputeProductRating overwrites a product's derived rating aggregate from
// the review rows currently on file. Callers run it inside the same
// transaction as the review write so the aggregate never drifts.
func recomputeProductRating(ctx context.Context, repoFactory repository.RepositoryFactory, productID uint) error {
	reviews, err := repoFactory.ReviewRepo().FindByProductID(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to load reviews for rating recompute")
	}

	var rating float64
	if len(reviews) > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	if err := repoFactory.ProductRepo().UpdateRating(ctx, productID, rating, len(reviews)); err != nil {
		return errors.Wrap(err, "failed to store rating aggregate")
	}

	return nil
}
