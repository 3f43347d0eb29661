package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/entity"
	"atelier/internal/usecase"
)

type reviewServiceFixtures struct {
	service usecase.ReviewUsecase
	factory *fakeFactory
}

func createTestReviewService(t *testing.T) *reviewServiceFixtures {
	t.Helper()

	factory := newFakeFactory()

	service := NewReviewService(ReviewServiceParams{
		TxManager:   newFakeTxManager(factory),
		ReviewRepo:  factory.reviewRepo,
		ProductRepo: factory.productRepo,
		Logger:      newDiscardLogger(),
	})

	return &reviewServiceFixtures{service: service, factory: factory}
}

func (f *reviewServiceFixtures) seedProduct(t *testing.T) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:      "Silk blouse pattern",
		Slug:      "silk-blouse-pattern",
		Price:     24.50,
		Published: true,
	}
	require.NoError(t, f.factory.productRepo.Create(context.Background(), product))

	return product
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{
		Rating:  4,
		Comment: "Clean seam allowances.",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), review.UserID)
	assert.Equal(t, product.ID, review.ProductID)
	assert.NotZero(t, review.ID)
}

// Every review write recomputes the product's rating aggregate in the same
// transaction.
func TestReviewService_CreateReview_RecomputesAggregate(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	_, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)
	_, err = fixtures.service.CreateReview(context.Background(), 8, product.ID, usecase.ReviewInput{Rating: 5})
	require.NoError(t, err)

	stored := fixtures.factory.productRepo.products[product.ID]
	assert.InDelta(t, 4.5, stored.Rating, 0.001)
	assert.Equal(t, 2, stored.NumReviews)
}

func TestReviewService_CreateReview_RatingOutOfRange(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: rating})
		appErr := requireAppError(t, err, "VALIDATION_FAILED")
		assert.Equal(t, "Rating must be between 1 and 5", appErr.Message())
	}
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	fixtures := createTestReviewService(t)

	_, err := fixtures.service.CreateReview(context.Background(), 7, 404, usecase.ReviewInput{Rating: 4})
	requireAppError(t, err, "PRODUCT_NOT_FOUND")
}

func TestReviewService_CreateReview_OnePerUserPerProduct(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	_, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 5})
	appErr := requireAppError(t, err, "CONFLICT")
	assert.Equal(t, "You have already reviewed this product", appErr.Message())
}

func TestReviewService_UpdateReview_Success(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 2})
	require.NoError(t, err)

	updated, err := fixtures.service.UpdateReview(context.Background(), 7, review.ID, usecase.ReviewInput{
		Rating:  5,
		Comment: "Revised after the second make.",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Rating)
	assert.InDelta(t, 5.0, fixtures.factory.productRepo.products[product.ID].Rating, 0.001)
}

func TestReviewService_UpdateReview_NotOwner(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = fixtures.service.UpdateReview(context.Background(), 8, review.ID, usecase.ReviewInput{Rating: 1})
	requireAppError(t, err, "FORBIDDEN")
}

func TestReviewService_DeleteReview_Owner(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, fixtures.service.DeleteReview(context.Background(), 7, false, review.ID))

	// The aggregate drops back to zero with the last review gone.
	stored := fixtures.factory.productRepo.products[product.ID]
	assert.Zero(t, stored.Rating)
	assert.Zero(t, stored.NumReviews)
}

func TestReviewService_DeleteReview_AdminOverridesOwnership(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, fixtures.service.DeleteReview(context.Background(), 99, true, review.ID))
	assert.Empty(t, fixtures.factory.reviewRepo.reviews)
}

func TestReviewService_DeleteReview_NotOwnerNotAdmin(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	review, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)

	err = fixtures.service.DeleteReview(context.Background(), 8, false, review.ID)
	requireAppError(t, err, "FORBIDDEN")
}

func TestReviewService_ListReviews(t *testing.T) {
	fixtures := createTestReviewService(t)
	product := fixtures.seedProduct(t)

	_, err := fixtures.service.CreateReview(context.Background(), 7, product.ID, usecase.ReviewInput{Rating: 4})
	require.NoError(t, err)
	_, err = fixtures.service.CreateReview(context.Background(), 8, product.ID, usecase.ReviewInput{Rating: 3})
	require.NoError(t, err)

	reviews, err := fixtures.service.ListReviews(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
