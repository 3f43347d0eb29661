// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
)

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by ID.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindBySlug retrieves a single product by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// List retrieves products, optionally restricted to published ones.
	List(ctx context.Context, publishedOnly bool) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateRating overwrites the derived rating aggregate of a product.
	UpdateRating(ctx context.Context, productID uint, rating float64, numReviews int) error

	// Delete removes a product.
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by ID.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// List retrieves all categories.
	List(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id uint) error
}

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByID retrieves a single review by ID.
	FindByID(ctx context.Context, id uint) (*entity.Review, error)

	// FindByProductID retrieves all reviews of a product.
	FindByProductID(ctx context.Context, productID uint) ([]*entity.Review, error)

	// FindByProductAndUser retrieves the user's review of a product, if any.
	FindByProductAndUser(ctx context.Context, productID, userID uint) (*entity.Review, error)

	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uint) error

	// DeleteByUserID removes all reviews written by a user and returns the
	// IDs of the products whose aggregates must be recomputed.
	DeleteByUserID(ctx context.Context, userID uint) ([]uint, error)
}
