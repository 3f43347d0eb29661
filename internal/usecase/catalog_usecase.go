package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// ProductInput defines the editable fields of a product.
type ProductInput struct {
	CategoryID  uint
	Name        string
	Slug        string
	Description string
	Price       float64
	FileKey     string
	Published   bool
}

// CategoryInput defines the editable fields of a category.
type CategoryInput struct {
	Name string
	Slug string
}

// CatalogUsecase defines the interface for product and category operations.
type CatalogUsecase interface {
	// ListProducts retrieves products. Unpublished products are only
	// included when includeUnpublished is set (designer and admin surface).
	ListProducts(ctx context.Context, includeUnpublished bool) ([]*entity.Product, error)

	// GetProductBySlug retrieves a single product by slug.
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// GetProductByID retrieves a single product by ID.
	GetProductByID(ctx context.Context, id uint) (*entity.Product, error)

	// CreateProduct publishes a new product owned by the given designer.
	CreateProduct(ctx context.Context, designerID uint, input ProductInput) (*entity.Product, error)

	// UpdateProduct modifies an existing product.
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*entity.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id uint) error

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory creates a new category.
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)

	// UpdateCategory modifies an existing category.
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, id uint) error
}
