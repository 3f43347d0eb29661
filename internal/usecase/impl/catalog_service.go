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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts retrieves products, restricted to published ones for the
// public surface.
func (srv *catalogService) ListProducts(ctx context.Context, includeUnpublished bool) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, !includeUnpublished)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProductBySlug retrieves a single product by slug.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// GetProductByID retrieves a single product by ID.
func (srv *catalogService) GetProductByID(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct publishes a new product owned by the given designer.
func (srv *catalogService) CreateProduct(ctx context.Context, designerID uint, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		DesignerID:  designerID,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
		Price:       input.Price,
		FileKey:     input.FileKey,
		Published:   input.Published,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created",
		slog.Uint64("productID", uint64(product.ID)), slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct modifies an existing product. The rating aggregate fields are
// never writable through this path.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uint, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product for update")
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Slug = strings.TrimSpace(input.Slug)
	product.Description = input.Description
	product.Price = input.Price
	product.FileKey = input.FileKey
	product.Published = input.Published

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Uint64("productID", uint64(id)))

	return nil
}

// ListCategories retrieves all categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory creates a new category.
func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CategoryInput) (*entity.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name: strings.TrimSpace(input.Name),
		Slug: strings.TrimSpace(input.Slug),
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory modifies an existing category.
func (srv *catalogService) UpdateCategory(ctx context.Context, id uint, input usecase.CategoryInput) (*entity.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category for update")
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Slug = strings.TrimSpace(input.Slug)

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Products keep their category id; the
// catalog treats a dangling reference as uncategorized.
func (srv *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

func validateProductInput(input usecase.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Product name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Product slug is required")
	}
	if input.Price < 0 {
		return domainerrors.ErrValidationFailed.WithMessage("Product price must not be negative")
	}

	return nil
}

func validateCategoryInput(input usecase.CategoryInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Category name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Category slug is required")
	}

	return nil
}
