package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/usecase"
)

func createTestCatalogService(t *testing.T) (usecase.CatalogUsecase, *fakeFactory) {
	t.Helper()

	factory := newFakeFactory()
	service := NewCatalogService(CatalogServiceParams{
		ProductRepo:  factory.productRepo,
		CategoryRepo: factory.categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return service, factory
}

func validProductInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:      "Silk blouse pattern",
		Slug:      "silk-blouse-pattern",
		Price:     24.50,
		Published: true,
	}
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	service, _ := createTestCatalogService(t)

	product, err := service.CreateProduct(context.Background(), 3, validProductInput())
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, uint(3), product.DesignerID)
	assert.Equal(t, "silk-blouse-pattern", product.Slug)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	service, _ := createTestCatalogService(t)

	input := validProductInput()
	input.Name = "   "
	_, err := service.CreateProduct(context.Background(), 3, input)
	appErr := requireAppError(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "Product name is required", appErr.Message())

	input = validProductInput()
	input.Price = -1
	_, err = service.CreateProduct(context.Background(), 3, input)
	requireAppError(t, err, "VALIDATION_FAILED")
}

// Public listings only ever see published products.
func TestCatalogService_ListProducts_PublishedFilter(t *testing.T) {
	service, _ := createTestCatalogService(t)

	_, err := service.CreateProduct(context.Background(), 3, validProductInput())
	require.NoError(t, err)

	draft := validProductInput()
	draft.Slug = "draft-pattern"
	draft.Published = false
	_, err = service.CreateProduct(context.Background(), 3, draft)
	require.NoError(t, err)

	public, err := service.ListProducts(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := service.ListProducts(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogService_GetProductBySlug(t *testing.T) {
	service, _ := createTestCatalogService(t)

	created, err := service.CreateProduct(context.Background(), 3, validProductInput())
	require.NoError(t, err)

	product, err := service.GetProductBySlug(context.Background(), "silk-blouse-pattern")
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)

	_, err = service.GetProductBySlug(context.Background(), "no-such-slug")
	requireAppError(t, err, "PRODUCT_NOT_FOUND")
}

// Rating aggregates are derived from reviews; a product update must not touch
// them.
func TestCatalogService_UpdateProduct_PreservesRating(t *testing.T) {
	service, factory := createTestCatalogService(t)

	created, err := service.CreateProduct(context.Background(), 3, validProductInput())
	require.NoError(t, err)
	require.NoError(t, factory.productRepo.UpdateRating(context.Background(), created.ID, 4.5, 12))

	input := validProductInput()
	input.Price = 29.00
	updated, err := service.UpdateProduct(context.Background(), created.ID, input)
	require.NoError(t, err)

	assert.InDelta(t, 29.00, updated.Price, 0.001)
	stored := factory.productRepo.products[created.ID]
	assert.InDelta(t, 4.5, stored.Rating, 0.001)
	assert.Equal(t, 12, stored.NumReviews)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	service, _ := createTestCatalogService(t)

	err := service.DeleteProduct(context.Background(), 404)
	requireAppError(t, err, "PRODUCT_NOT_FOUND")
}

func TestCatalogService_CategoryCRUD(t *testing.T) {
	service, _ := createTestCatalogService(t)

	category, err := service.CreateCategory(context.Background(), usecase.CategoryInput{
		Name: "Outerwear",
		Slug: "outerwear",
	})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)

	updated, err := service.UpdateCategory(context.Background(), category.ID, usecase.CategoryInput{
		Name: "Outerwear & Coats",
		Slug: "outerwear",
	})
	require.NoError(t, err)
	assert.Equal(t, "Outerwear & Coats", updated.Name)

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	require.NoError(t, service.DeleteCategory(context.Background(), category.ID))

	err = service.DeleteCategory(context.Background(), category.ID)
	requireAppError(t, err, "CATEGORY_NOT_FOUND")
}

// Deleting a category leaves its products in place with a dangling reference.
func TestCatalogService_DeleteCategory_KeepsProducts(t *testing.T) {
	service, factory := createTestCatalogService(t)

	category, err := service.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Outerwear", Slug: "outerwear"})
	require.NoError(t, err)

	input := validProductInput()
	input.CategoryID = category.ID
	product, err := service.CreateProduct(context.Background(), 3, input)
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(context.Background(), category.ID))

	stored := factory.productRepo.products[product.ID]
	assert.Equal(t, category.ID, stored.CategoryID)
}

func TestCatalogService_ListCategoriesEmpty(t *testing.T) {
	service, _ := createTestCatalogService(t)

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = service.UpdateCategory(context.Background(), 404, usecase.CategoryInput{Name: "X", Slug: "x"})
	requireAppError(t, err, "CATEGORY_NOT_FOUND")
}
