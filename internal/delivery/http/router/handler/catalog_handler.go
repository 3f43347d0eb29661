package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for product and category handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

type productRequest struct {
	CategoryID  uint    `json:"categoryId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	FileKey     string  `json:"fileKey"`
	Published   bool    `json:"published"`
}

type categoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListProducts returns the published catalog. Designers and admins see
// unpublished products as well.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	includeUnpublished := false
	if user := deliverycontext.GetCurrentUser(c); user != nil && user.Role.CanManageProducts() {
		includeUnpublished = true
	}

	products, err := h.uc.ListProducts(c.Request().Context(), includeUnpublished)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct returns a single product by slug. The route param is named id
// because the sibling reviews routes share the path segment, but its value is
// the product slug.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProductBySlug(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	// Unpublished products are invisible to the public surface.
	if !product.Published {
		if user := deliverycontext.GetCurrentUser(c); user == nil || !user.Role.CanManageProducts() {
			return domainerrors.ErrProductNotFound
		}
	}

	return response.Success(c, http.StatusOK, product, "")
}

// CreateProduct publishes a new product owned by the calling designer.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), user.ID, toProductInput(input))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct modifies an existing product. Designers may only touch their
// own products; admins may touch any.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.ensureProductAccess(c, id); err != nil {
		return err
	}

	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, toProductInput(input))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a product.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.ensureProductAccess(c, id); err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// ListCategories returns all categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// CreateCategory creates a category. Admin surface.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var input categoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), usecase.CategoryInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// UpdateCategory modifies a category. Admin surface.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input categoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, usecase.CategoryInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// DeleteCategory removes a category. Admin surface.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

// ensureProductAccess lets admins through and checks ownership for designers.
func (h *CatalogHandler) ensureProductAccess(c echo.Context, productID uint) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}
	if user.Role == entity.RoleAdmin {
		return nil
	}

	product, err := h.uc.GetProductByID(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}
	if product.DesignerID != user.ID {
		return domainerrors.ErrForbidden
	}

	return nil
}

func toProductInput(input productRequest) usecase.ProductInput {
	return usecase.ProductInput{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		FileKey:     input.FileKey,
		Published:   input.Published,
	}
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrValidationFailed.WithMessage("Invalid " + name + " parameter")
	}

	return uint(id), nil
}
