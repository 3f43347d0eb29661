// Package entity contains the core business objects of the project.
package entity

import "time"

// Product is a downloadable digital fashion-design asset offered in the shop.
type Product struct {
	ID          uint      `json:"id"`
	DesignerID  uint      `json:"designerId"` // The designer or admin account that published the asset.
	CategoryID  uint      `json:"categoryId"` // Owning category; zero means uncategorized.
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // URL-safe identifier, unique across products.
	Description string    `json:"description"`
	Price       float64   `json:"price"`   // Current list price. Orders snapshot it; they never reference it live.
	FileKey     string    `json:"fileKey"` // Storage reference for the downloadable asset.
	Published   bool      `json:"published"`
	Rating      float64   `json:"rating"`     // Derived: average of review ratings. Recomputed after every review write.
	NumReviews  int       `json:"numReviews"` // Derived: count of review rows.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups products in the storefront navigation.
type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // Unique across categories.
	CreatedAt time.Time `json:"createdAt"`
}

// Review is a customer rating of a product. One review per user per product.
type Review struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	UserID    uint      `json:"userId"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
