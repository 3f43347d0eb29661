// Package entity contains the core business objects of the project.
package entity

import "time"

// CartItem is one line entry in a cart. Carts are unstructured working state:
// quantities and prices here are advisory until checkout snapshots them.
type CartItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// Cart holds a user's pre-checkout selection. At most one cart exists per
// user, and every write replaces the whole item list (no merging).
type Cart struct {
	UserID    uint       `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
