package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uint    `gorm:"primaryKey"`
	DesignerID  uint    `gorm:"index;not null"`
	CategoryID  uint    `gorm:"index"`
	Name        string  `gorm:"type:varchar(200);not null"`
	Slug        string  `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	FileKey     string  `gorm:"type:varchar(255)"`
	Published   bool    `gorm:"not null;default:false"`
	Rating      float64 `gorm:"not null;default:0"`
	NumReviews  int     `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	Slug      string `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ReviewModel mirrors the 'reviews' table. One review per user per product.
type ReviewModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// CartModel mirrors the 'carts' table. Items is an unstructured JSON document
// replaced wholesale on every write.
type CartModel struct {
	UserID    uint           `gorm:"primaryKey"`
	Items     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// SettingModel mirrors the 'settings' table.
type SettingModel struct {
	Key       string `gorm:"type:varchar(100);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SettingModel) TableName() string {
	return "settings"
}
