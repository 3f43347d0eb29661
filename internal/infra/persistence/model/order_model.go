package model

import "time"

// OrderModel mirrors the 'orders' table. OrderCode carries a unique index:
// the generation loop retries on collision, the index closes the race between
// two concurrent checkouts drawing the same code.
type OrderModel struct {
	ID              uint    `gorm:"primaryKey"`
	UserID          uint    `gorm:"index;not null"`
	OrderCode       string  `gorm:"type:varchar(8);uniqueIndex;not null"`
	TotalAmount     float64 `gorm:"not null"`
	Status          string  `gorm:"type:varchar(20);not null"`
	PaymentStatus   string  `gorm:"type:varchar(20);not null"`
	PaymentIntentID string  `gorm:"type:varchar(255)"`
	TransactionID   string  `gorm:"type:varchar(255)"`
	BillingName     string  `gorm:"type:varchar(100)"`
	BillingEmail    string  `gorm:"type:varchar(255)"`
	BillingAddress  string  `gorm:"type:text"`
	Notes           string  `gorm:"type:text"`
	CreatedAt       time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the snapshot taken
// at order creation, not a live reference to products.price.
type OrderItemModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"index;not null"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
