// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Items").First(&orderM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUserID retrieves all orders for a user, newest first. An order whose
// items are gone comes back with an empty item list, not an error.
func (repo *orderRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user id")
	}

	return toOrderDomainSlice(orderMs), nil
}

// List retrieves all orders, newest first, with items.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainSlice(orderMs), nil
}

// ExistsByCode reports whether an order with the given order code exists.
func (repo *orderRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_code = ?", code).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check order code")
	}

	return count > 0, nil
}

// Create persists an order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	// Items are created separately so the usecase controls sequencing.
	orderM.Items = nil

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order code already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// CreateItems persists the line items of an order.
func (repo *orderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	itemMs := make([]model.OrderItemModel, 0, len(items))
	for _, item := range items {
		itemMs = append(itemMs, model.OrderItemModel{
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&itemMs).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order items")
	}

	for i, item := range items {
		item.ID = itemMs[i].ID
	}

	return nil
}

// Update modifies an existing order row.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	orderM.Items = nil

	if err := repo.db.WithContext(ctx).Save(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	return nil
}

// DeleteItemsByOrderID removes all line items of an order.
func (repo *orderRepository) DeleteItemsByOrderID(ctx context.Context, orderID uint) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order items")
	}

	return nil
}

// DeleteItemsByUserID removes the line items of every order owned by the user.
func (repo *orderRepository) DeleteItemsByUserID(ctx context.Context, userID uint) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id IN (?)", repo.db.Model(&model.OrderModel{}).Select("id").Where("user_id = ?", userID)).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user order items")
	}

	return nil
}

// Delete removes an order row.
func (repo *orderRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// DeleteByUserID removes all order rows owned by the user.
func (repo *orderRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.OrderModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user orders")
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		OrderCode:       data.OrderCode,
		TotalAmount:     data.TotalAmount,
		Status:          entity.OrderStatus(data.Status),
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentIntentID: data.PaymentIntentID,
		TransactionID:   data.TransactionID,
		BillingName:     data.BillingName,
		BillingEmail:    data.BillingEmail,
		BillingAddress:  data.BillingAddress,
		Notes:           data.Notes,
		Items:           items,
		CreatedAt:       data.CreatedAt,
	}
}

func toOrderDomainSlice(data []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for i := range data {
		orders = append(orders, toOrderDomain(&data[i]))
	}

	return orders
}

func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Price:     data.Price,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		OrderCode:       data.OrderCode,
		TotalAmount:     data.TotalAmount,
		Status:          data.Status.String(),
		PaymentStatus:   data.PaymentStatus.String(),
		PaymentIntentID: data.PaymentIntentID,
		TransactionID:   data.TransactionID,
		BillingName:     data.BillingName,
		BillingEmail:    data.BillingEmail,
		BillingAddress:  data.BillingAddress,
		Notes:           data.Notes,
		CreatedAt:       data.CreatedAt,
	}
}
