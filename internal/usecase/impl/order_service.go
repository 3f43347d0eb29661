package impl

import (
	"context"
	"log/slog"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/errors"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager         repository.TransactionManager
	orderRepo         repository.OrderRepository
	codeSource        service.OrderCodeSource
	strictTransitions bool
	codeMaxAttempts   int
	logger            *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	CodeSource service.OrderCodeSource
	Config     *config.Config
	Logger     *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	strict := false
	maxAttempts := 10
	if params.Config != nil && params.Config.Orders != nil {
		strict = params.Config.Orders.StrictTransitions
		if params.Config.Orders.CodeMaxAttempts > 0 {
			maxAttempts = params.Config.Orders.CodeMaxAttempts
		}
	}

	return &orderService{
		txManager:         params.TxManager,
		orderRepo:         params.OrderRepo,
		codeSource:        params.CodeSource,
		strictTransitions: strict,
		codeMaxAttempts:   maxAttempts,
		logger:            params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout creates an order from the requested items. Unit prices are
// snapshotted from the product rows inside the transaction; the order, its
// items and the cart clear all commit or roll back together.
func (srv *orderService) Checkout(ctx context.Context, userID uint, input usecase.CheckoutInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Item quantity must be positive")
		}
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		productRepo := repoFactory.ProductRepo()

		code, err := srv.allocateOrderCode(ctx, orderRepo)
		if err != nil {
			return err
		}

		order := &entity.Order{
			UserID:         userID,
			OrderCode:      code,
			Status:         entity.OrderStatusPending,
			PaymentStatus:  entity.PaymentStatusUnpaid,
			BillingName:    input.BillingName,
			BillingEmail:   input.BillingEmail,
			BillingAddress: input.BillingAddress,
			Notes:          input.Notes,
		}

		items := make([]*entity.OrderItem, 0, len(input.Items))
		var total float64
		for _, requested := range input.Items {
			product, err := productRepo.FindByID(ctx, requested.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound
				}

				return errors.Wrap(err, "failed to load product for checkout")
			}
			if !product.Published {
				return domainerrors.ErrProductNotFound
			}

			items = append(items, &entity.OrderItem{
				ProductID: product.ID,
				Quantity:  requested.Quantity,
				Price:     product.Price,
			})
			total += product.Price * float64(requested.Quantity)
		}
		order.TotalAmount = total

		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := orderRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		order.Items = items

		if err := repoFactory.CartRepo().DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after checkout")
		}

		created = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order created",
		slog.Uint64("orderID", uint64(created.ID)),
		slog.String("orderCode", created.OrderCode),
		slog.Uint64("userID", uint64(userID)))

	return created, nil
}

// GetOrder retrieves a single order.
func (srv *orderService) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListOrders retrieves all orders.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListUserOrders retrieves the orders owned by a user.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uint) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

// UpdateStatus moves the fulfilment axis of an order. Overwrites are
// permissive unless strict transitions are configured.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uint, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Unknown order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order for status update")
	}

	if srv.strictTransitions && order.Status != status && !order.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrIllegalStatusTransition.WithDetails(
			order.Status.String() + " -> " + status.String())
	}

	order.Status = status
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Uint64("orderID", uint64(orderID)), slog.String("status", status.String()))

	return order, nil
}

// UpdatePaymentStatus moves the payment axis of an order. A non-empty
// paymentIntentID is stored alongside the status.
func (srv *orderService) UpdatePaymentStatus(ctx context.Context, orderID uint, status entity.PaymentStatus, paymentIntentID string) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Unknown payment status")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order for payment update")
	}

	if srv.strictTransitions && order.PaymentStatus != status && !order.PaymentStatus.CanTransitionTo(status) {
		return nil, domainerrors.ErrIllegalStatusTransition.WithDetails(
			order.PaymentStatus.String() + " -> " + status.String())
	}

	order.PaymentStatus = status
	if paymentIntentID != "" {
		order.PaymentIntentID = paymentIntentID
	}
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update payment status")
	}

	srv.log(ctx).Info("Payment status updated",
		slog.Uint64("orderID", uint64(orderID)), slog.String("paymentStatus", status.String()))

	return order, nil
}

// DeleteOrder removes an order and its items in one transaction, items first.
func (srv *orderService) DeleteOrder(ctx context.Context, orderID uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		if err := orderRepo.DeleteItemsByOrderID(ctx, orderID); err != nil {
			return errors.Wrap(err, "failed to delete order items")
		}

		if err := orderRepo.Delete(ctx, orderID); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Order deleted", slog.Uint64("orderID", uint64(orderID)))

	return nil
}

// HandlePaymentSucceeded marks an order paid and processing together, in one
// transaction. Driven by verified webhook events.
func (srv *orderService) HandlePaymentSucceeded(ctx context.Context, orderID uint, paymentIntentID string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order for payment event")
		}

		order.PaymentStatus = entity.PaymentStatusPaid
		order.Status = entity.OrderStatusProcessing
		if paymentIntentID != "" {
			order.PaymentIntentID = paymentIntentID
		}

		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Payment succeeded",
		slog.Uint64("orderID", uint64(orderID)), slog.String("paymentIntentID", paymentIntentID))

	return nil
}

// allocateOrderCode draws candidate codes until one is free, bounded so a
// pathological collision streak surfaces as an error instead of spinning.
func (srv *orderService) allocateOrderCode(ctx context.Context, orderRepo repository.OrderRepository) (string, error) {
	for attempt := 0; attempt < srv.codeMaxAttempts; attempt++ {
		code, err := srv.codeSource.Next()
		if err != nil {
			return "", errors.Wrap(err, "failed to draw order code")
		}

		taken, err := orderRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", errors.Wrap(err, "failed to check order code")
		}
		if !taken {
			return code, nil
		}
	}

	return "", domainerrors.ErrOrderCodeExhausted
}
