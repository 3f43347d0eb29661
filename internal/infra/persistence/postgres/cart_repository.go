package postgres

import (
	"context"
	"encoding/json"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the domain.CartRepository interface using GORM.
// The item list lives in a single JSON column and is replaced wholesale.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUserID retrieves the user's cart.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Cart, error) {
	var cartM model.CartModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user id")
	}

	return toCartDomain(&cartM)
}

// Replace upserts the user's cart, overwriting the whole item document.
func (repo *cartRepository) Replace(ctx context.Context, cart *entity.Cart) error {
	cartM, err := fromCartDomain(cart)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(cartM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace cart")
	}

	return nil
}

// DeleteByUserID removes the user's cart. Absence is not an error.
func (repo *cartRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart")
	}

	return nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) (*entity.Cart, error) {
	if data == nil {
		return nil, nil
	}

	items := make([]entity.CartItem, 0)
	if len(data.Items) > 0 {
		if err := json.Unmarshal(data.Items, &items); err != nil {
			return nil, errors.Wrap(err, "failed to decode cart items")
		}
	}

	return &entity.Cart{
		UserID:    data.UserID,
		Items:     items,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

func fromCartDomain(data *entity.Cart) (*model.CartModel, error) {
	if data == nil {
		return nil, nil
	}

	items := data.Items
	if items == nil {
		items = []entity.CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode cart items")
	}

	return &model.CartModel{
		UserID:    data.UserID,
		Items:     datatypes.JSON(raw),
		UpdatedAt: data.UpdatedAt,
	}, nil
}
