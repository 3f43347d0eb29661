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

// verificationTokenRepository implements the domain.VerificationTokenRepository interface.
type verificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository is the constructor for verificationTokenRepository.
func NewVerificationTokenRepository(db *gorm.DB) repository.VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

// Create persists a new verification token.
func (repo *verificationTokenRepository) Create(ctx context.Context, token *entity.EmailVerificationToken) error {
	tokenM := fromVerificationTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("verification token already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByToken retrieves a token record by its raw token value.
func (repo *verificationTokenRepository) FindByToken(ctx context.Context, token string) (*entity.EmailVerificationToken, error) {
	var tokenM model.EmailVerificationTokenModel
	if err := repo.db.WithContext(ctx).Where("token = ?", token).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find verification token")
	}

	return toVerificationTokenDomain(&tokenM), nil
}

// DeleteByUserID removes all tokens for a user.
func (repo *verificationTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.EmailVerificationTokenModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification tokens")
	}

	return nil
}

// Delete removes a single token record by ID.
func (repo *verificationTokenRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.EmailVerificationTokenModel{}, id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification token")
	}

	return nil
}

func toVerificationTokenDomain(data *model.EmailVerificationTokenModel) *entity.EmailVerificationToken {
	if data == nil {
		return nil
	}

	return &entity.EmailVerificationToken{
		ID:        data.ID,
		UserID:    data.UserID,
		Token:     data.Token,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromVerificationTokenDomain(data *entity.EmailVerificationToken) *model.EmailVerificationTokenModel {
	if data == nil {
		return nil
	}

	return &model.EmailVerificationTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Token:     data.Token,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
