package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/repository/common"
)

var ErrProfileNotFound = fmt.Errorf("profile: %w", common.ErrNotFound)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID возвращает профиль по ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return common.GetByID[models.Profile](ctx, r.db, "profiles", id, ErrProfileNotFound)
}

// Credit атомарно увеличивает баланс и возвращает новое значение.
func (r *ProfileRepository) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, `
		UPDATE profiles SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`, id, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrProfileNotFound
		}
		return decimal.Zero, fmt.Errorf("profile repository: credit %w", err)
	}
	return balance, nil
}
