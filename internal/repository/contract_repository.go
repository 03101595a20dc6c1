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

var (
	ErrContractNotFound = fmt.Errorf("contract: %w", common.ErrNotFound)
	ErrJobNotPayable    = errors.New("job not found or already paid")
)

type ContractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// partyColumn возвращает колонку договора, по которой профиль с данной ролью является стороной.
func partyColumn(profileType string) string {
	if profileType == models.ProfileTypeClient {
		return "client_id"
	}
	return "contractor_id"
}

// GetByID возвращает договор по ID.
func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return common.GetByID[models.Contract](ctx, r.db, "contracts", id, ErrContractNotFound)
}

// ListActiveByParty возвращает незавершённые договоры профиля.
func (r *ContractRepository) ListActiveByParty(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Contract, error) {
	contracts := []models.Contract{}
	query := fmt.Sprintf(`
		SELECT * FROM contracts
		WHERE %s = $1 AND status <> $2
		ORDER BY created_at, id
	`, partyColumn(profileType))
	if err := r.db.SelectContext(ctx, &contracts, query, profileID, models.ContractStatusTerminated); err != nil {
		return nil, fmt.Errorf("contract repository: list active %w", err)
	}
	return contracts, nil
}

// ListUnpaidJobs возвращает неоплаченные работы по договорам профиля в статусе in_progress.
func (r *ContractRepository) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Job, error) {
	jobs := []models.Job{}
	query := fmt.Sprintf(`
		SELECT j.* FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.%s = $1 AND c.status = $2 AND j.paid = FALSE
		ORDER BY j.created_at, j.id
	`, partyColumn(profileType))
	if err := r.db.SelectContext(ctx, &jobs, query, profileID, models.ContractStatusInProgress); err != nil {
		return nil, fmt.Errorf("contract repository: list unpaid jobs %w", err)
	}
	return jobs, nil
}

// FindPayableJob ищет неоплаченную работу в договоре клиента в статусе in_progress.
func (r *ContractRepository) FindPayableJob(ctx context.Context, clientID, jobID uuid.UUID) (*models.PayableJob, error) {
	var payable models.PayableJob
	err := r.db.GetContext(ctx, &payable, `
		SELECT j.id AS job_id, j.price, c.id AS contract_id, c.client_id, c.contractor_id
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = $1 AND j.paid = FALSE AND c.client_id = $2 AND c.status = $3
	`, jobID, clientID, models.ContractStatusInProgress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotPayable
		}
		return nil, fmt.Errorf("contract repository: find payable job %w", err)
	}
	return &payable, nil
}

// OpenExposure суммирует цены неоплаченных работ по договорам клиента в статусе in_progress.
func (r *ContractRepository) OpenExposure(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var exposure decimal.Decimal
	err := r.db.GetContext(ctx, &exposure, `
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = $1 AND c.status = $2 AND j.paid = FALSE
	`, clientID, models.ContractStatusInProgress)
	if err != nil {
		return decimal.Zero, fmt.Errorf("contract repository: open exposure %w", err)
	}
	return exposure, nil
}
