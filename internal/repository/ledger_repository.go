package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/repository/common"
)

var (
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrJobAlreadyPaid         = fmt.Errorf("job already paid: %w", common.ErrConflict)
	ErrContractNotInProgress  = fmt.Errorf("contract is not in progress: %w", common.ErrConflict)
	ErrSettlementPartyMissing = fmt.Errorf("settlement party: %w", common.ErrNotFound)
)

// LedgerRepository выполняет денежные операции над балансами в одной транзакции.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// SettleJob оплачивает работу: списывает цену с клиента, зачисляет подрядчику,
// завершает договор и помечает работу оплаченной. Либо все четыре записи, либо ни одной.
//
// Сначала строка договора и обе строки профилей блокируются в фиксированном порядке,
// после чего четыре независимых обновления отправляются параллельно. Каждое обновление
// условное, поэтому повторная или конкурентная оплата той же работы не пройдёт.
func (r *LedgerRepository) SettleJob(ctx context.Context, job models.PayableJob, paidAt time.Time) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockContract(ctx, tx, job.ContractID); err != nil {
			return err
		}
		if err := lockProfiles(ctx, tx, job.ClientID, job.ContractorID); err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			res, err := tx.ExecContext(gctx, `
				UPDATE jobs SET paid = TRUE, payment_date = $3, updated_at = NOW()
				WHERE id = $1 AND contract_id = $2 AND paid = FALSE
			`, job.JobID, job.ContractID, paidAt)
			if err != nil {
				return fmt.Errorf("ledger repository: mark job paid %w", err)
			}
			return common.ExpectRows(res, 1, ErrJobAlreadyPaid)
		})

		g.Go(func() error {
			res, err := tx.ExecContext(gctx, `
				UPDATE profiles SET balance = balance - $2, updated_at = NOW()
				WHERE id = $1 AND balance >= $2
			`, job.ClientID, job.Price)
			if err != nil {
				return fmt.Errorf("ledger repository: debit client %w", err)
			}
			return common.ExpectRows(res, 1, ErrInsufficientFunds)
		})

		g.Go(func() error {
			res, err := tx.ExecContext(gctx, `
				UPDATE profiles SET balance = balance + $2, updated_at = NOW()
				WHERE id = $1
			`, job.ContractorID, job.Price)
			if err != nil {
				return fmt.Errorf("ledger repository: credit contractor %w", err)
			}
			return common.ExpectRows(res, 1, ErrSettlementPartyMissing)
		})

		g.Go(func() error {
			res, err := tx.ExecContext(gctx, `
				UPDATE contracts SET status = $2, updated_at = NOW()
				WHERE id = $1 AND status = $3
			`, job.ContractID, models.ContractStatusTerminated, models.ContractStatusInProgress)
			if err != nil {
				return fmt.Errorf("ledger repository: terminate contract %w", err)
			}
			return common.ExpectRows(res, 1, ErrContractNotInProgress)
		})

		return g.Wait()
	})
}

// lockContract блокирует договор, пока он в статусе in_progress.
func lockContract(ctx context.Context, tx *sqlx.Tx, contractID uuid.UUID) error {
	var ids []uuid.UUID
	err := tx.SelectContext(ctx, &ids, `
		SELECT id FROM contracts WHERE id = $1 AND status = $2 FOR UPDATE
	`, contractID, models.ContractStatusInProgress)
	if err != nil {
		return fmt.Errorf("ledger repository: lock contract %w", err)
	}
	if len(ids) == 0 {
		return ErrContractNotInProgress
	}
	return nil
}

// lockProfiles блокирует профили в порядке возрастания ID, чтобы конкурентные оплаты не взаимоблокировались.
func lockProfiles(ctx context.Context, tx *sqlx.Tx, clientID, contractorID uuid.UUID) error {
	var ids []uuid.UUID
	err := tx.SelectContext(ctx, &ids, `
		SELECT id FROM profiles WHERE id IN ($1, $2) ORDER BY id FOR UPDATE
	`, clientID, contractorID)
	if err != nil {
		return fmt.Errorf("ledger repository: lock profiles %w", err)
	}
	if len(ids) != 2 {
		return ErrSettlementPartyMissing
	}
	return nil
}
