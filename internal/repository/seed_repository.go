package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/repository/common"
)

// SeedData набор сущностей для заполнения пустой базы.
type SeedData struct {
	Profiles  []models.Profile
	Contracts []models.Contract
	Jobs      []models.Job
}

type SeedRepository struct {
	db *sqlx.DB
}

func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// Replace очищает таблицы и вставляет данные одной транзакцией.
func (r *SeedRepository) Replace(ctx context.Context, data SeedData) error {
	if err := data.validate(); err != nil {
		return err
	}

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `TRUNCATE jobs, contracts, profiles`); err != nil {
			return fmt.Errorf("seed repository: truncate %w", err)
		}

		profiles := common.NewBatchInserter(tx,
			`INSERT INTO profiles (id, first_name, last_name, profession, balance, type)`, 6, 100)
		for _, p := range data.Profiles {
			if err := profiles.Add(ctx, p.ID, p.FirstName, p.LastName, p.Profession, p.Balance, p.Type); err != nil {
				return fmt.Errorf("seed repository: profiles %w", err)
			}
		}
		if err := profiles.Flush(ctx); err != nil {
			return fmt.Errorf("seed repository: profiles %w", err)
		}

		contracts := common.NewBatchInserter(tx,
			`INSERT INTO contracts (id, terms, status, client_id, contractor_id)`, 5, 100)
		for _, c := range data.Contracts {
			if err := contracts.Add(ctx, c.ID, c.Terms, c.Status, c.ClientID, c.ContractorID); err != nil {
				return fmt.Errorf("seed repository: contracts %w", err)
			}
		}
		if err := contracts.Flush(ctx); err != nil {
			return fmt.Errorf("seed repository: contracts %w", err)
		}

		jobs := common.NewBatchInserter(tx,
			`INSERT INTO jobs (id, description, price, paid, payment_date, contract_id)`, 6, 100)
		for _, j := range data.Jobs {
			if err := jobs.Add(ctx, j.ID, j.Description, j.Price, j.Paid, j.PaymentDate, j.ContractID); err != nil {
				return fmt.Errorf("seed repository: jobs %w", err)
			}
		}
		if err := jobs.Flush(ctx); err != nil {
			return fmt.Errorf("seed repository: jobs %w", err)
		}

		return nil
	})
}

func (d SeedData) validate() error {
	for _, p := range d.Profiles {
		if _, ok := models.ValidProfileTypes[p.Type]; !ok {
			return fmt.Errorf("seed repository: profile %s has unknown type %q", p.ID, p.Type)
		}
	}
	for _, c := range d.Contracts {
		if _, ok := models.ValidContractStatuses[c.Status]; !ok {
			return fmt.Errorf("seed repository: contract %s has unknown status %q", c.ID, c.Status)
		}
	}
	return nil
}
