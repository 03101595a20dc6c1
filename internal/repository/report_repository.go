package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/contract-ledger/internal/models"
)

// ReportRepository агрегирует оплаченные работы по завершённым договорам.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BestProfession возвращает профессию с наибольшим заработком в полуинтервале [from, to).
// При равенстве сумм выигрывает профессия, идущая раньше по алфавиту. nil, если оплат не было.
func (r *ReportRepository) BestProfession(ctx context.Context, from, to time.Time) (*models.ProfessionEarning, error) {
	rows := []models.ProfessionEarning{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.profession, SUM(j.price) AS total_earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid = TRUE
		  AND c.status = $1
		  AND j.payment_date >= $2 AND j.payment_date < $3
		GROUP BY p.profession
		ORDER BY total_earned DESC, p.profession ASC
		LIMIT 1
	`, models.ContractStatusTerminated, from, to)
	if err != nil {
		return nil, fmt.Errorf("report repository: best profession %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// BestClients возвращает клиентов, заплативших больше всех в полуинтервале [from, to).
func (r *ReportRepository) BestClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error) {
	rows := []models.ClientPayment{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid = TRUE
		  AND c.status = $1
		  AND j.payment_date >= $2 AND j.payment_date < $3
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY paid DESC, full_name ASC, p.id ASC
		LIMIT $4
	`, models.ContractStatusTerminated, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("report repository: best clients %w", err)
	}
	return rows, nil
}
