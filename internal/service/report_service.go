package service

import (
	"context"
	"time"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/validation"
)

type ReportRepository interface {
	BestProfession(ctx context.Context, from, to time.Time) (*models.ProfessionEarning, error)
	BestClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error)
}

// ReportService строит отчёты по оплаченным работам. Только чтение.
type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// BestProfession возвращает профессию, заработавшую больше всех в диапазоне [start, end].
func (s *ReportService) BestProfession(ctx context.Context, start, end string) (models.ProfessionReport, error) {
	rng, err := validation.ParseReportRange(start, end)
	if err != nil {
		return models.ProfessionReport{}, err
	}

	top, err := s.repo.BestProfession(ctx, rng.From, rng.To)
	if err != nil {
		return models.ProfessionReport{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось построить отчёт")
	}
	if top == nil {
		return models.ProfessionReport{NoData: true}, nil
	}
	return models.ProfessionReport{Top: top}, nil
}

// BestClients возвращает клиентов, заплативших больше всех в диапазоне [start, end].
// limit по умолчанию равен 2.
func (s *ReportService) BestClients(ctx context.Context, start, end string, limit *int) (models.ClientsReport, error) {
	rng, err := validation.ParseReportRange(start, end)
	if err != nil {
		return models.ClientsReport{}, err
	}

	n := validation.DefaultBestClientsLimit
	if limit != nil {
		if err := validation.ValidateLimit(*limit); err != nil {
			return models.ClientsReport{}, err
		}
		n = *limit
	}

	rows, err := s.repo.BestClients(ctx, rng.From, rng.To, n)
	if err != nil {
		return models.ClientsReport{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось построить отчёт")
	}
	if len(rows) == 0 {
		return models.ClientsReport{NoData: true}, nil
	}
	return models.ClientsReport{Rows: rows}, nil
}
