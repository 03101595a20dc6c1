package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/policy"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

type PayableJobFinder interface {
	FindPayableJob(ctx context.Context, clientID, jobID uuid.UUID) (*models.PayableJob, error)
}

type LedgerRepository interface {
	SettleJob(ctx context.Context, job models.PayableJob, paidAt time.Time) error
}

// SettlementService оплачивает работы: переводит цену работы от клиента подрядчику.
type SettlementService struct {
	jobs   PayableJobFinder
	ledger LedgerRepository
	events EventPublisher
	now    func() time.Time
}

func NewSettlementService(jobs PayableJobFinder, ledger LedgerRepository) *SettlementService {
	return &SettlementService{
		jobs:   jobs,
		ledger: ledger,
		events: noopPublisher{},
		now:    time.Now,
	}
}

// SetPublisher устанавливает получателя событий об оплате.
func (s *SettlementService) SetPublisher(p EventPublisher) {
	if p != nil {
		s.events = p
	}
}

// PayJob оплачивает работу jobID от имени клиента caller.
func (s *SettlementService) PayJob(ctx context.Context, caller *models.Profile, jobID uuid.UUID) (*models.Settlement, error) {
	if err := policy.RequireRole(caller, models.ProfileTypeClient); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindPayableJob(ctx, caller.ID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotPayable) {
			return nil, apperror.ErrJobNotPayable
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось найти работу")
	}

	if caller.Balance.LessThan(job.Price) {
		return nil, apperror.ErrInsufficientFunds
	}

	paidAt := s.now().UTC()
	fields := logrus.Fields{
		"job_id":        job.JobID,
		"contract_id":   job.ContractID,
		"client_id":     job.ClientID,
		"contractor_id": job.ContractorID,
		"amount":        job.Price.String(),
	}

	if err := s.ledger.SettleJob(ctx, *job, paidAt); err != nil {
		switch {
		case errors.Is(err, repository.ErrJobAlreadyPaid), errors.Is(err, repository.ErrContractNotInProgress):
			logger.Log.WithFields(fields).Info("settlement: работа уже оплачена конкурентным запросом")
			return nil, apperror.ErrJobNotPayable
		case errors.Is(err, repository.ErrInsufficientFunds):
			logger.Log.WithFields(fields).Info("settlement: баланс изменился до списания")
			return nil, apperror.ErrInsufficientFunds
		default:
			logger.Log.WithFields(fields).WithError(err).Error("settlement: транзакция откатилась")
			return nil, apperror.Wrap(err, apperror.ErrCodeSettlementFailed, "не удалось провести оплату, попробуйте ещё раз")
		}
	}

	settlement := &models.Settlement{
		JobID:        job.JobID,
		ContractID:   job.ContractID,
		ClientID:     job.ClientID,
		ContractorID: job.ContractorID,
		Amount:       job.Price,
		PaidAt:       paidAt,
	}
	logger.Log.WithFields(fields).Info("settlement: работа оплачена")

	s.publish(settlement.ClientID, settlement)
	s.publish(settlement.ContractorID, settlement)

	return settlement, nil
}

func (s *SettlementService) publish(profileID uuid.UUID, settlement *models.Settlement) {
	if err := s.events.Publish(profileID, EventJobPaid, settlement); err != nil {
		logger.Log.WithError(err).WithField("profile_id", profileID).Warn("settlement: не удалось отправить событие")
	}
}
