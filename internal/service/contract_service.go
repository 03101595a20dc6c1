package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/policy"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

type ContractRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	ListActiveByParty(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Contract, error)
	ListUnpaidJobs(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Job, error)
}

type ContractService struct {
	repo ContractRepository
}

func NewContractService(repo ContractRepository) *ContractService {
	return &ContractService{repo: repo}
}

// GetContract возвращает договор, если вызывающий является его стороной.
func (s *ContractService) GetContract(ctx context.Context, caller *models.Profile, id uuid.UUID) (*models.Contract, error) {
	if err := policy.RequireCaller(policy.Authenticated, caller); err != nil {
		return nil, err
	}

	contract, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return nil, apperror.ErrContractNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить договор")
	}

	if err := policy.RequireParty(caller, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts возвращает незавершённые договоры вызывающего.
func (s *ContractService) ListContracts(ctx context.Context, caller *models.Profile) ([]models.Contract, error) {
	if err := policy.RequireCaller(policy.Authenticated, caller); err != nil {
		return nil, err
	}

	contracts, err := s.repo.ListActiveByParty(ctx, caller.ID, caller.Type)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить договоры")
	}
	return contracts, nil
}

// ListUnpaidJobs возвращает неоплаченные работы по активным договорам вызывающего.
func (s *ContractService) ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]models.Job, error) {
	if err := policy.RequireCaller(policy.Authenticated, caller); err != nil {
		return nil, err
	}

	jobs, err := s.repo.ListUnpaidJobs(ctx, caller.ID, caller.Type)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить работы")
	}
	return jobs, nil
}
