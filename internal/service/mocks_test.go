package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

type mockJobFinder struct {
	mock.Mock
}

func (m *mockJobFinder) FindPayableJob(ctx context.Context, clientID, jobID uuid.UUID) (*models.PayableJob, error) {
	args := m.Called(ctx, clientID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayableJob), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) SettleJob(ctx context.Context, job models.PayableJob, paidAt time.Time) error {
	args := m.Called(ctx, job, paidAt)
	return args.Error(0)
}

type mockExposure struct {
	mock.Mock
}

func (m *mockExposure) OpenExposure(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCreditor struct {
	mock.Mock
}

func (m *mockCreditor) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) BestProfession(ctx context.Context, from, to time.Time) (*models.ProfessionEarning, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionEarning), args.Error(1)
}

func (m *mockReportRepo) BestClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientPayment), args.Error(1)
}

type mockContractRepo struct {
	mock.Mock
}

func (m *mockContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *mockContractRepo) ListActiveByParty(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Contract, error) {
	args := m.Called(ctx, profileID, profileType)
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *mockContractRepo) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID, profileType string) ([]models.Job, error) {
	args := m.Called(ctx, profileID, profileType)
	return args.Get(0).([]models.Job), args.Error(1)
}

type mockSeedRepo struct {
	mock.Mock
}

func (m *mockSeedRepo) Replace(ctx context.Context, data repository.SeedData) error {
	return m.Called(ctx, data).Error(0)
}

type recordedEvent struct {
	profileID uuid.UUID
	event     string
	data      any
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(profileID uuid.UUID, event string, data any) error {
	p.events = append(p.events, recordedEvent{profileID: profileID, event: event, data: data})
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
