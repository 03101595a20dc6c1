package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/policy"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

// depositCapDivisor пополнение не может превышать 1/4 от суммы неоплаченных работ.
const depositCapDivisor = 4

type ExposureCalculator interface {
	OpenExposure(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
}

type BalanceCreditor interface {
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// DepositService пополняет баланс клиента в пределах его открытых обязательств.
type DepositService struct {
	exposure ExposureCalculator
	balances BalanceCreditor
	events   EventPublisher
}

func NewDepositService(exposure ExposureCalculator, balances BalanceCreditor) *DepositService {
	return &DepositService{
		exposure: exposure,
		balances: balances,
		events:   noopPublisher{},
	}
}

// SetPublisher устанавливает получателя событий о пополнении.
func (s *DepositService) SetPublisher(p EventPublisher) {
	if p != nil {
		s.events = p
	}
}

// MaxDeposit возвращает максимально допустимую сумму пополнения для данной суммы обязательств.
func MaxDeposit(exposure decimal.Decimal) decimal.Decimal {
	return exposure.Div(decimal.NewFromInt(depositCapDivisor))
}

// Deposit зачисляет amount на счёт targetID.
func (s *DepositService) Deposit(ctx context.Context, caller *models.Profile, targetID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error) {
	if err := policy.RequireOwner(caller, targetID); err != nil {
		return nil, err
	}
	if err := policy.RequireRole(caller, models.ProfileTypeClient); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, apperror.New(apperror.ErrCodeInvalidParameter, "сумма пополнения должна быть положительной")
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, apperror.New(apperror.ErrCodeInvalidParameter, "сумма пополнения может содержать не более двух знаков после запятой")
	}

	exposure, err := s.exposure.OpenExposure(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось посчитать неоплаченные работы")
	}
	if exposure.IsZero() {
		return nil, apperror.ErrNoOpenContracts
	}
	// amount * 4 > exposure сравнивается без деления, чтобы граница 25% была точной.
	if amount.Mul(decimal.NewFromInt(depositCapDivisor)).GreaterThan(exposure) {
		return nil, apperror.ErrDepositCapExceeded.Withf("максимум %s", MaxDeposit(exposure).StringFixed(2))
	}

	balance, err := s.balances.Credit(ctx, targetID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.New(apperror.ErrCodeNotFound, "профиль не найден")
		}
		logger.Log.WithError(err).WithField("profile_id", targetID).Error("deposit: не удалось зачислить средства")
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось пополнить баланс")
	}

	receipt := &models.DepositReceipt{
		ProfileID: targetID,
		Amount:    amount,
		Balance:   balance,
	}
	logger.Log.WithFields(logrus.Fields{
		"profile_id": targetID,
		"amount":     amount.String(),
		"exposure":   exposure.String(),
	}).Info("deposit: баланс пополнен")

	if err := s.events.Publish(targetID, EventBalanceDeposited, receipt); err != nil {
		logger.Log.WithError(err).WithField("profile_id", targetID).Warn("deposit: не удалось отправить событие")
	}

	return receipt, nil
}
