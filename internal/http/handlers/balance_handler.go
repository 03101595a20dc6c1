package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contract-ledger/internal/dto"
	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
)

type Depositor interface {
	Deposit(ctx context.Context, caller *models.Profile, targetID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error)
}

// BalanceHandler пополнение баланса клиента.
type BalanceHandler struct {
	deposits Depositor
}

func NewBalanceHandler(deposits Depositor) *BalanceHandler {
	return &BalanceHandler{deposits: deposits}
}

// Deposit обрабатывает POST /balances/deposit/:userId.
func (h *BalanceHandler) Deposit(c *gin.Context) {
	caller, err := common.CurrentProfile(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	targetID, err := common.ParseUUIDParam(c, "userId")
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.DepositRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	if req.Amount == nil {
		common.Fail(c, apperror.New(apperror.ErrCodeInvalidParameter, "amount обязателен"))
		return
	}

	receipt, err := h.deposits.Deposit(c.Request.Context(), caller, targetID, *req.Amount)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, receipt)
}
