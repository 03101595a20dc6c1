package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/models"
)

type ContractReader interface {
	GetContract(ctx context.Context, caller *models.Profile, id uuid.UUID) (*models.Contract, error)
	ListContracts(ctx context.Context, caller *models.Profile) ([]models.Contract, error)
	ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]models.Job, error)
}

// ContractHandler отдаёт договоры вызывающего.
type ContractHandler struct {
	contracts ContractReader
}

func NewContractHandler(contracts ContractReader) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GetContract обрабатывает GET /contracts/:id.
func (h *ContractHandler) GetContract(c *gin.Context) {
	caller, err := common.CurrentProfile(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), caller, id)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, contract)
}

// ListContracts обрабатывает GET /contracts.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	caller, err := common.CurrentProfile(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), caller)
	if err != nil {
		common.Fail(c, err)
		return
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}

	common.RespondJSON(c, http.StatusOK, contracts)
}
