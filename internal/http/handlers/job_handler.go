package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/models"
)

type UnpaidJobLister interface {
	ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]models.Job, error)
}

type JobPayer interface {
	PayJob(ctx context.Context, caller *models.Profile, jobID uuid.UUID) (*models.Settlement, error)
}

// JobHandler работы: список неоплаченных и оплата.
type JobHandler struct {
	jobs     UnpaidJobLister
	payments JobPayer
}

func NewJobHandler(jobs UnpaidJobLister, payments JobPayer) *JobHandler {
	return &JobHandler{jobs: jobs, payments: payments}
}

// ListUnpaid обрабатывает GET /jobs/unpaid.
func (h *JobHandler) ListUnpaid(c *gin.Context) {
	caller, err := common.CurrentProfile(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	jobs, err := h.jobs.ListUnpaidJobs(c.Request.Context(), caller)
	if err != nil {
		common.Fail(c, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	common.RespondJSON(c, http.StatusOK, jobs)
}

// Pay обрабатывает POST /jobs/:job_id/pay.
func (h *JobHandler) Pay(c *gin.Context) {
	caller, err := common.CurrentProfile(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	jobID, err := common.ParseUUIDParam(c, "job_id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	settlement, err := h.payments.PayJob(c.Request.Context(), caller, jobID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, settlement)
}
