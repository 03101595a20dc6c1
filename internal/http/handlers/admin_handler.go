package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/contract-ledger/internal/dto"
	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/policy"
	"github.com/ignatzorin/contract-ledger/internal/validation"
)

type ReportBuilder interface {
	BestProfession(ctx context.Context, start, end string) (models.ProfessionReport, error)
	BestClients(ctx context.Context, start, end string, limit *int) (models.ClientsReport, error)
}

// AdminHandler админские отчёты по оплаченным работам. Профиль вызывающего не требуется.
type AdminHandler struct {
	reports ReportBuilder
}

func NewAdminHandler(reports ReportBuilder) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// reportQuery разбирает параметры отчёта. Отчёты доступны без профиля.
func (h *AdminHandler) reportQuery(c *gin.Context) (dto.ReportQuery, bool) {
	var q dto.ReportQuery
	if _, err := common.Caller(c, policy.Anonymous); err != nil {
		common.Fail(c, err)
		return q, false
	}
	if err := common.BindQuery(c, &q); err != nil {
		common.Fail(c, err)
		return q, false
	}
	return q, true
}

// BestProfession обрабатывает GET /admin/best-profession?start=&end=.
func (h *AdminHandler) BestProfession(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}

	report, err := h.reports.BestProfession(c.Request.Context(), q.Start, q.End)
	if err != nil {
		common.Fail(c, err)
		return
	}
	if report.NoData {
		common.RespondJSON(c, http.StatusOK, dto.NoPaidJobResponse())
		return
	}

	common.RespondJSON(c, http.StatusOK, report.Top)
}

// BestClients обрабатывает GET /admin/best-clients?start=&end=&limit=.
func (h *AdminHandler) BestClients(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}

	var limit *int
	if q.Limit != "" {
		n, err := validation.ParseLimit(q.Limit)
		if err != nil {
			common.Fail(c, err)
			return
		}
		limit = &n
	}

	report, err := h.reports.BestClients(c.Request.Context(), q.Start, q.End, limit)
	if err != nil {
		common.Fail(c, err)
		return
	}
	if report.NoData {
		common.RespondJSON(c, http.StatusOK, dto.NoPaidJobResponse())
		return
	}

	common.RespondJSON(c, http.StatusOK, report.Rows)
}
