package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/contract-ledger/internal/dto"
	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

type Seeder interface {
	Seed(ctx context.Context) (repository.SeedData, error)
}

// SeedHandler заполняет базу демо-данными. Подключается только в development.
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed обрабатывает POST /seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	data, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		common.Fail(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось заполнить базу"))
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.SeedResponse{
		Message:   "seed data generated successfully",
		Profiles:  data.Profiles,
		Contracts: len(data.Contracts),
		Jobs:      len(data.Jobs),
	})
}
