package dto

import (
	"github.com/ignatzorin/contract-ledger/internal/models"
)

// MessageResponse ответ с текстовым сообщением без данных.
type MessageResponse struct {
	Message string `json:"message"`
}

// NoPaidJobResponse ответ отчёта, когда в диапазоне нет оплаченных работ.
func NoPaidJobResponse() MessageResponse {
	return MessageResponse{Message: models.NoPaidJobMessage}
}

// SeedResponse ответ на заполнение базы демо-данными.
type SeedResponse struct {
	Message   string           `json:"message"`
	Profiles  []models.Profile `json:"profiles"`
	Contracts int              `json:"contracts"`
	Jobs      int              `json:"jobs"`
}
