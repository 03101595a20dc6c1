package dto

import (
	"github.com/shopspring/decimal"
)

// DepositRequest тело POST /balances/deposit/:userId.
// Amount принимается как числом, так и строкой.
type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// ReportQuery параметры админских отчётов.
type ReportQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
	Limit string `form:"limit"`
}
