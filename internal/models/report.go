package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NoPaidJobMessage маркер пустого отчёта.
const NoPaidJobMessage = "no paid job in range"

// ProfessionEarning сумма заработка по профессии.
type ProfessionEarning struct {
	Profession  string          `db:"profession" json:"profession"`
	TotalEarned decimal.Decimal `db:"total_earned" json:"totalEarned"`
}

// ClientPayment сумма оплат клиента.
type ClientPayment struct {
	ID       uuid.UUID       `db:"id" json:"id"`
	FullName string          `db:"full_name" json:"fullName"`
	Paid     decimal.Decimal `db:"paid" json:"paid"`
}

// ProfessionReport результат отчёта о самой доходной профессии.
// NoData выставляется, когда в диапазоне нет ни одной оплаченной работы.
type ProfessionReport struct {
	Top    *ProfessionEarning
	NoData bool
}

// ClientsReport результат отчёта о клиентах, заплативших больше всех.
type ClientsReport struct {
	Rows   []ClientPayment
	NoData bool
}
