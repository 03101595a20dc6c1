package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile описывает участника: клиента или подрядчика.
type Profile struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	FirstName  string          `db:"first_name" json:"firstName"`
	LastName   string          `db:"last_name" json:"lastName"`
	Profession string          `db:"profession" json:"profession"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
	Type       string          `db:"type" json:"type"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// FullName возвращает имя и фамилию.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// DepositReceipt результат пополнения баланса.
type DepositReceipt struct {
	ProfileID uuid.UUID       `json:"profileId"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}
