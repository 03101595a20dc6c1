package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract связывает одного клиента и одного подрядчика.
type Contract struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Terms        string    `db:"terms" json:"terms"`
	Status       string    `db:"status" json:"status"`
	ClientID     uuid.UUID `db:"client_id" json:"clientId"`
	ContractorID uuid.UUID `db:"contractor_id" json:"contractorId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// HasParty сообщает, участвует ли профиль в договоре.
func (c *Contract) HasParty(profileID uuid.UUID) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}

// Job работа в рамках договора.
type Job struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Paid        bool            `db:"paid" json:"paid"`
	PaymentDate *time.Time      `db:"payment_date" json:"paymentDate,omitempty"`
	ContractID  uuid.UUID       `db:"contract_id" json:"contractId"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// PayableJob неоплаченная работа вместе с договором, по которому её можно оплатить.
type PayableJob struct {
	JobID        uuid.UUID       `db:"job_id"`
	Price        decimal.Decimal `db:"price"`
	ContractID   uuid.UUID       `db:"contract_id"`
	ClientID     uuid.UUID       `db:"client_id"`
	ContractorID uuid.UUID       `db:"contractor_id"`
}

// Settlement подтверждение оплаты работы.
type Settlement struct {
	JobID        uuid.UUID       `json:"jobId"`
	ContractID   uuid.UUID       `json:"contractId"`
	ClientID     uuid.UUID       `json:"clientId"`
	ContractorID uuid.UUID       `json:"contractorId"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paidAt"`
}
