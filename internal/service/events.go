package service

import (
	"github.com/google/uuid"
)

// События, которые получают подключённые профили.
const (
	EventJobPaid          = "job.paid"
	EventBalanceDeposited = "balance.deposited"
)

// EventPublisher доставляет события профилю (websocket hub).
type EventPublisher interface {
	Publish(profileID uuid.UUID, event string, data any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, string, any) error { return nil }
