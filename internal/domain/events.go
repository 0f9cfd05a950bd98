package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountRegisteredEvent is published after a new account is created.
type AccountRegisteredEvent struct {
	AccountID    uuid.UUID `json:"account_id"`
	BusinessName string    `json:"business_name"`
	Timestamp    time.Time `json:"timestamp"`
}

// SaleRecordedEvent is published after a sale transaction has been persisted.
type SaleRecordedEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	LineItemCount int       `json:"line_item_count"`
	TotalAmount   int64     `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// LowStockDigestEvent is published by the scheduled digest job for each
// account that has products below the low-stock threshold.
type LowStockDigestEvent struct {
	AccountID   uuid.UUID      `json:"account_id"`
	Threshold   int            `json:"threshold"`
	Products    []ProductStock `json:"products"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ProductStock is the slim product view carried inside a low-stock digest.
type ProductStock struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
}
