/**
 * @description
 * This file defines the sale transaction domain models. A transaction is the
 * immutable record of one sale: who bought (customer), what was bought (line
 * items with the price captured at the moment of sale), and the total charged.
 *
 * @notes
 * - Transactions have no update or delete path anywhere in the system.
 * - Amounts are `int64` in the smallest currency unit.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one (product, quantity, price-at-sale) tuple within a sale.
type LineItem struct {
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	PriceAtSale int64     `json:"priceAtSale"`
}

// Transaction represents one recorded sale. This struct maps to the
// `transactions` table, with line items in `transaction_items`.
type Transaction struct {
	ID              uuid.UUID  `json:"id"`
	AccountID       uuid.UUID  `json:"accountId"`
	CustomerID      uuid.UUID  `json:"customerId"`
	CustomerName    string     `json:"customerName,omitempty"`
	Items           []LineItem `json:"products"`
	TotalAmount     int64      `json:"totalAmount"`
	TransactionDate time.Time  `json:"transactionDate"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// SaleRequest is the DTO for recording a sale. The field name `products`
// mirrors the wire contract the mobile client already speaks.
type SaleRequest struct {
	CustomerID  uuid.UUID  `json:"customerId"`
	Items       []LineItem `json:"products"`
	TotalAmount int64      `json:"totalAmount"`
}
