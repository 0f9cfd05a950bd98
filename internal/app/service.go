/**
 * @description
 * This file contains the core business logic for the service. The `Service`
 * struct orchestrates the tenant-scoped workflows: customer and product CRUD,
 * the sale-recording workflow (stock mutation + transaction persistence), and
 * the sales history listing. Dashboard reporting lives in reports.go and
 * authentication in auth.go.
 *
 * Key features:
 * - Implements the sale-recording workflow: per line item the product stock is
 *   decremented, then one transaction record owning all line items is created.
 * - Publishes events to RabbitMQ for asynchronous consumption (best effort).
 *
 * @dependencies
 * - github.com/google/uuid: For UUID generation.
 * - internal/domain, internal/store: For domain models and data access.
 * - pkg/rabbitmq: For event publishing.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
	"github.com/Amanchoudhary192002/Business-Management-System/pkg/rabbitmq"
)

// TopCustomerLimit caps the top-customers ranking on the dashboard.
const TopCustomerLimit = 5

var (
	// ErrEmptySale is returned when a sale request carries no line items.
	ErrEmptySale = errors.New("no products in sale")
	// ErrMissingCustomer is returned when a sale request carries no customer reference.
	ErrMissingCustomer = errors.New("customer reference is required")
)

// Service provides the core business logic for the business-management backend.
type Service struct {
	repo              store.Repository
	eventProducer     rabbitmq.Publisher
	lowStockThreshold int
}

// NewService creates a new service instance. The event producer may be nil
// when the broker is unavailable; all publishes degrade to a log line.
func NewService(repo store.Repository, producer rabbitmq.Publisher, lowStockThreshold int) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &Service{
		repo:              repo,
		eventProducer:     producer,
		lowStockThreshold: lowStockThreshold,
	}
}

// RecordSale executes the sale-recording workflow for one account: decrement
// the stock of every referenced product, then persist the transaction record.
//
// The decrements are applied one by one before the transaction is created and
// nothing wraps the steps into an atomic unit. If persisting the transaction
// fails after decrements succeeded, stock stays decremented with no
// compensating write. Concurrent sales against the same product are not
// serialized here either; both can observe stale stock. These are documented
// properties of the current contract, not accidents of this implementation.
func (s *Service) RecordSale(ctx context.Context, accountID uuid.UUID, req domain.SaleRequest) (*domain.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}
	if req.CustomerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}

	for _, item := range req.Items {
		if err := s.repo.DecrementProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
		}
	}

	tx := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       accountID,
		CustomerID:      req.CustomerID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		TransactionDate: time.Now(),
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	log.Printf("level=info component=app workflow=record_sale outcome=recorded transaction_id=%s account_id=%s items=%d total=%d",
		tx.ID, accountID, len(tx.Items), tx.TotalAmount)
	s.publish(ctx, "sale.recorded", domain.SaleRecordedEvent{
		TransactionID: tx.ID,
		AccountID:     accountID,
		CustomerID:    tx.CustomerID,
		LineItemCount: len(tx.Items),
		TotalAmount:   tx.TotalAmount,
		Timestamp:     time.Now(),
	})

	return tx, nil
}

// ListSales returns the account's sale history, newest first, with customer
// names joined in.
func (s *Service) ListSales(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return s.repo.ListTransactionsByAccount(ctx, accountID)
}

// CreateCustomer creates a customer owned by the account.
func (s *Service) CreateCustomer(ctx context.Context, accountID uuid.UUID, input domain.CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns the account's customers sorted by name.
func (s *Service) ListCustomers(ctx context.Context, accountID uuid.UUID) ([]domain.Customer, error) {
	return s.repo.ListCustomersByAccount(ctx, accountID)
}

// UpdateCustomer updates a customer the account owns.
func (s *Service) UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, input domain.CustomerInput) (*domain.Customer, error) {
	return s.repo.UpdateCustomer(ctx, accountID, customerID, input)
}

// DeleteCustomer removes a customer the account owns.
func (s *Service) DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, accountID, customerID)
}

// CreateProduct creates a product owned by the account.
func (s *Service) CreateProduct(ctx context.Context, accountID uuid.UUID, input domain.ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns the account's products, newest first.
func (s *Service) ListProducts(ctx context.Context, accountID uuid.UUID) ([]domain.Product, error) {
	return s.repo.ListProductsByAccount(ctx, accountID)
}

// UpdateProduct updates a product the account owns.
func (s *Service) UpdateProduct(ctx context.Context, accountID, productID uuid.UUID, input domain.ProductInput) (*domain.Product, error) {
	return s.repo.UpdateProduct(ctx, accountID, productID, input)
}

// DeleteProduct removes a product the account owns.
func (s *Service) DeleteProduct(ctx context.Context, accountID, productID uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, accountID, productID)
}

// publish sends an event to the bms.events exchange, tolerating a missing or
// failing broker. A lost event never fails the originating request.
func (s *Service) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.eventProducer == nil {
		return
	}
	if err := s.eventProducer.Publish(ctx, rabbitmq.EventsExchange, routingKey, body); err != nil {
		log.Printf("level=warn component=app msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}
