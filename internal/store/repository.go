/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract
 * for all data access operations required by the service. Business logic in
 * `internal/app` depends only on this interface, which keeps it decoupled from
 * PostgreSQL and lets tests substitute lightweight stubs.
 *
 * @dependencies
 * - context, time: Standard Go libraries.
 * - github.com/google/uuid: For identifier handling.
 * - internal/domain: For the service's domain models.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Account methods
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error

	// Customer methods
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	ListCustomersByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, input domain.CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error

	// Product methods
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProductsByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, accountID, productID uuid.UUID, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, accountID, productID uuid.UUID) error
	DecrementProductStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// Transaction methods
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)

	// Reporting methods
	SumTransactionTotals(ctx context.Context, accountID uuid.UUID, from, to time.Time) (int64, error)
	ListProductsBelowStock(ctx context.Context, accountID uuid.UUID, threshold int) ([]domain.Product, error)
	TopCustomersBySpend(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.CustomerSpend, error)

	// Digest methods
	ListAccountIDs(ctx context.Context) ([]uuid.UUID, error)
}
