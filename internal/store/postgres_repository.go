/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface. It contains all the SQL needed for accounts, customers, products,
 * sale transactions, and the dashboard aggregates.
 *
 * @notes
 * - Every query that touches tenant data filters by account_id, so one
 *   account can never read or mutate another account's rows.
 * - DecrementProductStock is a plain unguarded decrement and
 *   CreateTransaction is not wrapped in the same database transaction as the
 *   decrements that precede it. Concurrent sales against the same product can
 *   therefore race, and stock may go negative. This mirrors how the sale
 *   workflow has always behaved and callers must not assume atomicity.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - internal/domain: Contains the domain models used for data transfer.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
)

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateAccount inserts a new account row. A duplicate email maps to ErrEmailTaken.
func (r *PostgresRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, business_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, account.ID, account.BusinessName, account.Email, account.PasswordHash).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindAccountByEmail retrieves an account by its (unique) email.
func (r *PostgresRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	query := `
		SELECT id, business_name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE lower(btrim(email)) = lower(btrim($1))
	`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.BusinessName,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PostgresRepository) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	query := `
		SELECT id, business_name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&account.ID,
		&account.BusinessName,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateAccount persists profile changes. A duplicate email maps to ErrEmailTaken.
func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET business_name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, account.ID, account.BusinessName, account.Email).Scan(&account.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// CreateCustomer inserts a new customer owned by the given account.
func (r *PostgresRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, account_id, name, phone, email, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		customer.ID,
		customer.AccountID,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

// ListCustomersByAccount returns the account's customers sorted by name.
func (r *PostgresRepository) ListCustomersByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Customer, error) {
	query := `
		SELECT id, account_id, name, phone, email, address, created_at, updated_at
		FROM customers
		WHERE account_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer updates a customer only when it belongs to the calling
// account. A missing row and a row owned by another account are
// indistinguishable to the caller: both map to ErrCustomerNotFound.
func (r *PostgresRepository) UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, input domain.CustomerInput) (*domain.Customer, error) {
	var c domain.Customer
	query := `
		UPDATE customers
		SET name = $3, phone = $4, email = $5, address = $6, updated_at = NOW()
		WHERE id = $1 AND account_id = $2
		RETURNING id, account_id, name, phone, email, address, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, customerID, accountID, input.Name, input.Phone, input.Email, input.Address).
		Scan(&c.ID, &c.AccountID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCustomer removes a customer only when it belongs to the calling account.
func (r *PostgresRepository) DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND account_id = $2`, customerID, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// CreateProduct inserts a new product owned by the given account.
func (r *PostgresRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, account_id, name, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		product.ID,
		product.AccountID,
		product.Name,
		product.Price,
		product.Stock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// ListProductsByAccount returns the account's products, newest first.
func (r *PostgresRepository) ListProductsByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Product, error) {
	query := `
		SELECT id, account_id, name, price, stock, created_at, updated_at
		FROM products
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	return r.queryProducts(ctx, query, accountID)
}

// UpdateProduct updates a product only when it belongs to the calling account.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, accountID, productID uuid.UUID, input domain.ProductInput) (*domain.Product, error) {
	var p domain.Product
	query := `
		UPDATE products
		SET name = $3, price = $4, stock = $5, updated_at = NOW()
		WHERE id = $1 AND account_id = $2
		RETURNING id, account_id, name, price, stock, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, productID, accountID, input.Name, input.Price, input.Stock).
		Scan(&p.ID, &p.AccountID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a product only when it belongs to the calling account.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, accountID, productID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND account_id = $2`, productID, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementProductStock applies an unconditional stock decrement. There is no
// floor at zero and a decrement against an unknown product id is a no-op,
// matching the source system's write semantics.
func (r *PostgresRepository) DecrementProductStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	_, err := r.db.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`, productID, quantity)
	return err
}

// CreateTransaction inserts the sale header row and its line items.
func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, customer_id, total_amount, transaction_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, tx.ID, tx.AccountID, tx.CustomerID, tx.TotalAmount, tx.TransactionDate).
		Scan(&tx.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range tx.Items {
		_, err = r.db.Exec(ctx, `
			INSERT INTO transaction_items (id, transaction_id, product_id, quantity, price_at_sale)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), tx.ID, item.ProductID, item.Quantity, item.PriceAtSale)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListTransactionsByAccount returns the account's sales newest first, with
// each customer's display name joined in.
func (r *PostgresRepository) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.customer_id, COALESCE(c.name, ''), t.total_amount, t.transaction_date, t.created_at
		FROM transactions t
		LEFT JOIN customers c ON c.id = t.customer_id
		WHERE t.account_id = $1
		ORDER BY t.transaction_date DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.CustomerID, &t.CustomerName, &t.TotalAmount, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Items = []domain.LineItem{}
		transactions = append(transactions, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return transactions, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT transaction_id, product_id, quantity, price_at_sale
		FROM transaction_items
		WHERE transaction_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	itemsByTransaction := map[uuid.UUID][]domain.LineItem{}
	for itemRows.Next() {
		var txID uuid.UUID
		var item domain.LineItem
		if err := itemRows.Scan(&txID, &item.ProductID, &item.Quantity, &item.PriceAtSale); err != nil {
			return nil, err
		}
		itemsByTransaction[txID] = append(itemsByTransaction[txID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range transactions {
		if items, ok := itemsByTransaction[transactions[i].ID]; ok {
			transactions[i].Items = items
		}
	}
	return transactions, nil
}

// SumTransactionTotals sums total_amount over the account's transactions whose
// transaction_date falls within [from, to]. Zero when there are none.
func (r *PostgresRepository) SumTransactionTotals(ctx context.Context, accountID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM transactions
		WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
	`
	err := r.db.QueryRow(ctx, query, accountID, from, to).Scan(&total)
	return total, err
}

// ListProductsBelowStock returns the account's products with stock strictly
// below the threshold, ascending by stock.
func (r *PostgresRepository) ListProductsBelowStock(ctx context.Context, accountID uuid.UUID, threshold int) ([]domain.Product, error) {
	query := `
		SELECT id, account_id, name, price, stock, created_at, updated_at
		FROM products
		WHERE account_id = $1 AND stock < $2
		ORDER BY stock ASC
	`
	return r.queryProducts(ctx, query, accountID, threshold)
}

// TopCustomersBySpend groups the account's transactions by customer, sums the
// totals, and returns the biggest spenders with their names joined in. Sales
// whose customer has since been deleted do not appear, as the name join is
// what puts a customer on the board.
func (r *PostgresRepository) TopCustomersBySpend(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.CustomerSpend, error) {
	query := `
		SELECT c.name, SUM(t.total_amount) AS total_spent
		FROM transactions t
		JOIN customers c ON c.id = t.customer_id
		WHERE t.account_id = $1
		GROUP BY t.customer_id, c.name
		ORDER BY total_spent DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []domain.CustomerSpend{}
	for rows.Next() {
		var entry domain.CustomerSpend
		if err := rows.Scan(&entry.Name, &entry.TotalSpent); err != nil {
			return nil, err
		}
		top = append(top, entry)
	}
	return top, rows.Err()
}

// ListAccountIDs returns every account id. Used by the low-stock digest job.
func (r *PostgresRepository) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
