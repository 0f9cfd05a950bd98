/**
 * @description
 * This file defines the account (business tenant) domain model and the DTOs
 * used by the auth endpoints. An account owns all of its customers, products,
 * and sale transactions; every query in the system is scoped to one account.
 *
 * @notes
 * - `PasswordHash` carries the `json:"-"` tag so it can never leak through an
 *   API response, matching the original contract of returning the account
 *   with the password omitted.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a business tenant. This struct maps directly to the
// `accounts` table in the database.
type Account struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the DTO for the register endpoint.
type RegisterRequest struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// LoginRequest is the DTO for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest is the DTO for profile updates. Both fields are
// optional; empty values leave the stored value untouched.
type UpdateAccountRequest struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
}

// TokenResponse carries a freshly signed bearer token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}
