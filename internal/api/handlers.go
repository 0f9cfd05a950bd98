/**
 * @description
 * This file contains the auth HTTP handlers plus the shared response helpers.
 * Handlers parse incoming requests, call the application services, and map
 * service errors onto HTTP status codes. They are the bridge between the web
 * layer and the business logic layer.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain, internal/store: For service logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
)

// Handlers holds the application services that handlers will use.
type Handlers struct {
	service      *app.Service
	auth         *app.AuthService
	loginLimiter *app.RedisLoginRateLimiter
	loginLimit   int
}

// NewHandlers creates a new Handlers instance. The login limiter is optional;
// a nil limiter (or a zero limit) disables login rate limiting.
func NewHandlers(service *app.Service, auth *app.AuthService, loginLimiter *app.RedisLoginRateLimiter, loginLimitPerMinute int) *Handlers {
	return &Handlers{
		service:      service,
		auth:         auth,
		loginLimiter: loginLimiter,
		loginLimit:   loginLimitPerMinute,
	}
}

// RegisterHandler creates a new business account and returns a signed token.
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, store.ErrEmailTaken) {
			h.writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		log.Printf("level=error component=api endpoint=register msg=\"registration failed\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, domain.TokenResponse{Token: token})
}

// LoginHandler verifies credentials and returns a signed token.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.loginLimiter != nil && h.loginLimit > 0 {
		count, retryAfter, err := h.loginLimiter.ConsumeRateLimit(r.Context(), req.Email, h.loginLimit, time.Minute)
		if err != nil {
			// Limiter trouble must not lock everyone out; log and continue.
			log.Printf("level=warn component=api endpoint=login msg=\"rate limiter unavailable\" err=%v", err)
		} else if count > h.loginLimit {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			h.writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please wait and try again.")
			return
		}
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("level=error component=api endpoint=login msg=\"login failed\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, domain.TokenResponse{Token: token})
}

// GetMeHandler returns the authenticated account with the password omitted.
func (h *Handlers) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	account, err := h.auth.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			h.writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("level=error component=api endpoint=me msg=\"account lookup failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, account)
}

// UpdateAccountHandler patches the business name and/or email of the account.
func (h *Handlers) UpdateAccountHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get account ID from context")
		return
	}

	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.auth.UpdateAccount(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			h.writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		if errors.Is(err, store.ErrEmailTaken) {
			h.writeError(w, http.StatusConflict, "Email is already in use")
			return
		}
		log.Printf("level=error component=api endpoint=update_account msg=\"account update failed\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, account)
}

// pathID parses a URL parameter as a UUID.
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

// writeJSON is a helper for writing JSON responses.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
