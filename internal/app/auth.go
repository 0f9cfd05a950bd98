/**
 * @description
 * This file contains the authentication logic: account registration with
 * bcrypt password hashing, credential verification on login, bearer token
 * issuance, and profile reads/updates.
 *
 * @notes
 * - Login deliberately returns the same ErrInvalidCredentials for an unknown
 *   email and for a wrong password, so the response does not reveal whether
 *   an email is registered.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: Token signing (HS256).
 * - golang.org/x/crypto/bcrypt: Password hashing.
 * - pkg/rabbitmq: Publishes the account.registered event.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
	"github.com/Amanchoudhary192002/Business-Management-System/pkg/rabbitmq"
)

var (
	// ErrInvalidCredentials is returned on login when the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when a register request lacks a required field.
	ErrMissingFields = errors.New("business name, email and password are required")
)

// AuthService handles account registration, login, and profile management.
type AuthService struct {
	repo          store.Repository
	eventProducer rabbitmq.Publisher
	jwtSecret     []byte
	tokenTTL      time.Duration
	bcryptCost    int
}

// NewAuthService creates a new AuthService instance. The producer may be nil;
// registration events are then dropped.
func NewAuthService(repo store.Repository, producer rabbitmq.Publisher, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:          repo,
		eventProducer: producer,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
		bcryptCost:    bcryptCost,
	}
}

// Register creates a new account and returns a signed token for it.
// A duplicate email surfaces as store.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (string, error) {
	businessName := strings.TrimSpace(req.BusinessName)
	email := normalizeEmail(req.Email)
	if businessName == "" || email == "" || req.Password == "" {
		return "", ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		BusinessName: businessName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return "", err
	}

	log.Printf("level=info component=auth msg=\"account registered\" account_id=%s", account.ID)
	s.publish(ctx, "account.registered", domain.AccountRegisteredEvent{
		AccountID:    account.ID,
		BusinessName: account.BusinessName,
		Timestamp:    time.Now(),
	})
	return s.signToken(account.ID)
}

// publish sends an event to the bms.events exchange, tolerating a missing or
// failing broker. A lost event never fails the originating request.
func (s *AuthService) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.eventProducer == nil {
		return
	}
	if err := s.eventProducer.Publish(ctx, rabbitmq.EventsExchange, routingKey, body); err != nil {
		log.Printf("level=warn component=auth msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	account, err := s.repo.FindAccountByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken(account.ID)
}

// GetAccount returns the account for the given id.
func (s *AuthService) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return s.repo.FindAccountByID(ctx, accountID)
}

// UpdateAccount patches the business name and/or email of an account. Empty
// fields leave the stored value untouched. Changing the email to one already
// registered surfaces as store.ErrEmailTaken.
func (s *AuthService) UpdateAccount(ctx context.Context, accountID uuid.UUID, req domain.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.BusinessName); name != "" {
		account.BusinessName = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		account.Email = email
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// VerifyToken parses and validates a signed token, returning the account id
// held in the subject claim.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	accountID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	return accountID, nil
}

// IssueToken signs a fresh bearer token for the given account id.
func (s *AuthService) IssueToken(accountID uuid.UUID) (string, error) {
	return s.signToken(accountID)
}

func (s *AuthService) signToken(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
