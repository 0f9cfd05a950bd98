package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
)

type authRepoStub struct {
	store.Repository

	accountsByEmail map[string]*domain.Account
	accountsByID    map[uuid.UUID]*domain.Account
	updateErr       error
	lastUpdated     *domain.Account
}

func newAuthRepoStub() *authRepoStub {
	return &authRepoStub{
		accountsByEmail: map[string]*domain.Account{},
		accountsByID:    map[uuid.UUID]*domain.Account{},
	}
}

func (s *authRepoStub) CreateAccount(ctx context.Context, account *domain.Account) error {
	if _, exists := s.accountsByEmail[account.Email]; exists {
		return store.ErrEmailTaken
	}
	s.accountsByEmail[account.Email] = account
	s.accountsByID[account.ID] = account
	return nil
}

func (s *authRepoStub) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, ok := s.accountsByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

func (s *authRepoStub) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, ok := s.accountsByID[accountID]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

func (s *authRepoStub) UpdateAccount(ctx context.Context, account *domain.Account) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUpdated = account
	return nil
}

func newTestAuthService(repo store.Repository) *AuthService {
	// MinCost keeps the bcrypt work factor cheap for tests.
	return NewAuthService(repo, nil, "test-secret", time.Hour, bcrypt.MinCost)
}

func TestRegister_HashesPasswordAndIssuesVerifiableToken(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)

	token, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Aman's Business",
		Email:        "  Aman@Example.com ",
		Password:     "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account, ok := repo.accountsByEmail["aman@example.com"]
	if !ok {
		t.Fatal("expected account stored under normalized email")
	}
	if account.PasswordHash == "hunter2" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	accountID, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if accountID != account.ID {
		t.Fatalf("expected token subject %s, got %s", account.ID, accountID)
	}
}

func TestRegister_RejectsMissingFields(t *testing.T) {
	auth := newTestAuthService(newAuthRepoStub())

	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{name: "missing business name", req: domain.RegisterRequest{Email: "a@b.com", Password: "x"}},
		{name: "missing email", req: domain.RegisterRequest{BusinessName: "Shop", Password: "x"}},
		{name: "missing password", req: domain.RegisterRequest{BusinessName: "Shop", Email: "a@b.com"}},
		{name: "blank business name", req: domain.RegisterRequest{BusinessName: "   ", Email: "a@b.com", Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Register(context.Background(), tt.req); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmailSurfacesAsEmailTaken(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)

	req := domain.RegisterRequest{BusinessName: "Shop", Email: "dup@example.com", Password: "pw"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := auth.Register(context.Background(), req); !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)

	if _, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Shop", Email: "owner@example.com", Password: "right-password",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := auth.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, wrongPwErr := auth.Login(context.Background(), domain.LoginRequest{Email: "owner@example.com", Password: "wrong"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPwErr)
	}
}

func TestLogin_ReturnsWorkingToken(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)

	if _, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Shop", Email: "owner@example.com", Password: "pw",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := auth.Login(context.Background(), domain.LoginRequest{Email: "Owner@Example.COM", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := auth.VerifyToken(token); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
}

func TestVerifyToken_RejectsForeignSecret(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)
	other := NewAuthService(repo, nil, "different-secret", time.Hour, bcrypt.MinCost)

	token, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Shop", Email: "owner@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := other.VerifyToken(token); err == nil {
		t.Fatal("expected verification to fail under a different secret")
	}
}

func TestVerifyToken_RejectsExpiredToken(t *testing.T) {
	repo := newAuthRepoStub()
	expired := NewAuthService(repo, nil, "test-secret", -time.Minute, bcrypt.MinCost)
	// The constructor coerces non-positive TTLs, so sign one manually.
	expired.tokenTTL = -time.Minute

	token, err := expired.signToken(uuid.New())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := expired.VerifyToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestUpdateAccount_EmptyFieldsLeaveValuesUntouched(t *testing.T) {
	repo := newAuthRepoStub()
	auth := newTestAuthService(repo)

	if _, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Old Name", Email: "old@example.com", Password: "pw",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	account := repo.accountsByEmail["old@example.com"]

	updated, err := auth.UpdateAccount(context.Background(), account.ID, domain.UpdateAccountRequest{
		BusinessName: "New Name",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BusinessName != "New Name" {
		t.Fatalf("expected business name updated, got %q", updated.BusinessName)
	}
	if updated.Email != "old@example.com" {
		t.Fatalf("expected email untouched, got %q", updated.Email)
	}
	if repo.lastUpdated == nil {
		t.Fatal("expected repository update to be called")
	}
}

func TestUpdateAccount_UnknownAccountIs404Material(t *testing.T) {
	auth := newTestAuthService(newAuthRepoStub())

	_, err := auth.UpdateAccount(context.Background(), uuid.New(), domain.UpdateAccountRequest{BusinessName: "X"})
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestRegister_PublishesAccountRegisteredEvent(t *testing.T) {
	repo := newAuthRepoStub()
	producer := &recordingPublisher{}
	auth := NewAuthService(repo, producer, "test-secret", time.Hour, bcrypt.MinCost)

	if _, err := auth.Register(context.Background(), domain.RegisterRequest{
		BusinessName: "Aman's Business",
		Email:        "aman@example.com",
		Password:     "hunter2",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(producer.published))
	}
	evt := producer.published[0]
	if evt.routingKey != "account.registered" {
		t.Fatalf("expected routing key account.registered, got %q", evt.routingKey)
	}
	body, ok := evt.body.(domain.AccountRegisteredEvent)
	if !ok {
		t.Fatalf("unexpected event body type %T", evt.body)
	}
	account := repo.accountsByEmail["aman@example.com"]
	if body.AccountID != account.ID || body.BusinessName != "Aman's Business" {
		t.Fatalf("unexpected event payload: %+v", body)
	}
}

func TestRegister_DuplicateEmailPublishesNothing(t *testing.T) {
	repo := newAuthRepoStub()
	producer := &recordingPublisher{}
	auth := NewAuthService(repo, producer, "test-secret", time.Hour, bcrypt.MinCost)

	req := domain.RegisterRequest{BusinessName: "Shop", Email: "dup@example.com", Password: "pw"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := auth.Register(context.Background(), req); !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("expected only the first registration to publish, got %d events", len(producer.published))
	}
}
