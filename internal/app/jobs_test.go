package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
)

type digestRepoStub struct {
	store.Repository

	accountIDs  []uuid.UUID
	lowStockFor map[uuid.UUID][]domain.Product
	scanErrFor  map[uuid.UUID]error
}

func (s *digestRepoStub) ListAccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.accountIDs, nil
}

func (s *digestRepoStub) ListProductsBelowStock(ctx context.Context, accountID uuid.UUID, threshold int) ([]domain.Product, error) {
	if err, ok := s.scanErrFor[accountID]; ok {
		return nil, err
	}
	return s.lowStockFor[accountID], nil
}

type recordingPublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	exchange   string
	routingKey string
	body       interface{}
}

func (p *recordingPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.published = append(p.published, publishedEvent{exchange: exchange, routingKey: routingKey, body: body})
	return nil
}

func (p *recordingPublisher) Close() {}

func TestRunLowStockDigest_PublishesOnlyForAffectedAccounts(t *testing.T) {
	accountA := uuid.New()
	accountB := uuid.New()
	accountC := uuid.New()

	repo := &digestRepoStub{
		accountIDs: []uuid.UUID{accountA, accountB, accountC},
		lowStockFor: map[uuid.UUID][]domain.Product{
			accountA: {{ID: uuid.New(), Name: "Pen", Stock: 2}},
			accountC: {{ID: uuid.New(), Name: "Ink", Stock: 0}, {ID: uuid.New(), Name: "Clip", Stock: 4}},
		},
	}
	publisher := &recordingPublisher{}
	jobs := NewJobs(repo, publisher, 10)

	jobs.RunLowStockDigest()

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 digests, got %d", len(publisher.published))
	}
	for _, p := range publisher.published {
		if p.routingKey != "stock.low_digest" {
			t.Fatalf("expected routing key stock.low_digest, got %q", p.routingKey)
		}
		event, ok := p.body.(domain.LowStockDigestEvent)
		if !ok {
			t.Fatalf("expected LowStockDigestEvent body, got %T", p.body)
		}
		if event.Threshold != 10 {
			t.Fatalf("expected threshold 10, got %d", event.Threshold)
		}
		if len(event.Products) == 0 {
			t.Fatal("expected at least one product in the digest")
		}
	}
}

func TestRunLowStockDigest_OneAccountFailingDoesNotStopTheSweep(t *testing.T) {
	failing := uuid.New()
	healthy := uuid.New()

	repo := &digestRepoStub{
		accountIDs: []uuid.UUID{failing, healthy},
		scanErrFor: map[uuid.UUID]error{failing: errors.New("scan failed")},
		lowStockFor: map[uuid.UUID][]domain.Product{
			healthy: {{ID: uuid.New(), Name: "Pad", Stock: 1}},
		},
	}
	publisher := &recordingPublisher{}
	jobs := NewJobs(repo, publisher, 10)

	jobs.RunLowStockDigest()

	if len(publisher.published) != 1 {
		t.Fatalf("expected the healthy account's digest despite the failure, got %d", len(publisher.published))
	}
}

func TestRunLowStockDigest_NilProducerDropsDigestsQuietly(t *testing.T) {
	accountA := uuid.New()
	repo := &digestRepoStub{
		accountIDs: []uuid.UUID{accountA},
		lowStockFor: map[uuid.UUID][]domain.Product{
			accountA: {{ID: uuid.New(), Name: "Pen", Stock: 2}},
		},
	}
	jobs := NewJobs(repo, nil, 10)

	// Must not panic.
	jobs.RunLowStockDigest()
}
