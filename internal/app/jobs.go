/**
 * @description
 * Scheduled job implementations. The low-stock digest walks every account,
 * collects its products below the configured threshold, and publishes one
 * digest event per affected account.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
	"github.com/Amanchoudhary192002/Business-Management-System/internal/store"
	"github.com/Amanchoudhary192002/Business-Management-System/pkg/rabbitmq"
)

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	repo          store.Repository
	eventProducer rabbitmq.Publisher
	threshold     int
}

// NewJobs creates a new Jobs runner.
func NewJobs(repo store.Repository, producer rabbitmq.Publisher, lowStockThreshold int) *Jobs {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &Jobs{
		repo:          repo,
		eventProducer: producer,
		threshold:     lowStockThreshold,
	}
}

// RunLowStockDigest publishes a low-stock digest event for every account that
// currently has products below the threshold. One account failing does not
// stop the sweep.
func (j *Jobs) RunLowStockDigest() {
	log.Println("level=info component=jobs job=low_stock_digest msg=\"sweep started\"")
	ctx := context.Background()

	accountIDs, err := j.repo.ListAccountIDs(ctx)
	if err != nil {
		log.Printf("level=error component=jobs job=low_stock_digest msg=\"account listing failed\" err=%v", err)
		return
	}

	published := 0
	for _, accountID := range accountIDs {
		products, err := j.repo.ListProductsBelowStock(ctx, accountID, j.threshold)
		if err != nil {
			log.Printf("level=warn component=jobs job=low_stock_digest msg=\"low-stock scan failed\" account_id=%s err=%v", accountID, err)
			continue
		}
		if len(products) == 0 {
			continue
		}

		event := domain.LowStockDigestEvent{
			AccountID:   accountID,
			Threshold:   j.threshold,
			GeneratedAt: time.Now(),
		}
		for _, p := range products {
			event.Products = append(event.Products, domain.ProductStock{
				ProductID: p.ID,
				Name:      p.Name,
				Stock:     p.Stock,
			})
		}

		if j.eventProducer == nil {
			log.Printf("level=warn component=jobs job=low_stock_digest msg=\"producer unavailable; digest dropped\" account_id=%s products=%d", accountID, len(products))
			continue
		}
		if err := j.eventProducer.Publish(ctx, rabbitmq.EventsExchange, "stock.low_digest", event); err != nil {
			log.Printf("level=warn component=jobs job=low_stock_digest msg=\"digest publish failed\" account_id=%s err=%v", accountID, err)
			continue
		}
		published++
	}

	log.Printf("level=info component=jobs job=low_stock_digest msg=\"sweep finished\" accounts=%d digests=%d", len(accountIDs), published)
}
