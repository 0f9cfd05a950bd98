/**
 * @description
 * This file implements the dashboard reporting workflow. Each call recomputes
 * three independent aggregates over the calling account's data: the daily
 * sales total, the low-stock product list, and the top customers by spend.
 */

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/domain"
)

// DashboardReport computes the composite dashboard report for one account.
// Nothing is cached; every call hits the database for all three aggregates.
func (s *Service) DashboardReport(ctx context.Context, accountID uuid.UUID) (*domain.DashboardReport, error) {
	startOfDay, endOfDay := dayBounds(time.Now())

	dailyTotal, err := s.repo.SumTransactionTotals(ctx, accountID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily sales total: %w", err)
	}

	lowStock, err := s.repo.ListProductsBelowStock(ctx, accountID, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}

	topCustomers, err := s.repo.TopCustomersBySpend(ctx, accountID, TopCustomerLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank top customers: %w", err)
	}

	return &domain.DashboardReport{
		DailySalesTotal:  dailyTotal,
		LowStockProducts: lowStock,
		TopCustomers:     topCustomers,
	}, nil
}

// dayBounds returns the inclusive start and end of the calendar day holding t,
// in t's location: 00:00:00.000000000 through 23:59:59.999999999.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
