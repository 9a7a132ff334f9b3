package worker

import (
	"context"
	"sort"
	"time"

	"nailpos/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Accepts both 5 and 6 field expressions plus descriptors like @hourly.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// StockAlertEnqueuer is satisfied by *Dispatcher.
type StockAlertEnqueuer interface {
	EnqueueStockAlert(ctx context.Context, payload StockAlertPayload) error
}

// StockScanner finds low-stock items of every tenant and queues one
// alert job per tenant that has any.
type StockScanner struct {
	inventory service.InventoryService
	queue     StockAlertEnqueuer
	to        string
}

func NewStockScanner(inventory service.InventoryService, queue StockAlertEnqueuer, to string) *StockScanner {
	return &StockScanner{inventory: inventory, queue: queue, to: to}
}

// Scan returns how many jobs were queued.
func (s *StockScanner) Scan(ctx context.Context) (int, error) {
	byTenant, err := s.inventory.ScanAll(ctx)
	if err != nil {
		return 0, err
	}
	tenants := make([]string, 0, len(byTenant))
	for t, items := range byTenant {
		if len(items) > 0 {
			tenants = append(tenants, t)
		}
	}
	sort.Strings(tenants)

	queued := 0
	for _, t := range tenants {
		payload := StockAlertPayload{TenantID: t, To: s.to, Items: byTenant[t]}
		if err := s.queue.EnqueueStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Str("tenant", t).Msg("stock_scan: enqueue failed")
			continue
		}
		queued++
	}
	return queued, nil
}

// NewScheduler builds a cron that runs the scanner on schedule. The caller
// starts it and stops it on shutdown.
func NewScheduler(ctx context.Context, schedule string, scanner *StockScanner) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithParser(cronParser))
	_, err := c.AddFunc(schedule, func() {
		n, err := scanner.Scan(ctx)
		if err != nil {
			log.Error().Err(err).Msg("stock_scan: failed")
			return
		}
		log.Info().Int("alerts", n).Msg("stock_scan: done")
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
