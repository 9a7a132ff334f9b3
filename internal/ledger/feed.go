// Package ledger serves the sales ledger to console screens: a live window
// that follows writes, and per-screen sessions that page older history.
package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"nailpos/internal/history"
	"nailpos/internal/infra"
	"nailpos/internal/model"

	"github.com/rs/zerolog/log"
)

// Store reads the ledger by keyset. repository.SaleRepository satisfies it.
type Store interface {
	Latest(ctx context.Context, tenantID string, limit int) ([]model.Sale, error)
	PageBefore(ctx context.Context, tenantID string, cursor history.Cursor, limit int) ([]model.Sale, error)
}

// Watcher delivers change signals for a tenant collection. infra.Notifier satisfies it.
type Watcher interface {
	Watch(ctx context.Context, tenantID, collection string) (<-chan struct{}, func(), error)
}

// Feed produces live snapshots of the newest ledger rows.
type Feed struct {
	store Store
	watch Watcher
	poll  time.Duration
}

// NewFeed builds a feed. watch may be nil, in which case snapshots refresh on
// the poll interval only.
func NewFeed(store Store, watch Watcher, poll time.Duration) *Feed {
	if poll <= 0 {
		poll = 15 * time.Second
	}
	return &Feed{store: store, watch: watch, poll: poll}
}

// FetchPage returns up to limit rows strictly older than cursor.
func (f *Feed) FetchPage(ctx context.Context, tenantID string, cursor history.Cursor, limit int) ([]model.Sale, error) {
	return f.store.PageBefore(ctx, tenantID, cursor, limit)
}

// Pager binds FetchPage to one tenant.
func (f *Feed) Pager(tenantID string) history.PageFetcher[model.Sale] {
	return history.FetchFunc[model.Sale](func(ctx context.Context, cursor history.Cursor, limit int) ([]model.Sale, error) {
		return f.FetchPage(ctx, tenantID, cursor, limit)
	})
}

// Subscription is a running live window. Close stops it.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close stops delivery and waits for the delivery goroutine to exit. No
// callback runs after Close returns.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Subscribe calls fn with the newest limit rows right away, then again every
// time the ledger changes. fn runs on a single goroutine, never concurrently
// with itself. The subscription lives until Close or until ctx is done.
func (f *Feed) Subscribe(ctx context.Context, tenantID string, limit int, fn func([]model.Sale)) (*Subscription, error) {
	rows, err := f.store.Latest(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}
	fn(rows)

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	var changes <-chan struct{}
	stop := func() {}
	if f.watch != nil {
		ch, unwatch, err := f.watch.Watch(ctx, tenantID, infra.CollectionSales)
		if err != nil {
			log.Warn().Err(err).Str("tenant", tenantID).Msg("ledger: change notifications unavailable, polling only")
		} else {
			changes, stop = ch, unwatch
		}
	}

	go func() {
		defer close(sub.done)
		defer stop()
		ticker := time.NewTicker(f.poll)
		defer ticker.Stop()
		last := signature(rows)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
			case <-ticker.C:
			}
			rows, err := f.store.Latest(ctx, tenantID, limit)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Str("tenant", tenantID).Msg("ledger: live window refresh failed")
				}
				continue
			}
			if sig := signature(rows); sig != last {
				last = sig
				if ctx.Err() != nil {
					return
				}
				fn(rows)
			}
		}
	}()
	return sub, nil
}

// signature identifies a snapshot by the fields that can change on a row.
func signature(rows []model.Sale) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.ID.String())
		b.WriteByte(':')
		b.WriteString(r.Cost.String())
		if r.Deleted {
			b.WriteByte('d')
		}
		b.WriteByte(';')
	}
	return b.String()
}
