package service_test

import (
	"context"
	"testing"
	"time"

	"nailpos/internal/ledger"
	"nailpos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_SessionLifecycle(t *testing.T) {
	repo := seededSales(7)
	sessions := ledger.NewSessions(ledger.NewFeed(repo, nil, time.Hour), 3, time.Minute)
	t.Cleanup(sessions.CloseAll)
	svc := service.NewLedgerService(sessions)
	ctx := context.Background()

	opened, err := svc.Open(ctx, tenantA)
	require.NoError(t, err)
	assert.Equal(t, "idle", opened.State)
	assert.Equal(t, 3, opened.LiveCount)
	require.Len(t, opened.Data, 3)
	require.NotNil(t, opened.Cursor)
	assert.Equal(t, opened.Data[2].ID, opened.Cursor.ID)

	more, err := svc.LoadMore(ctx, tenantA, opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, more.Loaded)
	assert.Equal(t, "idle", more.State)
	assert.Len(t, more.Data, 6)

	more, err = svc.LoadMore(ctx, tenantA, opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, more.Loaded)
	assert.Equal(t, "exhausted", more.State)

	seen := map[string]bool{}
	for i, s := range more.Data {
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
		if i > 0 {
			assert.True(t, s.OccurredAt.Before(more.Data[i-1].OccurredAt))
		}
	}
	assert.Len(t, seen, 7)

	_, err = svc.Get(ctx, "salon-b", opened.SessionID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.Close(ctx, tenantA, opened.SessionID))
	_, err = svc.Get(ctx, tenantA, opened.SessionID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Close(ctx, tenantA, opened.SessionID), service.ErrNotFound)
}

func TestLedgerService_WatchUnknownSession(t *testing.T) {
	sessions := ledger.NewSessions(ledger.NewFeed(&stubSaleRepo{}, nil, time.Hour), 3, time.Minute)
	svc := service.NewLedgerService(sessions)

	_, _, err := svc.Watch(context.Background(), tenantA, "nope")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
