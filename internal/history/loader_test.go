package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	id string
	at time.Time
}

func recKey(r rec) Cursor { return Cursor{Timestamp: r.at, ID: r.id} }

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// makeLedger returns n records newest first, ids "001".."n".
func makeLedger(n int) []rec {
	out := make([]rec, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, rec{id: fmt.Sprintf("%03d", i), at: epoch.Add(time.Duration(i) * time.Minute)})
	}
	return out
}

type fakeLedger struct {
	mu      sync.Mutex
	rows    []rec
	calls   int
	cursors []Cursor
	failN   int
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeLedger) FetchPage(ctx context.Context, c Cursor, limit int) ([]rec, error) {
	f.mu.Lock()
	f.calls++
	f.cursors = append(f.cursors, c)
	fail := f.failN > 0
	if fail {
		f.failN--
	}
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if fail {
		return nil, errors.New("store unavailable")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rec
	for _, r := range f.rows {
		if recKey(r).Before(c) {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func ids(rs []rec) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.id
	}
	return out
}

func TestLoader_LiveThenTwoPagesThenExhausted(t *testing.T) {
	all := makeLedger(100)
	store := &fakeLedger{rows: all}
	l := NewLoader[rec](store, recKey, 50)

	l.OnSnapshot(all[:50])
	assert.Equal(t, Idle, l.State())

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, n)
	assert.Equal(t, Idle, l.State())
	assert.Equal(t, ids(all[50:]), ids(l.Tail()))

	n, err = l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, Exhausted, l.State())
	assert.Equal(t, 2, store.calls)

	view := l.View()
	require.Len(t, view, 100)
	assert.Equal(t, ids(all), ids(view))
	for i := 1; i < len(view); i++ {
		assert.True(t, recKey(view[i]).Before(recKey(view[i-1])), "not descending at %d", i)
	}
}

func TestLoader_ExhaustedIsNoop(t *testing.T) {
	all := makeLedger(60)
	store := &fakeLedger{rows: all}
	l := NewLoader[rec](store, recKey, 50)
	l.OnSnapshot(all[:50])

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, Exhausted, l.State())

	for i := 0; i < 3; i++ {
		n, err = l.LoadMore(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	}
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, Exhausted, l.State())
}

func TestLoader_FailureStaysIdleAndMergesNothing(t *testing.T) {
	all := makeLedger(120)
	store := &fakeLedger{rows: all, failN: 1}
	l := NewLoader[rec](store, recKey, 50)
	l.OnSnapshot(all[:50])

	_, err := l.LoadMore(context.Background())
	require.Error(t, err)
	assert.Equal(t, Idle, l.State())
	assert.Empty(t, l.Tail())
	assert.Error(t, l.LastError())

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, n)
	assert.NoError(t, l.LastError())
	assert.Equal(t, store.cursors[0], store.cursors[1], "retry must reuse the same cursor")
}

func TestLoader_ConcurrentCallsShareOneFetch(t *testing.T) {
	all := makeLedger(70)
	store := &fakeLedger{rows: all, gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	l := NewLoader[rec](store, recKey, 50)
	l.OnSnapshot(all[:50])

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := l.LoadMore(context.Background())
			assert.NoError(t, err)
			results[i] = n
		}(i)
	}

	<-store.entered
	assert.Equal(t, Loading, l.State())
	close(store.gate)
	wg.Wait()

	assert.Equal(t, 1, store.calls)
	assert.Equal(t, Exhausted, l.State())
	assert.Len(t, l.Tail(), 20)
}

func TestLoader_CursorFreezesOnFirstLoad(t *testing.T) {
	all := makeLedger(150)
	store := &fakeLedger{rows: all}
	l := NewLoader[rec](store, recKey, 50)

	// live window moves before any history is requested
	l.OnSnapshot(all[10:60])
	l.OnSnapshot(all[:50])
	cur, frozen := l.Cursor()
	assert.False(t, frozen)
	assert.Equal(t, all[49].id, cur.ID)

	_, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all[49].id, store.cursors[0].ID)

	// a new sale arrives; the live window slides but the cursor does not
	newest := rec{id: "999", at: epoch.Add(24 * time.Hour)}
	l.OnSnapshot(append([]rec{newest}, all[:49]...))
	cur, frozen = l.Cursor()
	assert.True(t, frozen)
	assert.Equal(t, all[99].id, cur.ID)

	_, err = l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all[99].id, store.cursors[1].ID)

	view := l.View()
	seen := map[string]bool{}
	for _, r := range view {
		assert.False(t, seen[r.id], "duplicate %s", r.id)
		seen[r.id] = true
	}
	assert.Equal(t, "999", view[0].id)
}

func TestLoader_DeleteInLiveWindowPullsTailRecordIn(t *testing.T) {
	all := makeLedger(150)
	store := &fakeLedger{rows: all}
	l := NewLoader[rec](store, recKey, 50)

	l.OnSnapshot(all[:50])
	_, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	require.Equal(t, ids(all[50:100]), ids(l.Tail()))

	// all[10] is hard-deleted: all[50] moves up into the live window while
	// it is already part of the fetched tail
	remaining := make([]rec, 0, len(all)-1)
	remaining = append(remaining, all[:10]...)
	remaining = append(remaining, all[11:]...)
	store.mu.Lock()
	store.rows = remaining
	store.mu.Unlock()
	l.OnSnapshot(remaining[:50])
	assert.Equal(t, all[50].id, l.Live()[49].id)

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, n)
	assert.Equal(t, all[99].id, store.cursors[1].ID)

	view := l.View()
	require.Len(t, view, 149)
	seen := map[string]bool{}
	for i, r := range view {
		assert.False(t, seen[r.id], "duplicate %s", r.id)
		seen[r.id] = true
		if i > 0 {
			assert.True(t, recKey(r).Before(recKey(view[i-1])), "not descending at %d", i)
		}
	}
	assert.False(t, seen[all[10].id])
	assert.Equal(t, ids(remaining), ids(view))
}

func TestLoader_BeforeSnapshot(t *testing.T) {
	store := &fakeLedger{}
	l := NewLoader[rec](store, recKey, 0)
	assert.Equal(t, DefaultPageSize, l.PageSize())

	_, err := l.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Equal(t, Idle, l.State())
	assert.Zero(t, store.calls)
}

func TestLoader_EmptyLiveWindowExhaustsWithoutFetch(t *testing.T) {
	store := &fakeLedger{}
	l := NewLoader[rec](store, recKey, 50)
	l.OnSnapshot(nil)

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, Exhausted, l.State())
	assert.Zero(t, store.calls)
}

func TestCursor_Before(t *testing.T) {
	a := Cursor{Timestamp: epoch, ID: "b"}
	assert.True(t, Cursor{Timestamp: epoch, ID: "a"}.Before(a))
	assert.False(t, a.Before(a))
	assert.True(t, Cursor{Timestamp: epoch.Add(-time.Second), ID: "z"}.Before(a))
	assert.Equal(t, "exhausted", Exhausted.String())
}
