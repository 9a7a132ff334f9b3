// Package history keeps a live window of the newest ledger records together
// with an on-demand tail of older pages fetched by keyset cursor.
package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultPageSize is both the live window size and the history page size.
const DefaultPageSize = 50

// ErrNoSnapshot is returned by LoadMore before the first live snapshot arrives.
var ErrNoSnapshot = errors.New("history: no live snapshot received yet")

type State int

const (
	Idle State = iota
	Loading
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Cursor is the sort key of the oldest record already loaded. Records are
// ordered by Timestamp descending, then ID descending.
type Cursor struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
}

func (c Cursor) IsZero() bool { return c.Timestamp.IsZero() && c.ID == "" }

// Before reports whether c sorts strictly older than o.
func (c Cursor) Before(o Cursor) bool {
	if c.Timestamp.Equal(o.Timestamp) {
		return c.ID < o.ID
	}
	return c.Timestamp.Before(o.Timestamp)
}

// PageFetcher returns up to limit records strictly older than cursor, newest first.
type PageFetcher[T any] interface {
	FetchPage(ctx context.Context, cursor Cursor, limit int) ([]T, error)
}

// FetchFunc adapts a function to PageFetcher.
type FetchFunc[T any] func(ctx context.Context, cursor Cursor, limit int) ([]T, error)

func (f FetchFunc[T]) FetchPage(ctx context.Context, cursor Cursor, limit int) ([]T, error) {
	return f(ctx, cursor, limit)
}

// Loader merges a live window with a history tail. It is safe for concurrent use.
//
// The cursor follows the tail of every live snapshot until the first LoadMore.
// From then on it only moves with history pages, so later live updates can
// never make a page repeat or skip records.
type Loader[T any] struct {
	fetch    PageFetcher[T]
	key      func(T) Cursor
	pageSize int
	group    singleflight.Group

	mu       sync.Mutex
	state    State
	live     []T
	tail     []T
	cursor   Cursor
	ready    bool
	frozen   bool
	lastErr  error
	lastLoad time.Time
}

func NewLoader[T any](fetch PageFetcher[T], key func(T) Cursor, pageSize int) *Loader[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader[T]{fetch: fetch, key: key, pageSize: pageSize}
}

func (l *Loader[T]) PageSize() int { return l.pageSize }

// OnSnapshot replaces the live window with a full snapshot (newest first).
func (l *Loader[T]) OnSnapshot(records []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live = append([]T(nil), records...)
	l.ready = true
	if l.frozen {
		return
	}
	if len(records) == 0 {
		l.cursor = Cursor{}
		return
	}
	l.cursor = l.key(records[len(records)-1])
}

// LoadMore fetches the next page older than the cursor and appends it to the
// tail. It returns the number of records appended. Calls that overlap an
// in-flight fetch share its result. Once exhausted it is a no-op.
func (l *Loader[T]) LoadMore(ctx context.Context) (int, error) {
	v, err, _ := l.group.Do("page", func() (any, error) {
		return l.loadPage(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (l *Loader[T]) loadPage(ctx context.Context) (int, error) {
	l.mu.Lock()
	if l.state != Idle {
		l.mu.Unlock()
		return 0, nil
	}
	if !l.ready {
		l.mu.Unlock()
		return 0, ErrNoSnapshot
	}
	l.frozen = true
	if l.cursor.IsZero() {
		// an empty live window has nothing older than it
		l.state = Exhausted
		l.mu.Unlock()
		return 0, nil
	}
	l.state = Loading
	cur := l.cursor
	l.mu.Unlock()

	page, err := l.fetch.FetchPage(ctx, cur, l.pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = Idle
		l.lastErr = err
		return 0, err
	}
	l.lastErr = nil
	l.lastLoad = time.Now()
	l.tail = append(l.tail, page...)
	if len(page) > 0 {
		l.cursor = l.key(page[len(page)-1])
	}
	if len(page) < l.pageSize {
		l.state = Exhausted
	} else {
		l.state = Idle
	}
	return len(page), nil
}

func (l *Loader[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Cursor returns the current cursor and whether it has been frozen by a history fetch.
func (l *Loader[T]) Cursor() (Cursor, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor, l.frozen
}

// LastError is the error of the most recent failed fetch, cleared on success.
func (l *Loader[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *Loader[T]) Live() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.live...)
}

func (l *Loader[T]) Tail() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.tail...)
}

// View is the live window followed by the history tail, newest first, with
// any id present in both kept only once.
func (l *Loader[T]) View() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, 0, len(l.live)+len(l.tail))
	seen := make(map[string]struct{}, cap(out))
	for _, src := range [][]T{l.live, l.tail} {
		for _, r := range src {
			id := l.key(r).ID
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
