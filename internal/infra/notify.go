package infra

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Collections that publish change notifications.
const (
	CollectionSales       = "sales"
	CollectionChemicals   = "chemical_products"
	CollectionConsumables = "consumables"
	CollectionServices    = "catalog_services"
	CollectionExtras      = "extras"
	CollectionStaff       = "staff"
	CollectionClients     = "clients"
)

// Channel is the pub/sub channel carrying changes of one tenant collection.
func Channel(tenantID, collection string) string {
	return "nailpos:" + tenantID + ":" + collection
}

// Notifier tells subscribers that a tenant collection changed. Messages carry
// no payload; subscribers re-read the collection.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func (n *Notifier) Publish(ctx context.Context, tenantID, collection string) error {
	return n.rdb.Publish(ctx, Channel(tenantID, collection), time.Now().UTC().Format(time.RFC3339Nano)).Err()
}

// Watch subscribes to a tenant collection. The returned channel receives at
// most one pending signal at a time; bursts of writes collapse into one.
// stop unsubscribes and closes the channel.
func (n *Notifier) Watch(ctx context.Context, tenantID, collection string) (<-chan struct{}, func(), error) {
	ps := n.rdb.Subscribe(ctx, Channel(tenantID, collection))
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, nil, err
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			ps.Close()
		})
	}
	return out, stop, nil
}
