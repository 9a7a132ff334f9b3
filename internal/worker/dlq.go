package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix names the dead letter list of a queue: dlq:<queue>.
const DLQPrefix = "dlq:"

// DLQEntry is a job that used up its attempts, kept for inspection or replay.
type DLQEntry struct {
	Job
	Queue    string    `json:"queue"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

type dlqWriter interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// SendToDLQ parks job in the queue's dead letter list. A failed push is
// logged and the job is lost.
func SendToDLQ(ctx context.Context, w dlqWriter, queue string, job Job, reason string) {
	data, err := json.Marshal(DLQEntry{Job: job, Queue: queue, Reason: reason, FailedAt: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	key := DLQPrefix + queue
	if err := w.LPush(context.WithoutCancel(ctx), key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq", key).Str("type", job.Type).Msg("dlq: push failed, job dropped")
		return
	}
	log.Warn().Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Str("reason", reason).
		Msg("dlq: job parked")
}

// DLQLength reports how many jobs are parked for queue. /health shows it.
func DLQLength(ctx context.Context, rdb redis.Cmdable, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
