package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueStockAlert = "jobs:stock_alert"
	JobStockAlert   = "stock_alert"

	// MaxAttempts is how many times a job runs before it moves to the DLQ.
	MaxAttempts = 3
)

// Job is the envelope of every queued task.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler runs one job. A returned error counts as a failed attempt.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

func (f HandlerFunc) Process(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the pool moves the job to the DLQ without retrying.
func Permanent(err error) error { return permanentError{err: err} }

// Queue is the part of redis the pool uses. *redis.Client satisfies it.
type Queue interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Dispatcher enqueues async jobs into redis lists. The pool pops them with BRPOP.
type Dispatcher struct {
	q Queue
}

func NewDispatcher(q Queue) *Dispatcher {
	return &Dispatcher{q: q}
}

// EnqueueStockAlert queues one low-stock e-mail.
func (d *Dispatcher) EnqueueStockAlert(ctx context.Context, payload StockAlertPayload) error {
	return d.enqueue(ctx, QueueStockAlert, JobStockAlert, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.q.LPush(ctx, queue, encoded).Err()
}

// Pool runs workers that block on BRPOP over every registered queue.
type Pool struct {
	q        Queue
	handlers map[string]Handler // by queue
	queues   []string

	popTimeout time.Duration
	backoff    func(attempt int) time.Duration

	wg sync.WaitGroup
}

func NewPool(q Queue, handlers map[string]Handler) *Pool {
	p := &Pool{
		q:          q,
		handlers:   handlers,
		popTimeout: 5 * time.Second,
		backoff:    func(attempt int) time.Duration { return time.Duration(1<<attempt) * time.Second },
	}
	for queue := range handlers {
		p.queues = append(p.queues, queue)
	}
	return p
}

// Start launches n workers. They stop when ctx is done; Wait blocks until then.
func (p *Pool) Start(ctx context.Context, n int) {
	if len(p.queues) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Int("workers", n).Strs("queues", p.queues).Msg("worker pool started")
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		}
		// Waits up to popTimeout, then loops to check ctx.
		result, err := p.q.BRPop(ctx, p.popTimeout, p.queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("queue pop failed")
				sleepCtx(ctx, time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.process(ctx, result[0], result[1])
	}
}

// process runs one raw job. Failures are requeued with backoff until
// MaxAttempts, then moved to the DLQ.
func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		SendToDLQ(ctx, p.q, queue, Job{Payload: quoted}, "malformed job: "+err.Error())
		return
	}

	h, ok := p.handlers[queue]
	if !ok {
		SendToDLQ(ctx, p.q, queue, job, "no handler for queue")
		return
	}

	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Debug().Str("queue", queue).Str("type", job.Type).Msg("job done")
		return
	}

	job.Attempts++
	var perm permanentError
	if errors.As(err, &perm) || job.Attempts >= MaxAttempts {
		log.Error().Err(err).Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed")
		SendToDLQ(ctx, p.q, queue, job, err.Error())
		return
	}

	log.Warn().Err(err).Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, retrying")
	sleepCtx(ctx, p.backoff(job.Attempts))
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		return
	}
	if pErr := p.q.LPush(context.WithoutCancel(ctx), queue, encoded).Err(); pErr != nil {
		log.Error().Err(pErr).Str("queue", queue).Msg("requeue failed")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
