// Package notify delivers outbound notifications emitted after state
// transitions: templated emails and best-effort realtime pushes. Delivery is
// fire-and-forget; failures are logged and never retried.
package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/api/metrics"
	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient email, preserving per-recipient ordering.
type Dispatcher struct {
	workers []chan domain.Notification
	mailer  ports.Mailer
	pusher  ports.Pusher
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, pusher ports.Pusher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		mailer:  mailer,
		pusher:  pusher,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its recipient.
// A full worker channel drops the notification rather than blocking the
// state transition that emitted it.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	idx := d.shardIndex(n.RecipientEmail + n.RecipientID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("template", string(n.Template)).
			Str("recipient", n.RecipientEmail).
			Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.deliver(ctx, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	start := time.Now()
	defer func() {
		metrics.NotificationDeliveryDuration.WithLabelValues(string(n.Template)).Observe(time.Since(start).Seconds())
	}()

	if n.RecipientEmail != "" {
		if err := d.mailer.Send(ctx, n.RecipientEmail, n.Template, n.Data); err != nil {
			metrics.NotificationsTotal.WithLabelValues("email", "error").Inc()
			d.log.Error().Err(err).
				Str("template", string(n.Template)).
				Str("recipient", n.RecipientEmail).
				Msg("email delivery failed")
		} else {
			metrics.NotificationsTotal.WithLabelValues("email", "ok").Inc()
		}
	}

	if n.RecipientID != "" && d.pusher != nil {
		if d.pusher.Push(n.RecipientID, string(n.Template), n.Data) {
			metrics.NotificationsTotal.WithLabelValues("push", "ok").Inc()
		} else {
			// No connected session; expected and silently skipped.
			metrics.NotificationsTotal.WithLabelValues("push", "no_session").Inc()
		}
	}
}
