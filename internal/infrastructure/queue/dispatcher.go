package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/content-service/internal/api/metrics"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans post activity events out to a fixed set of workers using
// consistent hashing on the post id, guaranteeing per-post event ordering.
// Workers record the activity in the structured log and bump the
// corresponding Prometheus counters.
type Dispatcher struct {
	workers []chan ports.ActivityEvent
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityEvent, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its post id.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event ports.ActivityEvent) {
	d.workers[d.shardIndex(event.PostID)] <- event
}

// shardIndex maps a post id deterministically to a worker index.
func (d *Dispatcher) shardIndex(postID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(postID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.PostActivityTotal.WithLabelValues(event.Type).Inc()
			d.log.Info().
				Str("type", event.Type).
				Str("post_id", event.PostID).
				Str("actor", event.Actor).
				Time("at", event.At).
				Int("worker_id", id).
				Msg("post activity")
		}
	}
}
