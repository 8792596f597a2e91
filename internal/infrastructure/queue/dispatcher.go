package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/api/metrics"
	"github.com/devlink/devlink-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityProcessor is the persistence step run by the workers.
type ActivityProcessor interface {
	Process(ctx context.Context, activity domain.Activity) error
}

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the post id, guaranteeing per-post ordering in
// the activity trail while requests stay fire-and-forget.
type Dispatcher struct {
	workers   []chan domain.Activity
	processor ActivityProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ActivityProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Activity, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an activity entry on the worker responsible for its
// post. The call blocks only when the worker's buffer is full.
func (d *Dispatcher) Record(activity domain.Activity) {
	i := d.shardIndex(activity.PostID)
	d.workers[i] <- activity
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a post id deterministically to a worker index.
func (d *Dispatcher) shardIndex(postID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(postID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			if err := d.processor.Process(ctx, activity); err != nil {
				metrics.ActivityWriteDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("kind", string(activity.Kind)).
					Str("post_id", activity.PostID).
					Int("worker_id", id).
					Msg("failed to persist activity")
				continue
			}
			metrics.ActivityWriteDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		}
	}
}
