package archive

import (
	"context"
	"sync/atomic"
	"time"

	"stockplus/internal/application/service/pricebuffer"

	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 64

// Store persists archive rows.
type Store interface {
	AddTicks(ctx context.Context, ticks []TickRow) error
}

// Writer archives flushed tick snapshots in batches. Consume never blocks the
// flush loop: snapshots are queued and dropped when the queue is full.
type Writer struct {
	rows    *batchBuffer[TickRow]
	queue   chan pricebuffer.Snapshot
	logger  *logrus.Entry
	now     func() time.Time
	dropped atomic.Int64
}

func NewWriter(cfg BatchConfig, store Store, logger *logrus.Logger) *Writer {
	entry := logger.WithField("component", "tick_archive")
	return &Writer{
		rows: newBatchBuffer(cfg, func(ctx context.Context, batch []TickRow) error {
			return store.AddTicks(ctx, batch)
		}, entry),
		queue:  make(chan pricebuffer.Snapshot, defaultQueueSize),
		logger: entry,
		now:    time.Now,
	}
}

// Consume queues a flush snapshot for archiving.
func (w *Writer) Consume(snapshot pricebuffer.Snapshot) {
	select {
	case w.queue <- snapshot:
	default:
		if n := w.dropped.Add(1); n == 1 || n%100 == 0 {
			w.logger.WithField("dropped", n).Warn("archive queue full, dropping snapshot")
		}
	}
}

// Dropped reports how many snapshots were discarded because the queue was full.
func (w *Writer) Dropped() int64 {
	return w.dropped.Load()
}

// Run archives queued snapshots until ctx is done, then flushes what is
// left using a short-lived context.
func (w *Writer) Run(ctx context.Context) error {
	w.rows.setContext(context.WithoutCancel(ctx))
	for {
		select {
		case <-ctx.Done():
			return w.stop()
		case snapshot := <-w.queue:
			w.write(snapshot)
		}
	}
}

func (w *Writer) write(snapshot pricebuffer.Snapshot) {
	at := w.now()
	rows := make([]TickRow, 0, len(snapshot))
	for _, t := range snapshot {
		rows = append(rows, NewTickRow(t, at))
	}
	if err := w.rows.enqueue(rows...); err != nil {
		w.logger.WithError(err).WithField("size", len(rows)).Warn("failed to archive ticks")
	}
}

func (w *Writer) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w.rows.setContext(ctx)
	for {
		select {
		case snapshot := <-w.queue:
			w.write(snapshot)
		default:
			return w.rows.drain(ctx)
		}
	}
}
