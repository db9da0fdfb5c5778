package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBackoff is the fixed delay between reconnect attempts.
const DefaultBackoff = 3 * time.Second

var errStreamClosed = errors.New("price stream closed by upstream")

// Opener opens the upstream price event stream.
type Opener interface {
	OpenPriceStream(ctx context.Context) (io.ReadCloser, error)
}

// Sink receives the data of every priceUpdate event.
type Sink func(data []byte) int

// Hub shares one upstream price stream between all subscribers. The first
// Subscribe connects, the last Unsubscribe disconnects, and failures are
// retried with a fixed backoff while anyone is subscribed.
type Hub struct {
	opener  Opener
	sink    Sink
	backoff time.Duration
	logger  *logrus.Entry

	mu     sync.Mutex
	refs   int
	cancel context.CancelFunc
	done   chan struct{}

	connects atomic.Int64
	events   atomic.Int64
}

func NewHub(opener Opener, sink Sink, backoff time.Duration, logger *logrus.Logger) *Hub {
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Hub{
		opener:  opener,
		sink:    sink,
		backoff: backoff,
		logger:  logger.WithField("component", "price_feed"),
	}
}

// Subscribe adds a reference and starts the upstream connection if this is
// the first one.
func (h *Hub) Subscribe() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs++
	if h.refs > 1 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan struct{})
	go h.run(ctx, h.done)
	h.logger.Info("price stream subscribed")
}

// Unsubscribe drops a reference and closes the upstream connection when the
// count reaches zero. It waits for the connection goroutine to exit.
func (h *Hub) Unsubscribe() {
	h.mu.Lock()
	if h.refs == 0 {
		h.mu.Unlock()
		return
	}
	h.refs--
	if h.refs > 0 {
		h.mu.Unlock()
		return
	}
	cancel, done := h.cancel, h.done
	h.cancel, h.done = nil, nil
	h.mu.Unlock()

	cancel()
	<-done
	h.logger.Info("price stream closed")
}

// Refs reports the current subscriber count.
func (h *Hub) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Connects reports how many times the upstream stream was opened.
func (h *Hub) Connects() int64 {
	return h.connects.Load()
}

// Events reports how many priceUpdate events were delivered.
func (h *Hub) Events() int64 {
	return h.events.Load()
}

func (h *Hub) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		err := h.stream(ctx)
		if ctx.Err() != nil {
			return
		}
		h.logger.WithError(err).WithField("backoff", h.backoff).Warn("price stream interrupted, reconnecting")

		timer := time.NewTimer(h.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (h *Hub) stream(ctx context.Context) error {
	body, err := h.opener.OpenPriceStream(ctx)
	if err != nil {
		return err
	}
	defer body.Close()

	// Closing the body unblocks the reader when the last subscriber leaves.
	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer stop()

	h.connects.Add(1)
	h.logger.Debug("price stream connected")

	err = ReadEvents(body, func(ev Event) {
		if ev.Name != PriceUpdateEvent {
			return
		}
		h.events.Add(1)
		h.sink([]byte(ev.Data))
	})
	if err != nil {
		return err
	}
	return errStreamClosed
}
