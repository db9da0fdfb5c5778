package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"stockplus/internal/application/service/analysis"
	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/interfaces/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const subscriberBuffer = 16

type watchlistUpdate struct {
	Type  string              `json:"type"`
	Group int                 `json:"group"`
	Items []market.Instrument `json:"items"`
}

type analysisFrame struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type chunkEvent struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type analysisStatus struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code,omitempty"`
	State string    `json:"state"`
	Text  string    `json:"text"`
}

// fanout hands published values to every subscribed SSE request. Slow
// subscribers miss values instead of blocking the publisher.
type fanout struct {
	mu   sync.Mutex
	subs map[chan any]struct{}
}

func newFanout() *fanout {
	return &fanout{subs: make(map[chan any]struct{})}
}

func (f *fanout) subscribe() chan any {
	ch := make(chan any, subscriberBuffer)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *fanout) unsubscribe(ch chan any) {
	f.mu.Lock()
	delete(f.subs, ch)
	f.mu.Unlock()
}

func (f *fanout) publish(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

func (f *fanout) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// onControl handles socket requests beyond pause and resume.
func (h *Handler) onControl(cl *ws.Client, ctrl ws.ControlMsg) {
	switch ctrl.Action {
	case "select":
		code, _ := ctrl.Value.(string)
		if err := h.coordinator.Select(context.Background(), code); err != nil {
			cl.Send(ws.StatusMsg{Type: "status", Level: "warn", Text: err.Error()})
		}
	case "clear":
		h.coordinator.ClearSelection()
	default:
		h.logger.WithField("action", ctrl.Action).Debug("unknown control action")
	}
}

// streamPrices streams watchlist updates as server sent events
// @Summary      Live watchlist
// @Description  Sends the active group, then one watchlist event per flush
// @Tags         stream
// @Produce      text/event-stream
// @Success      200  {object}  watchlistUpdate
// @Router       /stream/prices [get]
func (h *Handler) streamPrices(c *gin.Context) {
	ctx := c.Request.Context()
	h.subscribeFeed()
	defer h.unsubscribeFeed()

	updates := h.updates.subscribe()
	defer h.updates.unsubscribe(updates)

	if items, err := h.coordinator.Instruments(ctx); err == nil {
		c.SSEvent("watchlist", watchlistUpdate{Type: "watchlist", Group: h.coordinator.State().Group, Items: items})
		c.Writer.Flush()
	} else {
		h.logger.WithError(err).Warn("initial watchlist load failed")
	}

	c.Stream(func(io.Writer) bool {
		select {
		case v := <-updates:
			c.SSEvent("watchlist", v)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// getAnalysis returns the dashboard analysis transcript
// @Summary      Analysis status
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  analysisStatus
// @Router       /analysis [get]
func (h *Handler) getAnalysis(c *gin.Context) {
	h.analysisMu.Lock()
	code := h.analysisCode
	h.analysisMu.Unlock()
	c.JSON(http.StatusOK, analysisStatus{
		ID:    h.dashboard.ID(),
		Code:  code,
		State: h.dashboard.State().String(),
		Text:  h.transcript.String(),
	})
}

// startAnalysis starts the dashboard analysis for a stock
// @Summary      Start analysis
// @Description  Chunks are appended to the transcript and broadcast on the socket
// @Tags         analysis
// @Produce      json
// @Param        code  path      string  true  "Stock code"
// @Success      202   {object}  analysisStatus
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /analysis/{code} [post]
func (h *Handler) startAnalysis(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	h.analysisMu.Lock()
	defer h.analysisMu.Unlock()

	if h.dashboard.State().Active() {
		h.fail(c, analysis.ErrAlreadyStreaming)
		return
	}
	h.transcript.Reset()
	if err := h.dashboard.Start(context.WithoutCancel(c.Request.Context()), code, h.relayChunk); err != nil {
		h.fail(c, err)
		return
	}
	h.analysisCode = code
	c.JSON(http.StatusAccepted, analysisStatus{
		ID:    h.dashboard.ID(),
		Code:  code,
		State: h.dashboard.State().String(),
	})
}

// cancelAnalysis aborts the dashboard analysis
// @Summary      Cancel analysis
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /analysis [delete]
func (h *Handler) cancelAnalysis(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cancelled": h.dashboard.Cancel()})
}

func (h *Handler) relayChunk(chunk analysis.Chunk) {
	h.transcript.Append(chunk)
	if h.hub != nil {
		h.hub.Broadcast(analysisFrame{Type: "analysis.chunk", Kind: chunk.Kind.String(), Text: chunk.Text})
	}
}

// streamAnalysis relays one analysis as server sent events
// @Summary      Stream analysis
// @Description  One chunk event per increment, then a done event with the final state
// @Tags         analysis
// @Produce      text/event-stream
// @Param        code  path  string  true  "Stock code"
// @Success      200   {object}  chunkEvent
// @Failure      400   {object}  map[string]string
// @Router       /analysis/{code}/stream [get]
func (h *Handler) streamAnalysis(c *gin.Context) {
	ctx := c.Request.Context()
	chunks := make(chan analysis.Chunk, subscriberBuffer)
	stream := analysis.NewStream(h.opener, h.base)

	sink := func(chunk analysis.Chunk) {
		select {
		case chunks <- chunk:
		case <-ctx.Done():
		}
	}
	if err := stream.Start(ctx, c.Param("code"), sink); err != nil {
		h.fail(c, err)
		return
	}
	defer stream.Cancel()
	done := stream.Done()

	emit := func(chunk analysis.Chunk) {
		c.SSEvent("chunk", chunkEvent{Kind: chunk.Kind.String(), Text: chunk.Text})
	}
	c.Stream(func(io.Writer) bool {
		select {
		case chunk := <-chunks:
			emit(chunk)
			return true
		case <-done:
			for {
				select {
				case chunk := <-chunks:
					emit(chunk)
				default:
					c.SSEvent("done", gin.H{"state": stream.State().String()})
					return false
				}
			}
		case <-ctx.Done():
			return false
		}
	})
}
