package analysis

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrorPrefix precedes the failure message delivered to the sink.
const ErrorPrefix = "\n[error] failed to fetch analysis.\n"

var (
	ErrAlreadyStreaming = errors.New("analysis stream already active")
	ErrEmptyCode        = errors.New("stock code is required")
)

// State is the lifecycle position of a Stream.
type State int

const (
	Idle State = iota
	Connecting
	Streaming
	Completed
	Errored
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Streaming:
		return "streaming"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Active reports whether a stream in this state is still running.
func (s State) Active() bool {
	return s == Connecting || s == Streaming
}

// Sink receives decoded chunks. It is called from the stream goroutine and
// must not call Cancel synchronously.
type Sink func(Chunk)

// Opener opens the raw analysis response for a stock code.
type Opener interface {
	OpenAnalysis(ctx context.Context, code string) (io.ReadCloser, error)
}

type OpenerFunc func(ctx context.Context, code string) (io.ReadCloser, error)

func (f OpenerFunc) OpenAnalysis(ctx context.Context, code string) (io.ReadCloser, error) {
	return f(ctx, code)
}

// Stream runs at most one analysis request at a time and delivers its
// increments to a sink until completion, failure or cancellation.
type Stream struct {
	opener Opener
	logger *logrus.Entry

	mu      sync.Mutex
	state   State
	current *session
}

type session struct {
	id     uuid.UUID
	code   string
	cancel context.CancelFunc
	done   chan struct{}

	sinkMu    sync.Mutex
	sink      Sink
	cancelled bool
}

// emit invokes the sink unless the session was cancelled. Cancel waits for an
// in-flight call, so no sink call starts after Cancel returns.
func (ss *session) emit(c Chunk) {
	ss.sinkMu.Lock()
	defer ss.sinkMu.Unlock()
	if ss.cancelled || ss.sink == nil {
		return
	}
	ss.sink(c)
}

func (ss *session) markCancelled() {
	ss.sinkMu.Lock()
	ss.cancelled = true
	ss.sinkMu.Unlock()
}

func (ss *session) isCancelled() bool {
	ss.sinkMu.Lock()
	defer ss.sinkMu.Unlock()
	return ss.cancelled
}

func NewStream(opener Opener, logger *logrus.Logger) *Stream {
	return &Stream{
		opener: opener,
		logger: logger.WithField("component", "analysis_stream"),
	}
}

// Start begins streaming the analysis for code. A call while a stream is
// already active is ignored and returns ErrAlreadyStreaming.
func (s *Stream) Start(ctx context.Context, code string, sink Sink) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrEmptyCode
	}

	s.mu.Lock()
	if s.state.Active() {
		s.mu.Unlock()
		return ErrAlreadyStreaming
	}
	runCtx, cancel := context.WithCancel(ctx)
	sess := &session{
		id:     uuid.New(),
		code:   code,
		cancel: cancel,
		done:   make(chan struct{}),
		sink:   sink,
	}
	s.current = sess
	s.state = Connecting
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{"stream_id": sess.id, "code": code}).Debug("analysis stream starting")
	go s.run(runCtx, sess)
	return nil
}

// Cancel aborts the active stream. The sink is never invoked afterwards and
// no error is reported for the cancellation.
func (s *Stream) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.current
	if sess == nil || !s.state.Active() {
		return false
	}
	sess.markCancelled()
	sess.cancel()
	s.state = Cancelled
	s.logger.WithField("stream_id", sess.id).Debug("analysis stream cancelled")
	return true
}

func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed when the current stream goroutine exits. It returns a closed
// channel when no stream was ever started.
func (s *Stream) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.current.done
}

// ID returns the identifier of the most recent stream.
func (s *Stream) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return uuid.Nil
	}
	return s.current.id
}

func (s *Stream) run(ctx context.Context, sess *session) {
	defer close(sess.done)
	defer sess.cancel()

	log := s.logger.WithFields(logrus.Fields{"stream_id": sess.id, "code": sess.code})

	body, err := s.opener.OpenAnalysis(ctx, sess.code)
	if err != nil {
		s.fail(ctx, sess, log, err)
		return
	}
	defer body.Close()

	reader := bufio.NewReader(body)
	delivered := 0
	streaming := false
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if !streaming {
				s.transition(sess, Streaming)
				streaming = true
			}
			chunk, done, ok := Decode(line)
			if done {
				s.transition(sess, Completed)
				log.WithField("chunks", delivered).Debug("analysis stream completed")
				return
			}
			if ok {
				sess.emit(chunk)
				delivered++
			}
		}
		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) && ctx.Err() == nil {
			s.transition(sess, Completed)
			log.WithField("chunks", delivered).Info("analysis stream closed without termination marker")
			return
		}
		s.fail(ctx, sess, log, readErr)
		return
	}
}

func (s *Stream) fail(ctx context.Context, sess *session, log *logrus.Entry, err error) {
	if sess.isCancelled() || errors.Is(ctx.Err(), context.Canceled) {
		s.transition(sess, Cancelled)
		return
	}
	log.WithError(err).Warn("analysis stream failed")
	sess.emit(Chunk{Kind: ErrorNotice, Text: ErrorPrefix + err.Error()})
	s.transition(sess, Errored)
}

// transition moves the state machine for sess unless a newer session has
// replaced it or it already reached a terminal state.
func (s *Stream) transition(sess *session, next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != sess || !s.state.Active() {
		return
	}
	s.state = next
}

// Transcript accumulates chunk text for display. Escaped newlines emitted by
// the upstream model are turned into real line breaks.
type Transcript struct {
	mu sync.Mutex
	b  strings.Builder
}

func (t *Transcript) Append(c Chunk) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.b.WriteString(strings.ReplaceAll(c.Text, `\n`, "\n"))
}

func (t *Transcript) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.b.String()
}

func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.b.Reset()
}
