package analysis

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Chunk
		done bool
		ok   bool
	}{
		{name: "blank", line: "   \r\n"},
		{name: "empty data field", line: "data:   "},
		{name: "done sentinel", line: "data: [DONE]", done: true},
		{name: "bare done sentinel", line: "[DONE]\n", done: true},
		{
			name: "structured candidate",
			line: `data: {"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`,
			want: Chunk{Kind: StructuredCandidate, Text: "hello"},
			ok:   true,
		},
		{
			name: "json without candidate path",
			line: `data: {"b":2,"a":1}`,
			want: Chunk{Kind: UnknownJSON, Text: `{"a":1,"b":2}`},
			ok:   true,
		},
		{
			name: "candidate with non-text part",
			line: `{"candidates":[{"content":{"parts":[{"inline":1}]}}]}`,
			want: Chunk{Kind: UnknownJSON, Text: `{"candidates":[{"content":{"parts":[{"inline":1}]}}]}`},
			ok:   true,
		},
		{
			name: "candidate with empty text",
			line: `data: {"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
			want: Chunk{Kind: UnknownJSON, Text: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
			ok:   true,
		},
		{
			name: "plain text keeps line break",
			line: "data: Samsung shows strength",
			want: Chunk{Kind: PlainText, Text: "Samsung shows strength\n"},
			ok:   true,
		},
		{
			name: "malformed json degrades to text",
			line: `data: {"candidates":[`,
			want: Chunk{Kind: PlainText, Text: "{\"candidates\":[\n"},
			ok:   true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, done, ok := Decode(tc.line)
			require.Equal(t, tc.done, done)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

type recorder struct {
	mu     sync.Mutex
	chunks []Chunk
}

func (r *recorder) sink(c Chunk) {
	r.mu.Lock()
	r.chunks = append(r.chunks, c)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Chunk, len(r.chunks))
	copy(out, r.chunks)
	return out
}

func newTestStream(opener Opener) *Stream {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStream(opener, logger)
}

func staticOpener(body string) OpenerFunc {
	return func(context.Context, string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func waitDone(t *testing.T, s *Stream) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not finish")
	}
}

func TestStream_DoneStopsDelivery(t *testing.T) {
	body := strings.Join([]string{
		`data: {"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`,
		"",
		"data: [DONE]",
		"data: after the end",
	}, "\n")
	s := newTestStream(staticOpener(body))
	rec := &recorder{}

	require.NoError(t, s.Start(context.Background(), "005930", rec.sink))
	waitDone(t, s)

	require.Equal(t, []Chunk{{Kind: StructuredCandidate, Text: "hello"}}, rec.snapshot())
	require.Equal(t, Completed, s.State())
}

func TestStream_MixedPayloads(t *testing.T) {
	body := "data: line one\ndata: {\"note\":\"x\"}\nline two"
	s := newTestStream(staticOpener(body))
	rec := &recorder{}

	require.NoError(t, s.Start(context.Background(), "005930", rec.sink))
	waitDone(t, s)

	require.Equal(t, []Chunk{
		{Kind: PlainText, Text: "line one\n"},
		{Kind: UnknownJSON, Text: `{"note":"x"}`},
		{Kind: PlainText, Text: "line two\n"},
	}, rec.snapshot())
	require.Equal(t, Completed, s.State(), "eof without marker still completes")
}

func TestStream_OpenFailureReachesSink(t *testing.T) {
	s := newTestStream(OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
		return nil, errors.New("status 502")
	}))
	rec := &recorder{}

	require.NoError(t, s.Start(context.Background(), "005930", rec.sink))
	waitDone(t, s)

	chunks := rec.snapshot()
	require.Len(t, chunks, 1)
	require.Equal(t, ErrorNotice, chunks[0].Kind)
	require.Equal(t, ErrorPrefix+"status 502", chunks[0].Text)
	require.Equal(t, Errored, s.State())
}

// pipeOpener hands out a body whose reads fail once the request context ends,
// like an HTTP response body.
func pipeOpener() (OpenerFunc, *io.PipeWriter) {
	pr, pw := io.Pipe()
	return func(ctx context.Context, _ string) (io.ReadCloser, error) {
		go func() {
			<-ctx.Done()
			pr.CloseWithError(ctx.Err())
		}()
		return pr, nil
	}, pw
}

func TestStream_CancelSilencesSink(t *testing.T) {
	opener, pw := pipeOpener()
	s := newTestStream(opener)
	rec := &recorder{}

	require.NoError(t, s.Start(context.Background(), "005930", rec.sink))
	_, err := pw.Write([]byte("data: first\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, Streaming, s.State())

	require.True(t, s.Cancel())
	waitDone(t, s)

	_, _ = pw.Write([]byte("data: second\n"))
	require.Len(t, rec.snapshot(), 1, "no sink call after cancel, not even an error")
	require.Equal(t, Cancelled, s.State())
	require.False(t, s.Cancel(), "cancel is a no-op once terminal")
}

func TestStream_ReentrantStartIgnored(t *testing.T) {
	opener, pw := pipeOpener()
	s := newTestStream(opener)
	rec := &recorder{}

	require.NoError(t, s.Start(context.Background(), "005930", rec.sink))
	first := s.ID()
	require.ErrorIs(t, s.Start(context.Background(), "000660", rec.sink), ErrAlreadyStreaming)
	require.Equal(t, first, s.ID())

	_, _ = pw.Write([]byte("data: [DONE]\n"))
	waitDone(t, s)
	require.Equal(t, Completed, s.State())

	s.opener = staticOpener("data: [DONE]\n")
	require.NoError(t, s.Start(context.Background(), "000660", rec.sink), "a finished stream can be restarted")
	waitDone(t, s)
	require.NotEqual(t, first, s.ID())
}

func TestStream_RejectsEmptyCode(t *testing.T) {
	s := newTestStream(staticOpener(""))
	require.ErrorIs(t, s.Start(context.Background(), "  ", func(Chunk) {}), ErrEmptyCode)
	require.Equal(t, Idle, s.State())
}

func TestTranscript_UnescapesNewlines(t *testing.T) {
	var tr Transcript
	tr.Append(Chunk{Kind: StructuredCandidate, Text: `first\nsecond`})
	tr.Append(Chunk{Kind: PlainText, Text: "third\n"})
	require.Equal(t, "first\nsecondthird\n", tr.String())

	tr.Reset()
	require.Empty(t, tr.String())
}
