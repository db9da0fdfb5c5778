package feed

import (
	"bufio"
	"io"
	"strings"
)

// PriceUpdateEvent is the event name carrying tick payloads.
const PriceUpdateEvent = "priceUpdate"

const maxLineSize = 1 << 20

// Event is one dispatched event-stream message.
type Event struct {
	Name string
	ID   string
	Data string
}

// ReadEvents parses an event stream and calls fn for every dispatched event.
// Multiple data lines are joined with a newline; a blank line dispatches.
// Comment lines and unknown fields are ignored. An event left undispatched
// at EOF is discarded. It returns nil on EOF.
func ReadEvents(r io.Reader, fn func(Event)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		ev      Event
		data    []string
		hasData bool
	)
	dispatch := func() {
		if hasData {
			ev.Data = strings.Join(data, "\n")
			if ev.Name == "" {
				ev.Name = "message"
			}
			fn(ev)
		}
		ev = Event{}
		data = data[:0]
		hasData = false
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			dispatch()
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.Name = value
		case "data":
			data = append(data, value)
			hasData = true
		case "id":
			ev.ID = value
		}
	}
	return scanner.Err()
}
