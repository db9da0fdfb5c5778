package broker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"stockplus/internal/application/service/pricebuffer"
	market "stockplus/internal/domain/entity/market"
)

var errEmptyMessage = errors.New("message carries no ticks")

// TickMessage is the envelope published by upstream tick producers. Bare tick
// objects and arrays are accepted as well.
type TickMessage struct {
	Tick  *market.Tick  `json:"tick,omitempty"`
	Ticks []market.Tick `json:"ticks,omitempty"`
}

// DecodeMessage extracts the ticks carried by a delivery body.
func DecodeMessage(body []byte) ([]market.Tick, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var msg TickMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		if msg.Tick != nil || len(msg.Ticks) > 0 {
			ticks := msg.Ticks
			if msg.Tick != nil {
				ticks = append([]market.Tick{*msg.Tick}, ticks...)
			}
			return ticks, nil
		}
	}
	ticks, err := pricebuffer.DecodeTicks(body)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if len(ticks) == 0 {
		return nil, errEmptyMessage
	}
	return ticks, nil
}
