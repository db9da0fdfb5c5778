package market

import "fmt"

// Venue identifies a trading venue. The unified venue is synthetic and has
// no native price feed.
type Venue string

const (
	VenuePrimary   Venue = "J"
	VenueAlternate Venue = "NX"
	VenueUnified   Venue = "UN"
)

func (v Venue) String() string {
	return string(v)
}

func (v Venue) IsValid() bool {
	switch v {
	case VenuePrimary, VenueAlternate, VenueUnified:
		return true
	default:
		return false
	}
}

// IsConcrete reports whether the venue publishes its own ticks.
func (v Venue) IsConcrete() bool {
	return v == VenuePrimary || v == VenueAlternate
}

// OrDefault maps the empty venue to the primary exchange, as the feed does.
func (v Venue) OrDefault() Venue {
	if v == "" {
		return VenuePrimary
	}
	return v
}

// Next cycles J -> NX -> UN -> J.
func (v Venue) Next() Venue {
	switch v {
	case VenuePrimary:
		return VenueAlternate
	case VenueAlternate:
		return VenueUnified
	default:
		return VenuePrimary
	}
}

func (v Venue) DisplayName() string {
	switch v {
	case VenueAlternate:
		return "NXT"
	case VenueUnified:
		return "UN"
	default:
		return "KRX"
	}
}

func ParseVenue(s string) (Venue, error) {
	v := Venue(s).OrDefault()
	if !v.IsValid() {
		return "", fmt.Errorf("invalid venue: %s", s)
	}
	return v, nil
}

// Sign is the backend's categorical price direction code.
type Sign string

const (
	SignLimitUp   Sign = "1"
	SignUp        Sign = "2"
	SignUnchanged Sign = "3"
	SignLimitDown Sign = "4"
	SignDown      Sign = "5"
)

// limitRate is the change rate (percent) treated as a limit move.
const limitRate = 29.5

// SignForRate derives a sign from a percentage change rate.
func SignForRate(rate float64) Sign {
	switch {
	case rate >= limitRate:
		return SignLimitUp
	case rate > 0:
		return SignUp
	case rate <= -limitRate:
		return SignLimitDown
	case rate < 0:
		return SignDown
	default:
		return SignUnchanged
	}
}

func (s Sign) OrDefault() Sign {
	if s == "" {
		return SignUnchanged
	}
	return s
}

// Symbol returns the glyph shown next to a price.
func (s Sign) Symbol() string {
	switch s {
	case SignLimitUp:
		return "⬆"
	case SignUp:
		return "▲"
	case SignLimitDown:
		return "⬇"
	case SignDown:
		return "▼"
	default:
		return ""
	}
}

// Period is the chart bar granularity.
type Period string

const (
	PeriodFiveMinutes Period = "5m"
	PeriodDay         Period = "1D"
	PeriodWeek        Period = "1W"
	PeriodMonth       Period = "1M"
)

func (p Period) String() string {
	return string(p)
}

func (p Period) IsValid() bool {
	switch p {
	case PeriodFiveMinutes, PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

func (p Period) IsIntraday() bool {
	return p == PeriodFiveMinutes
}

func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if s == "" {
		p = PeriodDay
	}
	if !p.IsValid() {
		return "", fmt.Errorf("invalid period: %s", s)
	}
	return p, nil
}
