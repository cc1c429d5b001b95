// position/position.go
package position

import "time"

// Status of a position: still open or fully round-tripped.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Position is a matched open-to-close round trip. Closed positions are
// derived by the matcher, one per close fill; remaining open fragments at
// the end of the stream surface as open positions with zero exit fields.
type Position struct {
	ID            string
	OpenOrderID   string // first contributing open fill
	CloseOrderIDs []string
	Pair          string
	Direction     Direction
	Leverage      int
	EntryPrice    float64 // weighted average over contributing open fragments
	ExitPrice     float64 // zero while open
	Quantity      float64
	OpenTime      time.Time
	CloseTime     time.Time // zero while open
	Duration      time.Duration
	GrossPnL      float64
	Fees          float64 // cost magnitude across contributing fragments
	NetPnL        float64
	ROIPercent    float64
	Status        Status
	Source        string
}

// IsClosed reports whether the round trip completed.
func (p Position) IsClosed() bool {
	return p.Status == StatusClosed
}

// Margin is the capital committed to the position: entry notional divided
// by leverage. ROI is net PnL over this figure.
func (p Position) Margin() float64 {
	if p.Leverage <= 0 {
		return p.EntryPrice * p.Quantity
	}
	return p.EntryPrice * p.Quantity / float64(p.Leverage)
}
