// position/fill.go
package position

import (
	"fmt"
	"strings"
	"time"
)

// Direction of a trade: long or short.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Action says whether a fill opens or closes exposure.
type Action string

const (
	Open  Action = "OPEN"
	Close Action = "CLOSE"
)

// Fill is a single executed order line from an exchange export.
// Times are UTC; the source offset is normalized once at parse time.
type Fill struct {
	OrderID     string
	Time        time.Time
	Pair        string
	Direction   Direction
	Action      Action
	Leverage    int
	Price       float64
	Quantity    float64
	Fee         float64 // sign preserved as exported (negative = cost)
	RealizedPnL float64 // zero for OPEN fills
	Source      string
}

// Key identifies the matching book a fill belongs to.
func (f Fill) Key() string {
	return f.Pair + "_" + string(f.Direction)
}

// ParseType decodes a combined type string like "Open Long" or
// "Close Short" into its action and direction.
func ParseType(s string) (Action, Direction, error) {
	var act Action
	var dir Direction

	switch {
	case strings.Contains(s, "Open"):
		act = Open
	case strings.Contains(s, "Close"):
		act = Close
	default:
		return "", "", fmt.Errorf("unknown trade type %q", s)
	}

	switch {
	case strings.Contains(s, "Long"):
		dir = Long
	case strings.Contains(s, "Short"):
		dir = Short
	default:
		return "", "", fmt.Errorf("unknown trade type %q", s)
	}

	return act, dir, nil
}

// ParseSide decodes a simple-format side column. BUY/LONG opens a long,
// SELL/SHORT closes it; the simple export has no short side of its own.
func ParseSide(s string) (Action, Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return Open, Long, nil
	case "SELL", "SHORT":
		return Close, Long, nil
	}
	return "", "", fmt.Errorf("unknown side %q", s)
}
