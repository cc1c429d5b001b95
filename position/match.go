// position/match.go
package position

import (
	"time"

	"github.com/jilee1212/trading-journal/pkg/id"
)

// quantities below this are treated as fully consumed
const qtyEpsilon = 1e-9

// MatchError records a close fill that could not be (fully) matched
// against the open book. Recoverable: the matcher skips and continues.
type MatchError struct {
	OrderID string
	Pair    string
	Time    time.Time
	Reason  string
}

func (e MatchError) Error() string {
	return "match " + e.Pair + " order " + e.OrderID + ": " + e.Reason
}

// MatchResult bundles the derived positions with any non-fatal matching
// errors so the caller can decide whether to warn or proceed.
type MatchResult struct {
	Positions []Position
	Errors    []MatchError
}

// Closed returns only the completed round trips.
func (r MatchResult) Closed() []Position {
	out := make([]Position, 0, len(r.Positions))
	for _, p := range r.Positions {
		if p.IsClosed() {
			out = append(out, p)
		}
	}
	return out
}

// fragment is the still-open remainder of an OPEN fill.
type fragment struct {
	fill Fill
	qty  float64
	fee  float64 // remaining cost magnitude, pro-rated as the fragment splits
}

// book maps (pair, direction) to the FIFO queue of open fragments.
// Keys keep first-seen order so leftover open positions come out in a
// reproducible order.
type book struct {
	queues map[string][]fragment
	keys   []string
}

func newBook() *book {
	return &book{queues: make(map[string][]fragment)}
}

func (b *book) push(f Fill) {
	key := f.Key()
	if _, ok := b.queues[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.queues[key] = append(b.queues[key], fragment{fill: f, qty: f.Quantity, fee: abs(f.Fee)})
}

// Match consumes fills in timestamp order and reconstructs round-trip
// positions. CLOSE fills consume open quantity FIFO per (pair, direction):
// first opened, first closed. A close spanning several open fragments gets
// a quantity-weighted entry price; an open fragment split by a partial
// close stays queued with its remaining quantity and fee share.
//
// The input must already be sorted ascending by timestamp (the parser's
// contract); summation follows that order so results are reproducible.
func Match(fills []Fill) MatchResult {
	var res MatchResult
	b := newBook()

	for _, f := range fills {
		switch f.Action {
		case Open:
			b.push(f)
		case Close:
			res.closeFill(b, f)
		}
	}

	// Whatever is left on the book is still open.
	for _, key := range b.keys {
		for _, frag := range b.queues[key] {
			res.Positions = append(res.Positions, openPosition(frag))
		}
	}

	return res
}

// closeFill consumes the close fill's quantity from the front of its
// queue and emits one closed position for the matched amount.
func (res *MatchResult) closeFill(b *book, f Fill) {
	key := f.Key()
	queue := b.queues[key]

	if len(queue) == 0 {
		res.Errors = append(res.Errors, MatchError{
			OrderID: f.OrderID,
			Pair:    f.Pair,
			Time:    f.Time,
			Reason:  "close with no matching open fill",
		})
		return
	}

	var (
		want          = f.Quantity
		matched       float64
		entryNotional float64
		openFees      float64
	)
	first := queue[0]

	for want > qtyEpsilon && len(queue) > 0 {
		frag := &queue[0]

		take := want
		if take > frag.qty {
			take = frag.qty
		}

		feeShare := frag.fee * take / frag.qty
		entryNotional += frag.fill.Price * take
		openFees += feeShare

		frag.qty -= take
		frag.fee -= feeShare
		matched += take
		want -= take

		if frag.qty <= qtyEpsilon {
			queue = queue[1:]
		}
	}
	b.queues[key] = queue

	if want > qtyEpsilon {
		// The matched part still produces a position; only the excess
		// is unaccounted for.
		res.Errors = append(res.Errors, MatchError{
			OrderID: f.OrderID,
			Pair:    f.Pair,
			Time:    f.Time,
			Reason:  "close quantity exceeds open quantity",
		})
	}
	if matched <= qtyEpsilon {
		return
	}

	entry := entryNotional / matched
	fees := openFees + abs(f.Fee)*matched/f.Quantity

	// Prefer the PnL the exchange reported, pro-rated by the matched
	// fraction; fall back to price arithmetic when the export carries none.
	gross := f.RealizedPnL * matched / f.Quantity
	if f.RealizedPnL == 0 {
		sign := 1.0
		if f.Direction == Short {
			sign = -1.0
		}
		gross = sign * (f.Price - entry) * matched
	}
	net := gross - fees

	p := Position{
		ID:            id.New(),
		OpenOrderID:   first.fill.OrderID,
		CloseOrderIDs: []string{f.OrderID},
		Pair:          f.Pair,
		Direction:     f.Direction,
		Leverage:      first.fill.Leverage,
		EntryPrice:    entry,
		ExitPrice:     f.Price,
		Quantity:      matched,
		OpenTime:      first.fill.Time,
		CloseTime:     f.Time,
		Duration:      f.Time.Sub(first.fill.Time),
		GrossPnL:      gross,
		Fees:          fees,
		NetPnL:        net,
		Status:        StatusClosed,
		Source:        f.Source,
	}
	if m := p.Margin(); m > 0 {
		p.ROIPercent = net / m * 100
	}

	res.Positions = append(res.Positions, p)
}

func openPosition(frag fragment) Position {
	return Position{
		ID:          id.New(),
		OpenOrderID: frag.fill.OrderID,
		Pair:        frag.fill.Pair,
		Direction:   frag.fill.Direction,
		Leverage:    frag.fill.Leverage,
		EntryPrice:  frag.fill.Price,
		Quantity:    frag.qty,
		OpenTime:    frag.fill.Time,
		Fees:        frag.fee,
		Status:      StatusOpen,
		Source:      frag.fill.Source,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
