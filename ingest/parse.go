// ingest/parse.go
package ingest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jilee1212/trading-journal/position"
)

// Exchange exports stamp times in UTC+8 without an explicit offset.
// Normalized to UTC exactly once, here.
var sourceZone = time.FixedZone("UTC+8", 8*60*60)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// Result bundles the valid fills with the rows that were dropped, so the
// caller can decide whether to proceed or warn.
type Result struct {
	Fills  []position.Fill
	Errors []RowError
}

// Parse turns a raw row grid (header row first) into fills sorted
// ascending by timestamp. The format is detected from the header
// signature; an unrecognized header fails with a *FormatError before any
// row is touched. Rows that fail coercion are dropped and counted,
// never fatal. Zero valid fills is an empty result, not an error.
func Parse(rows [][]string, source string) (*Result, error) {
	return ParseInLocation(rows, source, time.UTC)
}

// ParseInLocation is Parse with an explicit fallback zone for the simple
// format, whose timestamps carry no offset of their own.
func ParseInLocation(rows [][]string, source string, loc *time.Location) (*Result, error) {
	if len(rows) == 0 {
		return &Result{}, nil
	}

	cols := headerIndex(rows[0])

	var (
		res *Result
		err error
	)
	if _, ok := cols["Type"]; ok {
		if _, ok := cols["Pair"]; ok {
			res, err = parseExtended(rows[1:], cols, source)
		}
	}
	if res == nil && err == nil {
		res, err = parseSimple(rows[1:], cols, source, loc)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(res.Fills, func(i, j int) bool {
		return res.Fills[i].Time.Before(res.Fills[j].Time)
	})
	return res, nil
}

// ParseFile reads and parses a CSV or Excel export in one step, tagging
// fills with the file's base name.
func ParseFile(path string) (*Result, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(rows, filepath.Base(path))
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

// firstOf returns the index of the first header name present.
func firstOf(cols map[string]int, names ...string) (int, string, bool) {
	for _, name := range names {
		if i, ok := cols[name]; ok {
			return i, name, true
		}
	}
	return 0, names[0], false
}

// parseExtended handles the futures order-history export: combined
// "Open Long"/"Close Short" type strings, "NX" leverage, realized PnL
// amounts like "12.3456 USDT", timestamps in UTC+8.
func parseExtended(rows [][]string, cols map[string]int, source string) (*Result, error) {
	timeCol, _, ok := firstOf(cols, "Time(UTC+8)", "Time")
	if !ok {
		return nil, &FormatError{Missing: "Time(UTC+8)"}
	}
	for _, required := range []string{"Pair", "Type", "Leverage", "DealPrice", "Quantity", "Fee", "Realized PNL"} {
		if _, ok := cols[required]; !ok {
			return nil, &FormatError{Missing: required}
		}
	}
	orderCol, _, hasOrder := firstOf(cols, "Order No", "OrderId", "Order ID")

	res := &Result{}
	for n, row := range rows {
		line := n + 2
		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		ts, err := parseTime(get(timeCol), sourceZone)
		if err != nil {
			res.drop(line, fmt.Sprintf("bad timestamp %q", get(timeCol)))
			continue
		}

		act, dir, err := position.ParseType(get(cols["Type"]))
		if err != nil {
			res.drop(line, err.Error())
			continue
		}

		lev, err := parseLeverage(get(cols["Leverage"]))
		if err != nil {
			res.drop(line, err.Error())
			continue
		}

		price, err := parsePositiveFloat(get(cols["DealPrice"]), "price")
		if err != nil {
			res.drop(line, err.Error())
			continue
		}
		qty, err := parsePositiveFloat(get(cols["Quantity"]), "quantity")
		if err != nil {
			res.drop(line, err.Error())
			continue
		}
		if qty == 0 {
			// Zero-quantity lines carry no exposure; same as the
			// exchange's own statement views, they are ignored.
			continue
		}

		fee, err := parseFloat(get(cols["Fee"]), "fee")
		if err != nil {
			res.drop(line, err.Error())
			continue
		}
		realized, err := parseAmount(get(cols["Realized PNL"]))
		if err != nil {
			res.drop(line, err.Error())
			continue
		}

		orderID := fmt.Sprintf("%s#%d", source, line)
		if hasOrder && get(orderCol) != "" {
			orderID = get(orderCol)
		}

		res.Fills = append(res.Fills, position.Fill{
			OrderID:     orderID,
			Time:        ts.UTC(),
			Pair:        strings.ReplaceAll(get(cols["Pair"]), "-", ""),
			Direction:   dir,
			Action:      act,
			Leverage:    lev,
			Price:       price,
			Quantity:    qty,
			Fee:         fee,
			RealizedPnL: realized,
			Source:      source,
		})
	}
	return res, nil
}

// parseSimple handles the plain spot export: Time/Date, Symbol/Pair,
// BUY/SELL side, Price/Average, Executed/Qty/Quantity, optional Fee.
func parseSimple(rows [][]string, cols map[string]int, source string, loc *time.Location) (*Result, error) {
	timeCol, timeName, ok := firstOf(cols, "Time", "Date", "Time(UTC)")
	if !ok {
		return nil, &FormatError{Missing: timeName}
	}
	symCol, symName, ok := firstOf(cols, "Symbol", "Pair")
	if !ok {
		return nil, &FormatError{Missing: symName}
	}
	sideCol, _, ok := firstOf(cols, "Side")
	if !ok {
		return nil, &FormatError{Missing: "Side"}
	}
	priceCol, priceName, ok := firstOf(cols, "Price", "Average")
	if !ok {
		return nil, &FormatError{Missing: priceName}
	}
	qtyCol, qtyName, ok := firstOf(cols, "Executed", "Qty", "Quantity")
	if !ok {
		return nil, &FormatError{Missing: qtyName}
	}
	feeCol, _, hasFee := firstOf(cols, "Fee")

	res := &Result{}
	for n, row := range rows {
		line := n + 2
		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		ts, err := parseTime(get(timeCol), loc)
		if err != nil {
			res.drop(line, fmt.Sprintf("bad timestamp %q", get(timeCol)))
			continue
		}

		act, dir, err := position.ParseSide(get(sideCol))
		if err != nil {
			res.drop(line, err.Error())
			continue
		}

		price, err := parsePositiveFloat(get(priceCol), "price")
		if err != nil {
			res.drop(line, err.Error())
			continue
		}
		qty, err := parsePositiveFloat(get(qtyCol), "quantity")
		if err != nil {
			res.drop(line, err.Error())
			continue
		}
		if qty == 0 {
			continue
		}

		var fee float64
		if hasFee && get(feeCol) != "" {
			fee, err = parseFloat(get(feeCol), "fee")
			if err != nil {
				res.drop(line, err.Error())
				continue
			}
		}

		res.Fills = append(res.Fills, position.Fill{
			OrderID:   fmt.Sprintf("%s#%d", source, line),
			Time:      ts.UTC(),
			Pair:      strings.ReplaceAll(get(symCol), "-", ""),
			Direction: dir,
			Action:    act,
			Leverage:  1,
			Price:     price,
			Quantity:  qty,
			Fee:       fee,
			Source:    source,
		})
	}
	return res, nil
}

func (r *Result) drop(line int, reason string) {
	r.Errors = append(r.Errors, RowError{Line: line, Reason: reason})
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}

// parseLeverage turns "5X" (or "5") into 5. Empty means unlevered.
func parseLeverage(s string) (int, error) {
	s = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "X")
	if s == "" {
		return 1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad leverage %q", s)
	}
	return int(v), nil
}

// parseAmount strips a trailing currency unit, e.g. "-1.2345 USDT".
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	fields := strings.Fields(s)
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q", s)
	}
	return v, nil
}

func parseFloat(s, what string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", what, s)
	}
	return v, nil
}

func parsePositiveFloat(s, what string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", what)
	}
	v, err := parseFloat(s, what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative %s %q", what, s)
	}
	return v, nil
}
