package tradebook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DecodeMarks reads mark prices from a JSON quote document.
//
// path is a JSONPath expression selecting an object whose properties are
// symbols and values are prices, as numbers or numeric strings. For
// instance "$" for {"AAPL": 190.5}, or "$.quotes" for {"quotes": {...}}.
// An expression may also select a list of such objects, they are merged in order.
func DecodeMarks(r io.Reader, path string) (map[string]Money, error) {
	if path == "" {
		path = "$"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse quotes: %w", err)
	}

	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}

	// jsonpath returns either a single value or a list of matches.
	objects, ok := selected.([]any)
	if !ok {
		objects = []any{selected}
	}

	marks := make(map[string]Money)
	for _, obj := range objects {
		prices, ok := obj.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q selects %T, want an object of prices", path, obj)
		}
		for symbol, raw := range prices {
			price, err := parseMark(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid price for %q: %w", symbol, err)
			}
			marks[NormalizeSymbol(symbol)] = price
		}
	}
	return marks, nil
}

func parseMark(raw any) (Money, error) {
	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	case float64:
		return M(v), nil
	default:
		return Money{}, fmt.Errorf("unsupported value %v", raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("negative price %s", s)
	}
	return M(d), nil
}
