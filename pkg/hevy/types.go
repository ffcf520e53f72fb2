package hevy

import (
	"encoding/json"
	"math"
)

// Record is a decoded JSON object returned by the API. Its shape belongs to
// the server; the client only reads the fields it needs (e.g. the workout
// count) and passes the rest through untouched.
type Record map[string]any

// Int returns the value at key as an int. It reports false when the key is
// missing or the value is not a whole number.
func (r Record) Int(key string) (int, bool) {
	switch value := r[key].(type) {
	case float64:
		if value != math.Trunc(value) || value > math.MaxInt || value < math.MinInt {
			return 0, false
		}

		return int(value), true
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, false
		}

		return int(n), true
	case int:
		return value, true
	case int64:
		return int(value), true
	default:
		return 0, false
	}
}

// String returns the value at key when it is a string.
func (r Record) String(key string) (string, bool) {
	value, ok := r[key].(string)

	return value, ok
}

// Records returns the list at key as Records, skipping non-object elements.
// Useful for reading the items of a collection response.
func (r Record) Records(key string) []Record {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}

	records := make([]Record, 0, len(items))

	for _, item := range items {
		switch object := item.(type) {
		case map[string]any:
			records = append(records, Record(object))
		case Record:
			records = append(records, object)
		}
	}

	return records
}
