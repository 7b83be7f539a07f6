package viomi

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Snapshot is the most recently fetched full property set.
// It always holds every AllProps key and every alias key.
type Snapshot map[string]interface{}

// Builds a fresh snapshot out of get_prop response.
// Values missing in the response are stored as nil.
func newSnapshot(values []interface{}) Snapshot {
	s := make(Snapshot, len(AllProps)+len(propAliases))
	for ii, prop := range AllProps {
		if ii < len(values) {
			s[prop] = values[ii]
		} else {
			s[prop] = nil
		}
	}

	for _, v := range propAliases {
		s[v.alias] = s[v.source]
	}

	return s
}

// Copy returns a shallow copy of the snapshot.
func (s Snapshot) Copy() map[string]interface{} {
	out := make(map[string]interface{}, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Int returns property coerced to integer.
func (s Snapshot) Int(prop string) (int, bool) {
	if s == nil {
		return 0, false
	}
	return toInt(s[prop])
}

// Coerces raw device value into integer.
// Fractional numbers are truncated, numeric strings are parsed.
func toInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case float32:
		return toInt(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return toInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return i, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

// Reports whether raw device value is set.
func truthy(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	}

	i, ok := toInt(raw)
	if !ok {
		return true
	}
	if f, isFloat := raw.(float64); isFloat {
		return f != 0
	}
	return i != 0
}

// Holds the last successfully validated value.
type optional[T any] struct {
	value T
	set   bool
}

// Replaces stored value, should be called only after a successful validation.
func (o *optional[T]) update(v T) {
	o.value = v
	o.set = true
}

func (o *optional[T]) get() (T, bool) {
	return o.value, o.set
}
