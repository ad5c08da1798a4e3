package request

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number accepts either a JSON number or a numeric string. Decoding never
// fails; a malformed value is kept raw and reported by Float/Int so the
// validator can name the offending field.
type Number struct {
	raw     string
	present bool
}

// Num builds a Number from its textual form.
func Num(raw string) Number {
	raw = strings.TrimSpace(raw)
	return Number{raw: raw, present: raw != ""}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Number{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Number{raw: string(data), present: true}
			return nil
		}
		*n = Num(s)
	default:
		*n = Number{raw: string(data), present: len(data) > 0}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	if _, ok := n.Float(); ok {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a non-null, non-blank value was supplied.
func (n Number) IsSet() bool { return n.present }

func (n Number) String() string { return n.raw }

func (n Number) Float() (float64, bool) {
	if !n.present {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int succeeds only for integral values, so "2" and 2.0 pass but 2.5 does not.
func (n Number) Int() (int, bool) {
	f, ok := n.Float()
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
