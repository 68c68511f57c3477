package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ToInt converts various types to int using explicit type switching.
// Strings are parsed leniently: leading whitespace is skipped and the longest
// integer prefix is used ("12abc" -> 12, "2.5" -> 2). Anything unparseable is 0. Values outside
// the int range are clamped.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case uint:
		return uintToInt(uint64(v))
	case uint64:
		return uintToInt(v)
	case uint32:
		return int(v)
	case uint16:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		// Out-of-range values come back as +-Inf with ErrRange
		if f, err := v.Float64(); err == nil || errors.Is(err, strconv.ErrRange) {
			return floatToInt(f)
		}
		return parseIntPrefix(string(v))
	case string:
		return parseIntPrefix(v)
	case []byte:
		return parseIntPrefix(string(v))
	case bool:
		return 0
	default:
		return parseIntPrefix(fmt.Sprintf("%v", v))
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// floatToInt truncates f toward zero, clamping to the int range. NaN is 0.
func floatToInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func uintToInt(u uint64) int {
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

// parseIntPrefix parses an optional sign followed by digits at the start of s.
func parseIntPrefix(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	i, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return i
}
