package sheet

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a stored integer that tolerates sparsely authored data.
// It decodes JSON numbers, numeric strings and strings with a leading integer
// ("3rd" -> 3). Anything else, including null and "", decodes to 0.
type Number int

func (n Number) Int() int {
	return int(n)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}

	switch string(data) {
	case "true":
		*n = 1
		return nil
	case "false":
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(math.Trunc(f))
	return nil
}

// ParseNumber coerces a string the way stored level values are read:
// a full numeric parse first, then the leading integer, otherwise 0.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(math.Trunc(f))
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return Number(v)
}
