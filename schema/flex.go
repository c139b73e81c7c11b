package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Flex is a number decoded from the loosely-typed payloads clients submit.
// JSON numbers decode directly, numeric strings are parsed, and anything
// else becomes NaN so threshold comparisons fail instead of erroring.
type Flex float64

// NaNFlex is the value of an absent or unparseable field.
func NaNFlex() Flex {
	return Flex(math.NaN())
}

func (f Flex) IsNaN() bool {
	return math.IsNaN(float64(f))
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = NaNFlex()
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = Flex(v)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*f = Flex(v)
			return nil
		}
	}
	*f = NaNFlex()
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	if f.IsNaN() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}
