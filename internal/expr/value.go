package expr

import (
	"math"
	"strconv"
	"strings"
)

// Value is the numeric result of an evaluation.
//
// It keeps the engine's own rendering of the number so that steps and history
// show exactly what a JavaScript calculator would ("0.30000000000000004",
// "Infinity", "1e+21").
type Value struct {
	number float64
	text   string
}

// NewValue wraps a float64, formatting it the way JavaScript would.
func NewValue(f float64) Value {
	return Value{number: f, text: formatNumber(f)}
}

// Float64 returns the numeric value.
func (v Value) Float64() float64 { return v.number }

// String returns the display form of the value.
func (v Value) String() string {
	if v.text == "" {
		return formatNumber(v.number)
	}
	return v.text
}

// IsFinite reports whether the value is neither infinite nor NaN.
func (v Value) IsFinite() bool {
	return !math.IsInf(v.number, 0) && !math.IsNaN(v.number)
}

// MarshalJSON encodes finite values as JSON numbers and the non-finite ones,
// which JSON cannot represent, as the strings "Infinity", "-Infinity" and
// "NaN".
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.IsFinite() {
		return []byte(strconv.Quote(v.String())), nil
	}
	return []byte(strconv.FormatFloat(v.number, 'g', -1, 64)), nil
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go writes 1e+21 and 1e-07; JavaScript writes 1e+21 and 1e-7.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := exp[1:]
		for len(digits) > 1 && digits[0] == '0' {
			digits = digits[1:]
		}
		return mant + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
