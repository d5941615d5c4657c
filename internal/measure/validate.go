package measure

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tailorshop/internal/domain"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// metricRanges holds plausible adult/child body measurement bounds in centimetres.
var metricRanges = map[string]Range{
	"chest":          {50, 200},
	"waist":          {40, 200},
	"hip":            {50, 200},
	"neck":           {25, 60},
	"shoulder":       {30, 70},
	"sleeve_length":  {40, 90},
	"arm_hole":       {30, 70},
	"bicep":          {15, 60},
	"wrist":          {10, 30},
	"shirt_length":   {50, 110},
	"jacket_length":  {50, 120},
	"trouser_length": {60, 130},
	"inseam":         {50, 100},
	"thigh":          {30, 100},
	"knee":           {25, 70},
	"calf":           {20, 60},
	"ankle":          {15, 40},
	"rise":           {15, 45},
}

var imperialRanges = func() map[string]Range {
	out := make(map[string]Range, len(metricRanges))
	for name, r := range metricRanges {
		out[name] = Range{Min: math.Floor(r.Min / 2.54), Max: math.Ceil(r.Max / 2.54)}
	}
	return out
}()

// Ranges returns the bounds table for units, defaulting to metric.
func Ranges(units domain.Units) map[string]Range {
	if units == domain.UnitsImperial {
		return imperialRanges
	}
	return metricRanges
}

type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateMeasurement checks a full measurement payload: a name or phone, at least
// one measurement, and every present value a non-negative number inside its range.
func ValidateMeasurement(data map[string]any, units domain.Units) Result {
	var errs []string
	if text(data["name"]) == "" && text(data["phone"]) == "" {
		errs = append(errs, "name or phone is required")
	}

	present := 0
	for _, field := range domain.MeasurementFields {
		if !isPresent(data[field]) {
			continue
		}
		present++
	}
	if present == 0 {
		errs = append(errs, "at least one measurement is required")
	}

	res := ValidateValues(data, units)
	errs = append(errs, res.Errors...)
	return Result{IsValid: len(errs) == 0, Errors: nonNil(errs)}
}

// ValidateValues range-checks the measurement fields present in data.
func ValidateValues(data map[string]any, units domain.Units) Result {
	var errs []string
	if units == "" {
		units = domain.UnitsMetric
	}
	if !units.Valid() {
		errs = append(errs, fmt.Sprintf("units must be %s or %s", domain.UnitsMetric, domain.UnitsImperial))
		units = domain.UnitsMetric
	}

	ranges := Ranges(units)
	for _, field := range domain.MeasurementFields {
		raw := data[field]
		if !isPresent(raw) {
			continue
		}
		v, ok := Number(raw)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s must be a number", field))
			continue
		}
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", field))
			continue
		}
		r := ranges[field]
		if v < r.Min || v > r.Max {
			errs = append(errs, fmt.Sprintf("%s must be between %s and %s %s", field, formatNumber(r.Min), formatNumber(r.Max), units))
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: nonNil(errs)}
}

// Number reads a numeric value decoded from JSON or a form field.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

// ToValues copies the numeric measurement fields of data into a values struct.
// Fields that are absent or not numeric stay nil.
func ToValues(data map[string]any) domain.MeasurementValues {
	var out domain.MeasurementValues
	for _, field := range domain.MeasurementFields {
		if !isPresent(data[field]) {
			continue
		}
		if v, ok := Number(data[field]); ok {
			out.Set(field, &v)
		}
	}
	return out
}

func isPresent(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
