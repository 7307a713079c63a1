// Package stats provides the corpus-level aggregations used in benchmark
// reports.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	mstats "github.com/montanaflynn/stats"
)

// NotApplicable is the serialized form of a Value with no data.
const NotApplicable = "N/A"

// Value is an aggregate that may be undefined because no sample qualified.
type Value struct {
	Float float64
	Valid bool
}

// Some wraps a defined aggregate.
func Some(v float64) Value {
	return Value{Float: v, Valid: true}
}

// String renders the value with three decimals or N/A.
func (v Value) String() string {
	if !v.Valid {
		return NotApplicable
	}
	return fmt.Sprintf("%.3f", v.Float)
}

// MarshalJSON encodes a number, or "N/A" when the value is undefined.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number, "N/A", or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		if text != NotApplicable {
			return fmt.Errorf("stats: unexpected value %q", text)
		}
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// PositiveMean averages the strictly positive values. Zeros mean the metric
// did not apply, so they are excluded from both sides of the ratio.
func PositiveMean(values []float64) Value {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return Value{}
	}
	return Some(sum / float64(count))
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	mean, err := mstats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

// StdDev returns the population standard deviation, or 0 for an empty slice.
func StdDev(values []float64) float64 {
	std, err := mstats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return std
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// NearestRank returns sorted(values)[int(n*q)], clamped to the last index.
// It does not interpolate. Empty input yields 0.
func NearestRank(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	idx := int(float64(len(sorted)) * q)
	idx = min(max(idx, 0), len(sorted)-1)
	return sorted[idx]
}

// Interpolated returns the q-quantile with linear interpolation between
// closest ranks. Empty input yields 0.
func Interpolated(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	lower = min(max(lower, 0), len(sorted)-1)
	upper = min(max(upper, 0), len(sorted)-1)
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
