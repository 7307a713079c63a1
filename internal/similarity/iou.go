package similarity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Box is an axis-aligned bounding box [x1, y1, x2, y2].
type Box [4]int

// Area returns the signed area of the box.
func (b Box) Area() int {
	return (b[2] - b[0]) * (b[3] - b[1])
}

// IoU returns the intersection-over-union of two boxes. A zero union yields 0.
func IoU(a, b Box) float64 {
	interW := max(0, min(a[2], b[2])-max(a[0], b[0]))
	interH := max(0, min(a[3], b[3])-max(a[1], b[1]))
	inter := interW * interH
	union := a.Area() + b.Area() - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// IoUValues coerces raw coordinates and returns their IoU, or 0 when either
// box cannot be coerced.
func IoUValues(a, b []any) float64 {
	boxA, ok := CoerceBox(a)
	if !ok {
		return 0
	}
	boxB, ok := CoerceBox(b)
	if !ok {
		return 0
	}
	return IoU(boxA, boxB)
}

// CoerceBox converts four raw coordinates into a Box. Numbers are truncated
// toward zero, strings must hold integers.
func CoerceBox(raw []any) (Box, bool) {
	var box Box
	if len(raw) != len(box) {
		return Box{}, false
	}
	for i, value := range raw {
		coord, ok := coerceInt(value)
		if !ok {
			return Box{}, false
		}
		box[i] = coord
	}
	return box, true
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float32:
		return truncate(float64(v))
	case float64:
		return truncate(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
