package similarity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestIoUKnownValues verifies overlap ratios for fixed boxes.
func TestIoUKnownValues(t *testing.T) {
	cases := []struct {
		name string
		a, b Box
		want float64
	}{
		{"identical", Box{0, 0, 10, 10}, Box{0, 0, 10, 10}, 1},
		{"half overlap", Box{0, 0, 10, 10}, Box{5, 0, 15, 10}, 50.0 / 150.0},
		{"disjoint", Box{0, 0, 10, 10}, Box{20, 20, 30, 30}, 0},
		{"touching edge", Box{0, 0, 10, 10}, Box{10, 0, 20, 10}, 0},
		{"degenerate", Box{5, 5, 5, 5}, Box{5, 5, 5, 5}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, IoU(tc.a, tc.b), 1e-9)
		})
	}
}

// TestIoUValuesCoercion verifies raw coordinate coercion and failure handling.
func TestIoUValuesCoercion(t *testing.T) {
	a := []any{0.9, "0", json.Number("10"), 10.7}
	b := []any{0, 0, 10, 10}
	assert.Equal(t, 1.0, IoUValues(a, b))

	assert.Equal(t, 0.0, IoUValues([]any{"x", 0, 10, 10}, b))
	assert.Equal(t, 0.0, IoUValues([]any{0, 0, 10}, b))
	assert.Equal(t, 0.0, IoUValues([]any{0, 0, math.NaN(), 10}, b))
	assert.Equal(t, 0.0, IoUValues(nil, b))
}

func drawBox(rt *rapid.T, label string) Box {
	x1 := rapid.IntRange(-500, 500).Draw(rt, label+"x1")
	y1 := rapid.IntRange(-500, 500).Draw(rt, label+"y1")
	w := rapid.IntRange(1, 500).Draw(rt, label+"w")
	h := rapid.IntRange(1, 500).Draw(rt, label+"h")
	return Box{x1, y1, x1 + w, y1 + h}
}

// TestIoUProperties checks symmetry, identity, range, and disjointness.
func TestIoUProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawBox(rt, "a")
		b := drawBox(rt, "b")
		if IoU(a, b) != IoU(b, a) {
			rt.Fatalf("IoU not symmetric for %v %v", a, b)
		}
		if IoU(a, a) != 1 {
			rt.Fatalf("IoU(a, a) = %v", IoU(a, a))
		}
		if v := IoU(a, b); v < 0 || v > 1 {
			rt.Fatalf("IoU out of range: %v", v)
		}
		shifted := Box{a[2] + 1, a[1], a[2] + 1 + (b[2] - b[0]), a[3]}
		if IoU(a, shifted) != 0 {
			rt.Fatalf("expected disjoint boxes to have IoU 0")
		}
	})
}
