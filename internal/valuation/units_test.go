package valuation

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestToGrams(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  float64
	}{
		{1, "g", 1},
		{2.5, "grams", 2.5},
		{1, "kg", 1000},
		{0.5, "Kilograms", 500},
		{1, "lb", 453.59237},
		{2, "POUNDS", 907.18474},
		{3, "", 3},
		{3, "stone", 3}, // unknown unit behaves as grams
		{0, "kg", 0},
	}

	for _, c := range cases {
		got := ToGrams(c.value, c.unit)
		if !almostEqual(got, c.want, 1e-9) {
			t.Errorf("ToGrams(%v, %q) = %v, want %v", c.value, c.unit, got, c.want)
		}
	}
}

func TestTroyOunceRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 0.001, 1, 31.1035, 92, 12345.678} {
		got := GramsToTroyOunces(TroyOuncesToGrams(x))
		if !almostEqual(got, x, 1e-9) {
			t.Errorf("round trip of %v ounces = %v", x, got)
		}
	}
}

func TestGramsToTroyOunces(t *testing.T) {
	if got := GramsToTroyOunces(31.1035); !almostEqual(got, 1, 1e-12) {
		t.Errorf("expected one troy ounce, got %v", got)
	}
}

func TestUsdToGhs(t *testing.T) {
	if got := UsdToGhs(100, 12); got != 1200 {
		t.Errorf("UsdToGhs(100, 12) = %v, want 1200", got)
	}
	if got := UsdToGhs(5915.2, 0); got != 0 {
		t.Errorf("zero exchange rate should yield 0, got %v", got)
	}
}
