package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decEq(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got.String(), want)
	}
}

func TestComputeLeviesChain(t *testing.T) {
	// 10,000 GHS assay value at a 10% service rate gives a 1000 GHS
	// exclusive fee; the statutory chain on 1000 is the reference case.
	b := ComputeLevies(decimal.NewFromInt(10000), decimal.NewFromInt(10))

	decEq(t, "rate charge", b.RateCharge, "1000")
	decEq(t, "total exclusive", b.TotalExclusive, "1000")
	decEq(t, "nhil", b.Nhil, "25")
	decEq(t, "getfund", b.Getfund, "25")
	decEq(t, "covid", b.Covid, "10")
	decEq(t, "sub total", b.SubTotal, "1060")
	decEq(t, "vat", b.Vat, "159")
	decEq(t, "grand total", b.GrandTotal, "1219")
}

func TestComputeLeviesZeroBase(t *testing.T) {
	b := ComputeLevies(decimal.Zero, decimal.NewFromInt(10))
	if !b.GrandTotal.IsZero() {
		t.Errorf("grand total = %s, want 0", b.GrandTotal)
	}
}

func TestComputeLeviesZeroRate(t *testing.T) {
	b := ComputeLevies(decimal.NewFromInt(50000), decimal.Zero)
	if !b.GrandTotal.IsZero() || !b.Nhil.IsZero() {
		t.Errorf("zero rate should yield a zero chain, got %+v", b)
	}
}

func TestComputeLeviesPrecisionKept(t *testing.T) {
	// Fractional inputs keep full precision internally; 2dp rounding
	// happens only at display.
	b := ComputeLevies(decimal.RequireFromString("12345.67"), decimal.RequireFromString("1.5"))

	decEq(t, "rate charge", b.RateCharge, "185.18505")

	// grand total = exclusive * 1.06 * 1.15
	want := b.TotalExclusive.Mul(decimal.RequireFromString("1.06")).Mul(decimal.RequireFromString("1.15"))
	if !b.GrandTotal.Equal(want) {
		t.Errorf("grand total = %s, want %s", b.GrandTotal, want)
	}
}
