package option_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/optlib/option"
)

func TestIntrinsic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typ  option.Type
		s, k float64
		want float64
	}{
		{option.TypeCall, 120, 100, 20},
		{option.TypeCall, 80, 100, 0},
		{option.TypeCall, 100, 100, 0},
		{option.TypePut, 80, 100, 20},
		{option.TypePut, 120, 100, 0},
	}
	for _, tc := range cases {
		if got := option.Intrinsic(tc.typ, tc.s, tc.k); got != tc.want {
			t.Errorf("Intrinsic(%s, %v, %v) = %v, want %v", tc.typ, tc.s, tc.k, got, tc.want)
		}
	}
}

func TestOption_Validate(t *testing.T) {
	t.Parallel()

	valid := option.Option{Symbol: "XYZ", Strike: 100, Maturity: 1, Type: option.TypeCall}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid contract rejected: %v", err)
	}

	cases := []struct {
		name string
		o    option.Option
	}{
		{"zero strike", option.Option{Strike: 0, Maturity: 1, Type: option.TypeCall}},
		{"zero maturity", option.Option{Strike: 100, Maturity: 0, Type: option.TypeCall}},
		{"unknown type", option.Option{Strike: 100, Maturity: 1, Type: "butterfly"}},
		{"unknown style", option.Option{Strike: 100, Maturity: 1, Type: option.TypePut, Style: "bermudan"}},
	}
	for _, tc := range cases {
		if err := tc.o.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestOption_NormalizedStyle(t *testing.T) {
	t.Parallel()

	o := option.Option{Strike: 100, Maturity: 1, Type: option.TypeCall}
	if got := o.NormalizedStyle(); got != option.StyleEuropean {
		t.Errorf("empty style normalized to %q, want european", got)
	}

	o.Style = option.StyleAmerican
	if got := o.NormalizedStyle(); got != option.StyleAmerican {
		t.Errorf("american style normalized to %q", got)
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	valid := option.Params{
		Spot: 100, Strike: 100, Maturity: 1, Rate: -0.01, Sigma: 0.2,
		Type: option.TypeCall,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected (negative rates are allowed): %v", err)
	}

	// Zero maturity is valid for params: an expired contract still has an
	// intrinsic value.
	valid.Maturity = 0
	if err := valid.Validate(); err != nil {
		t.Fatalf("zero maturity rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*option.Params)
	}{
		{"negative spot", func(p *option.Params) { p.Spot = -1 }},
		{"negative sigma", func(p *option.Params) { p.Sigma = -0.2 }},
		{"negative dividend", func(p *option.Params) { p.Dividend = -0.01 }},
		{"negative maturity", func(p *option.Params) { p.Maturity = -1 }},
	}
	for _, tc := range cases {
		p := option.Params{
			Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
			Type: option.TypeCall,
		}
		tc.mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestParams_Comparable(t *testing.T) {
	t.Parallel()

	a := option.Params{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2, Type: option.TypeCall}
	b := a
	if a != b {
		t.Fatal("copies of the same params compare unequal")
	}

	seen := map[option.Params]int{a: 1}
	b.Spot = 101
	seen[b] = 2
	if len(seen) != 2 || seen[a] != 1 {
		t.Errorf("params map: %v", seen)
	}
}

func TestTimeToExpiry(t *testing.T) {
	t.Parallel()

	valuation := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := valuation.AddDate(1, 0, 0)

	got := option.TimeToExpiry(valuation, expiry)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("one calendar year on ACT/365F: got %v, want 1.0", got)
	}

	if got := option.TimeToExpiry(expiry, valuation); got != 0 {
		t.Errorf("expiry before valuation: got %v, want 0", got)
	}
	if got := option.TimeToExpiry(valuation, valuation); got != 0 {
		t.Errorf("same instant: got %v, want 0", got)
	}
}
