package lattice_test

import (
	"math"
	"testing"

	"github.com/meenmo/optlib/closedform"
	"github.com/meenmo/optlib/lattice"
	"github.com/meenmo/optlib/option"
)

func TestPrice_ConvergesToClosedForm(t *testing.T) {
	t.Parallel()

	cases := []option.Params{
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2, Type: option.TypeCall},
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2, Type: option.TypePut},
		{Spot: 100, Strike: 110, Maturity: 0.5, Rate: 0.03, Dividend: 0.01, Sigma: 0.3, Type: option.TypeCall},
		{Spot: 90, Strike: 100, Maturity: 2, Rate: 0.04, Dividend: 0.02, Sigma: 0.25, Type: option.TypePut},
	}

	for _, p := range cases {
		got, err := lattice.Price(p, 1024)
		if err != nil {
			t.Fatalf("lattice.Price(%+v): %v", p, err)
		}
		want, err := closedform.Price(p)
		if err != nil {
			t.Fatalf("closedform.Price: %v", err)
		}
		if diff := math.Abs(got - want); diff > 0.05 {
			t.Errorf("%s K=%v: lattice %v vs closed form %v (diff %v)",
				p.Type, p.Strike, got, want, diff)
		}
	}
}

func TestPrice_AmericanPutDominatesEuropean(t *testing.T) {
	t.Parallel()

	p := option.Params{
		Spot: 80, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
		Type: option.TypePut, Style: option.StyleEuropean,
	}
	euro, err := lattice.Price(p, 512)
	if err != nil {
		t.Fatalf("european: %v", err)
	}

	p.Style = option.StyleAmerican
	amer, err := lattice.Price(p, 512)
	if err != nil {
		t.Fatalf("american: %v", err)
	}

	if amer < euro+1.0 {
		t.Errorf("american put %v should carry a clear premium over european %v for a deep ITM put", amer, euro)
	}
	if amer < p.Intrinsic() {
		t.Errorf("american put %v below intrinsic %v", amer, p.Intrinsic())
	}
}

func TestPrice_AmericanCallNoDividendMatchesEuropean(t *testing.T) {
	t.Parallel()

	// Without dividends early exercise of a call is never optimal.
	p := option.Params{
		Spot: 110, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall, Style: option.StyleEuropean,
	}
	euro, err := lattice.Price(p, 512)
	if err != nil {
		t.Fatalf("european: %v", err)
	}

	p.Style = option.StyleAmerican
	amer, err := lattice.Price(p, 512)
	if err != nil {
		t.Fatalf("american: %v", err)
	}

	if math.Abs(amer-euro) > 1e-10 {
		t.Errorf("american call %v differs from european %v without dividends", amer, euro)
	}
}

func TestPrice_ExpiredPaysIntrinsic(t *testing.T) {
	t.Parallel()

	p := option.Params{
		Spot: 120, Strike: 100, Maturity: 0, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall,
	}
	got, err := lattice.Price(p, 64)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got != 20 {
		t.Errorf("expired call: got %v, want 20", got)
	}
}

func TestPrice_InputErrors(t *testing.T) {
	t.Parallel()

	base := option.Params{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall,
	}

	if _, err := lattice.Price(base, 0); err == nil {
		t.Error("expected error for zero steps")
	}

	p := base
	p.Sigma = 0
	if _, err := lattice.Price(p, 64); err == nil {
		t.Error("expected error for zero sigma")
	}

	// One huge step with tiny volatility drives the risk-neutral
	// probability outside (0,1).
	p = base
	p.Rate = 3.0
	p.Sigma = 0.05
	if _, err := lattice.Price(p, 1); err == nil {
		t.Error("expected error for degenerate risk-neutral probability")
	}

	p = base
	p.Spot = -1
	if _, err := lattice.Price(p, 64); err == nil {
		t.Error("expected error for invalid params")
	}
}
