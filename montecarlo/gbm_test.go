package montecarlo_test

import (
	"math"
	"testing"

	"github.com/meenmo/optlib/closedform"
	"github.com/meenmo/optlib/montecarlo"
	"github.com/meenmo/optlib/option"
)

func TestPrice_AgreesWithClosedForm(t *testing.T) {
	t.Parallel()

	cases := []option.Params{
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2, Type: option.TypeCall},
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2, Type: option.TypePut},
		{Spot: 100, Strike: 90, Maturity: 0.5, Rate: 0.03, Dividend: 0.02, Sigma: 0.3, Type: option.TypeCall},
	}

	for _, p := range cases {
		res, err := montecarlo.Price(p, 1<<17, 42)
		if err != nil {
			t.Fatalf("montecarlo.Price(%+v): %v", p, err)
		}
		want, err := closedform.Price(p)
		if err != nil {
			t.Fatalf("closedform.Price: %v", err)
		}

		// Allow four standard errors, floored so a freak draw does not
		// flake the suite.
		tol := math.Max(4*res.StdErr, 0.25)
		if diff := math.Abs(res.Price - want); diff > tol {
			t.Errorf("%s K=%v: monte carlo %v ± %v vs closed form %v",
				p.Type, p.Strike, res.Price, res.StdErr, want)
		}
		if res.StdErr <= 0 {
			t.Errorf("%s K=%v: non-positive standard error %v", p.Type, p.Strike, res.StdErr)
		}
	}
}

func TestPrice_Reproducible(t *testing.T) {
	t.Parallel()

	p := option.Params{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall,
	}

	a, err := montecarlo.Price(p, 4096, 7)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := montecarlo.Price(p, 4096, 7)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different results: %+v vs %+v", a, b)
	}

	c, err := montecarlo.Price(p, 4096, 8)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if a == c {
		t.Errorf("different seeds produced identical results: %+v", a)
	}
}

func TestPrice_ExpiredPaysIntrinsic(t *testing.T) {
	t.Parallel()

	p := option.Params{
		Spot: 115, Strike: 100, Maturity: 0, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall,
	}
	res, err := montecarlo.Price(p, 1024, 1)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if res.Price != 15 || res.StdErr != 0 {
		t.Errorf("expired call: got %+v, want price 15 with zero error", res)
	}
}

func TestPrice_InputErrors(t *testing.T) {
	t.Parallel()

	base := option.Params{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Sigma: 0.2,
		Type: option.TypeCall,
	}

	p := base
	p.Style = option.StyleAmerican
	if _, err := montecarlo.Price(p, 1024, 1); err == nil {
		t.Error("expected error for american style")
	}

	if _, err := montecarlo.Price(base, 1, 1); err == nil {
		t.Error("expected error for too few paths")
	}

	p = base
	p.Strike = -10
	if _, err := montecarlo.Price(p, 1024, 1); err == nil {
		t.Error("expected error for invalid params")
	}
}
