package pricer_test

import (
	"math"
	"testing"

	"github.com/meenmo/optlib/closedform"
	"github.com/meenmo/optlib/greeks"
	"github.com/meenmo/optlib/market"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/pde"
	"github.com/meenmo/optlib/pricer"
)

func fixture() (option.Option, market.Underlying, market.Environment) {
	o := option.Option{
		Symbol:   "XYZ 251219C100",
		Strike:   100,
		Maturity: 1,
		Type:     option.TypeCall,
		Style:    option.StyleEuropean,
	}
	u := market.Underlying{Symbol: "XYZ", Spot: 100, Volatility: 0.2, Dividend: 0.02}
	env := market.Environment{Rate: 0.05}
	return o, u, env
}

func TestEngine_ClosedFormGreeksMatchAnalytic(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{CacheResults: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o, u, env := fixture()

	p, err := pricer.Params(o, u, env)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	want, err := closedform.ComputeGreeks(p)
	if err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}

	cases := []struct {
		name string
		fn   func(option.Option, market.Underlying, market.Environment) (float64, error)
		want float64
		tol  float64
	}{
		{"delta", eng.Delta, want.Delta, 1e-5},
		{"gamma", eng.Gamma, want.Gamma, 1e-5},
		{"vega", eng.Vega, want.Vega, 1e-3},
		{"theta", eng.Theta, want.Theta, 1e-3},
		{"rho", eng.Rho, want.Rho, 1e-3},
	}
	for _, tc := range cases {
		got, err := tc.fn(o, u, env)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if math.Abs(got-tc.want) > tc.tol {
			t.Errorf("%s: got %v, analytic %v", tc.name, got, tc.want)
		}
	}

	price, err := eng.Price(o, u, env)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	analytic, err := closedform.Price(p)
	if err != nil {
		t.Fatalf("closedform.Price: %v", err)
	}
	if price != analytic {
		t.Errorf("engine price %v differs from direct closed form %v", price, analytic)
	}
}

func TestEngine_PDETechnique(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{
		Technique:    pricer.TechniquePDE,
		PDE:          pde.Config{SMax: 600, M: 256, N: 256},
		Parallel:     true,
		CacheResults: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o, u, env := fixture()

	p, err := pricer.Params(o, u, env)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	want, err := closedform.Price(p)
	if err != nil {
		t.Fatalf("closedform.Price: %v", err)
	}

	got, err := eng.Price(o, u, env)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if math.Abs(got-want) > 2.5e-2 {
		t.Errorf("pde price %v vs closed form %v", got, want)
	}

	analytic, err := closedform.ComputeGreeks(p)
	if err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}
	delta, err := eng.Delta(o, u, env)
	if err != nil {
		t.Fatalf("Delta: %v", err)
	}
	if math.Abs(delta-analytic.Delta) > 0.05 {
		t.Errorf("pde delta %v vs analytic %v", delta, analytic.Delta)
	}
}

func TestEngine_LatticePricesAmerican(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{Technique: pricer.TechniqueLattice})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	o, u, env := fixture()
	o.Type = option.TypePut
	o.Style = option.StyleAmerican
	u.Spot = 80
	u.Dividend = 0

	amer, err := eng.Price(o, u, env)
	if err != nil {
		t.Fatalf("american: %v", err)
	}

	o.Style = option.StyleEuropean
	euro, err := eng.Price(o, u, env)
	if err != nil {
		t.Fatalf("european: %v", err)
	}

	if amer <= euro {
		t.Errorf("american put %v not above european %v", amer, euro)
	}
}

func TestEngine_MonteCarloTechnique(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{
		Technique:       pricer.TechniqueMonteCarlo,
		MonteCarloPaths: 1 << 16,
		Seed:            11,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o, u, env := fixture()

	p, err := pricer.Params(o, u, env)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	want, err := closedform.Price(p)
	if err != nil {
		t.Fatalf("closedform.Price: %v", err)
	}

	got, err := eng.Price(o, u, env)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if math.Abs(got-want) > 0.25 {
		t.Errorf("monte carlo price %v vs closed form %v", got, want)
	}
}

func TestEngine_ImpliedVolRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  pricer.Config
		tol  float64
	}{
		{"closed form", pricer.Config{}, 1e-5},
		{"pde", pricer.Config{Technique: pricer.TechniquePDE, PDE: pde.Config{SMax: 400, M: 64, N: 64}}, 1e-5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			eng, err := pricer.New(tc.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			o, u, env := fixture()

			// Target generated by the same technique, so the round trip
			// must recover the underlying's volatility exactly up to the
			// solver tolerance.
			target, err := eng.Price(o, u, env)
			if err != nil {
				t.Fatalf("Price: %v", err)
			}

			res, err := eng.ImpliedVol(o, u, env, target)
			if err != nil {
				t.Fatalf("ImpliedVol: %v", err)
			}
			if math.Abs(res.Vol-u.Volatility) > tc.tol {
				t.Errorf("implied vol %v, want %v", res.Vol, u.Volatility)
			}
		})
	}
}

func TestEngine_Technique(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := eng.Technique(); got != pricer.TechniqueClosedForm {
		t.Errorf("default technique %q, want %q", got, pricer.TechniqueClosedForm)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := pricer.New(pricer.Config{Technique: "quadrature"}); err == nil {
		t.Error("expected error for unknown technique")
	}
	if _, err := pricer.New(pricer.Config{Technique: pricer.TechniquePDE}); err == nil {
		t.Error("expected error for zero-value pde grid")
	}
}

func TestParams_Validation(t *testing.T) {
	t.Parallel()

	o, u, env := fixture()

	bad := o
	bad.Strike = 0
	if _, err := pricer.Params(bad, u, env); err == nil {
		t.Error("expected error for invalid contract")
	}

	badU := u
	badU.Spot = -5
	if _, err := pricer.Params(o, badU, env); err == nil {
		t.Error("expected error for invalid underlying")
	}
}

func TestEngine_CustomSensitivity(t *testing.T) {
	t.Parallel()

	eng, err := pricer.New(pricer.Config{CacheResults: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o, u, env := fixture()

	p, err := pricer.Params(o, u, env)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}

	// Dividend sensitivity is not a named Greek but falls out of the same
	// finite-difference layer.
	got, err := eng.Differentiator().Sensitivity(p, greeks.ParamDividend, 1e-4, 1)
	if err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}
	// dV/dq = −T·S·e^{−qT}·N(d1) for a call: negative and of order spot.
	if got >= 0 || got < -p.Spot*p.Maturity {
		t.Errorf("dividend sensitivity %v outside expected range", got)
	}
}
