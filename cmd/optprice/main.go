package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/optlib/market"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/pde"
	"github.com/meenmo/optlib/pricer"
)

type priceInput struct {
	TaskID string `json:"task_id,omitempty"`

	Spot     float64 `json:"spot"`
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"` // years
	Rate     float64 `json:"rate"`
	Dividend float64 `json:"dividend,omitempty"`
	Sigma    float64 `json:"sigma"`
	Type     string  `json:"type"`            // "call" or "put"
	Style    string  `json:"style,omitempty"` // "european" (default) or "american"

	Technique string  `json:"technique,omitempty"` // closed-form (default), pde, lattice, monte-carlo
	SMax      float64 `json:"s_max,omitempty"`
	M         int     `json:"m,omitempty"`
	N         int     `json:"n,omitempty"`
	Scheme    string  `json:"scheme,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	Paths     int     `json:"paths,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`

	Greeks bool `json:"greeks,omitempty"`
}

type priceOutput struct {
	TaskID    string  `json:"task_id,omitempty"`
	Technique string  `json:"technique"`
	Price     float64 `json:"price"`

	Delta *float64 `json:"delta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`
	Vega  *float64 `json:"vega,omitempty"`
	Theta *float64 `json:"theta,omitempty"`
	Rho   *float64 `json:"rho,omitempty"`

	Error string `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: optprice -input <path>")
		fmt.Fprintln(os.Stderr, "Price vanilla options (closed form, PDE, lattice, Monte Carlo) with optional Greeks.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: optprice -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]priceOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, priceOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in priceInput) (*priceOutput, error) {
	eng, err := buildEngine(in)
	if err != nil {
		return nil, err
	}

	o := option.Option{
		Strike:   in.Strike,
		Maturity: in.Maturity,
		Type:     option.Type(in.Type),
		Style:    option.Style(in.Style),
	}
	u := market.Underlying{Spot: in.Spot, Volatility: in.Sigma, Dividend: in.Dividend}
	env := market.Environment{Rate: in.Rate}

	price, err := eng.Price(o, u, env)
	if err != nil {
		return nil, err
	}

	out := &priceOutput{
		TaskID:    in.TaskID,
		Technique: string(eng.Technique()),
		Price:     price,
	}
	if !in.Greeks {
		return out, nil
	}

	greekSet := []struct {
		fn   func(option.Option, market.Underlying, market.Environment) (float64, error)
		dst  **float64
		name string
	}{
		{eng.Delta, &out.Delta, "delta"},
		{eng.Gamma, &out.Gamma, "gamma"},
		{eng.Vega, &out.Vega, "vega"},
		{eng.Theta, &out.Theta, "theta"},
		{eng.Rho, &out.Rho, "rho"},
	}
	for _, g := range greekSet {
		v, err := g.fn(o, u, env)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.name, err)
		}
		*g.dst = &v
	}
	return out, nil
}

func buildEngine(in priceInput) (*pricer.Engine, error) {
	cfg := pricer.Config{
		Technique:       pricer.TechniqueKind(in.Technique),
		LatticeSteps:    in.Steps,
		MonteCarloPaths: in.Paths,
		Seed:            in.Seed,
		CacheResults:    true,
	}
	if cfg.Technique == pricer.TechniquePDE {
		cfg.PDE = pde.Config{
			SMax:   in.SMax,
			M:      in.M,
			N:      in.N,
			Scheme: pde.Scheme(in.Scheme),
		}
		if cfg.PDE.SMax == 0 {
			// Far enough out that the upper boundary condition holds for
			// typical moneyness.
			cfg.PDE.SMax = 4 * max(in.Spot, in.Strike)
		}
		if cfg.PDE.M == 0 {
			cfg.PDE.M = 256
		}
		if cfg.PDE.N == 0 {
			cfg.PDE.N = 256
		}
	}
	return pricer.New(cfg)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]priceInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []priceInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input priceInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []priceInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(priceOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
