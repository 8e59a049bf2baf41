package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/optlib/closedform"
	"github.com/meenmo/optlib/impliedvol"
	"github.com/meenmo/optlib/option"
)

type volInput struct {
	TaskID string `json:"task_id,omitempty"`

	Spot     float64 `json:"spot"`
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"` // years
	Rate     float64 `json:"rate"`
	Dividend float64 `json:"dividend,omitempty"`
	Type     string  `json:"type"` // "call" or "put"

	Price float64 `json:"price"` // observed market price

	Tolerance     float64 `json:"tolerance,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

type volOutput struct {
	TaskID     string  `json:"task_id,omitempty"`
	ImpliedVol float64 `json:"implied_vol"`
	Iterations int     `json:"iterations"`
	Method     string  `json:"method"`
	Error      string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: impliedvol -input <path>")
		fmt.Fprintln(os.Stderr, "Invert Black-Scholes-Merton for the volatility matching an observed price.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: impliedvol -input <path>")
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
	outputs := make([]volOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, volOutput{TaskID: in.TaskID, Error: err.Error()})
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

func process(in volInput) (*volOutput, error) {
	p := option.Params{
		Spot:     in.Spot,
		Strike:   in.Strike,
		Maturity: in.Maturity,
		Rate:     in.Rate,
		Dividend: in.Dividend,
		Sigma:    1, // placeholder, replaced per solver iterate
		Type:     option.Type(in.Type),
		Style:    option.StyleEuropean,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := impliedvol.DefaultConfig
	if in.Tolerance > 0 {
		cfg.Tolerance = in.Tolerance
	}
	if in.MaxIterations > 0 {
		cfg.MaxIterations = in.MaxIterations
	}

	price := func(sigma float64) (float64, error) {
		scenario := p
		scenario.Sigma = sigma
		return closedform.Price(scenario)
	}

	res, err := impliedvol.Solve(price, in.Price, cfg)
	if err != nil {
		return nil, err
	}
	return &volOutput{
		TaskID:     in.TaskID,
		ImpliedVol: res.Vol,
		Iterations: res.Iterations,
		Method:     res.Method,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]volInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []volInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input volInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []volInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(volOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
