package main

import (
	"fmt"
	"log"

	"github.com/meenmo/optlib/market"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/pde"
	"github.com/meenmo/optlib/pricer"
)

func main() {
	contract := option.Option{
		Symbol:   "KOSPI200 C350",
		Strike:   350,
		Maturity: 0.5,
		Type:     option.TypeCall,
		Style:    option.StyleEuropean,
	}
	underlying := market.Underlying{
		Symbol:     "KOSPI200",
		Spot:       360,
		Volatility: 0.18,
		Dividend:   0.015,
	}
	env := market.Environment{Rate: 0.032}

	engines := []struct {
		label string
		cfg   pricer.Config
	}{
		{"closed form", pricer.Config{}},
		{"pde (crank-nicolson)", pricer.Config{
			Technique: pricer.TechniquePDE,
			PDE:       pde.Config{SMax: 1400, M: 512, N: 256},
		}},
		{"lattice (512 steps)", pricer.Config{Technique: pricer.TechniqueLattice}},
		{"monte carlo", pricer.Config{Technique: pricer.TechniqueMonteCarlo, Seed: 42}},
	}

	for _, e := range engines {
		eng, err := pricer.New(e.cfg)
		if err != nil {
			log.Fatal(err)
		}
		price, err := eng.Price(contract, underlying, env)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-22s %.4f\n", e.label+":", price)
	}

	eng, err := pricer.New(pricer.Config{CacheResults: true})
	if err != nil {
		log.Fatal(err)
	}

	delta, _ := eng.Delta(contract, underlying, env)
	gamma, _ := eng.Gamma(contract, underlying, env)
	vega, _ := eng.Vega(contract, underlying, env)
	theta, _ := eng.Theta(contract, underlying, env)
	rho, _ := eng.Rho(contract, underlying, env)

	fmt.Printf("\nDelta: %.4f\n", delta)
	fmt.Printf("Gamma: %.6f\n", gamma)
	fmt.Printf("Vega:  %.4f\n", vega)
	fmt.Printf("Theta: %.4f\n", theta)
	fmt.Printf("Rho:   %.4f\n", rho)

	quoted, err := eng.Price(contract, underlying, env)
	if err != nil {
		log.Fatal(err)
	}
	iv, err := eng.ImpliedVol(contract, underlying, env, quoted)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nImplied vol from quote %.4f: %.4f (%s, %d iterations)\n",
		quoted, iv.Vol, iv.Method, iv.Iterations)
}
