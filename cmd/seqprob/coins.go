package main

import (
	"fmt"
	"io"

	"github.com/akualab/seqprob/model/hmm"
)

// A two-coin example. Each coin is a hidden state. A fair switch picks
// the coin before every toss.
type coinRun struct {
	name    string
	desc    string
	e1, e2  float64 // P(Heads) for Coin 1 and Coin 2.
	symbols []string
}

var coinRuns = []coinRun{
	{"normal", "Both coins are fair.",
		0.5, 0.5, []string{"Heads", "Tails", "Heads"}},
	{"biased", "Coin 1 always lands heads and Coin 2 always lands tails.",
		1, 0, []string{"Heads", "Tails", "Heads"}},
	{"biased2", "Both coins always land heads, tails can never be observed.",
		1, 1, []string{"Heads", "Tails", "Heads"}},
	{"biased3", "Both coins always land heads, so all heads is certain.",
		1, 1, []string{"Heads", "Heads", "Heads"}},
}

func coinTables(e1, e2 float64) hmm.Tables {
	half := map[string]float64{"Coin 1": 0.5, "Coin 2": 0.5}
	return hmm.Tables{
		Name:       "coins",
		Transition: map[string]map[string]float64{"Coin 1": half, "Coin 2": half},
		Emission: map[string]map[string]float64{
			"Coin 1": {"Heads": e1, "Tails": 1 - e1},
			"Coin 2": {"Heads": e2, "Tails": 1 - e2},
		},
		Start: half,
	}
}

func (c coinRun) prob() (float64, error) {
	m, err := hmm.NewModel(coinTables(c.e1, c.e2), hmm.Name(c.name))
	if err != nil {
		return 0, err
	}
	return hmm.SequenceProb(m, c.symbols)
}

func runCoins(w io.Writer) error {
	for _, c := range coinRuns {
		p, err := c.prob()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n  P(%v) = %g\n", c.name, c.desc, c.symbols, p)
	}
	return nil
}
