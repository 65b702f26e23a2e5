// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"testing"
)

const tol = 1e-12

func fatalIf(t *testing.T, err error) {
	if err != nil {
		t.Fatal(err)
	}
}

func uniformRow(labels ...string) map[string]float64 {
	row := make(map[string]float64, len(labels))
	for _, l := range labels {
		row[l] = 1 / float64(len(labels))
	}
	return row
}

// Two coins with uniform transitions and start. e1 and e2 are the
// probabilities of Heads for each coin.
func coinTables(e1, e2 float64) Tables {
	return Tables{
		Transition: map[string]map[string]float64{
			"Coin 1": uniformRow("Coin 1", "Coin 2"),
			"Coin 2": uniformRow("Coin 1", "Coin 2"),
		},
		Emission: map[string]map[string]float64{
			"Coin 1": {"Heads": e1, "Tails": 1 - e1},
			"Coin 2": {"Heads": e2, "Tails": 1 - e2},
		},
		Start: uniformRow("Coin 1", "Coin 2"),
	}
}

// A three state, three symbol model with no symmetries.
func weatherTables() Tables {
	return Tables{
		Transition: map[string]map[string]float64{
			"rainy":  {"rainy": 0.6, "sunny": 0.3, "cloudy": 0.1},
			"sunny":  {"rainy": 0.2, "sunny": 0.7, "cloudy": 0.1},
			"cloudy": {"rainy": 0.3, "sunny": 0.3, "cloudy": 0.4},
		},
		Emission: map[string]map[string]float64{
			"rainy":  {"walk": 0.1, "shop": 0.4, "clean": 0.5},
			"sunny":  {"walk": 0.6, "shop": 0.3, "clean": 0.1},
			"cloudy": {"walk": 0.3, "shop": 0.4, "clean": 0.3},
		},
		Start: map[string]float64{"rainy": 0.5, "sunny": 0.3, "cloudy": 0.2},
	}
}

func makeModel(t *testing.T, tables Tables, options ...Option) *Model {
	m, err := NewModel(tables, options...)
	fatalIf(t, err)
	return m
}

// Sums the probability of every explicit state path.
func bruteForce(t *testing.T, m *Model, symbols []string) float64 {

	states := m.States()
	path := make([]string, len(symbols))
	var total float64
	var walk func(n int)
	walk = func(n int) {
		if n == len(symbols) {
			total += pathProb(t, m, path, symbols)
			return
		}
		for _, s := range states {
			path[n] = s
			walk(n + 1)
		}
	}
	walk(0)
	return total
}

func pathProb(t *testing.T, m *Model, path, symbols []string) float64 {
	p, err := m.Start(path[0])
	fatalIf(t, err)
	b, err := m.Emission(path[0], symbols[0])
	fatalIf(t, err)
	p *= b
	for i := 1; i < len(path); i++ {
		a, err := m.Transition(path[i-1], path[i])
		fatalIf(t, err)
		b, err := m.Emission(path[i], symbols[i])
		fatalIf(t, err)
		p *= a * b
	}
	return p
}

// Returns all sequences of the given length over the alphabet.
func allSequences(alphabet []string, length int) [][]string {
	if length == 0 {
		return [][]string{nil}
	}
	var out [][]string
	for _, prefix := range allSequences(alphabet, length-1) {
		for _, s := range alphabet {
			seq := append(append([]string(nil), prefix...), s)
			out = append(out, seq)
		}
	}
	return out
}
