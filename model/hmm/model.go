// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm provides discrete hidden Markov models and the forward
algorithm to compute the probability of an observation sequence.

States and symbols are string labels. Internally they are mapped to
dense indices in sorted label order, so results are reproducible
regardless of map iteration order.
*/
package hmm

import (
	"fmt"
	"math"
	"sort"

	"github.com/akualab/seqprob/floatx"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultTolerance is the maximum deviation from 1 allowed for the
	// sum of a probability row.
	DefaultTolerance = 1e-6

	// Number of idle alpha vectors retained per model.
	poolSize = 16
)

// Policy controls how lookups treat symbols missing from an emission table.
type Policy int

const (
	// StrictSymbols returns an UnknownSymbolError.
	StrictSymbols Policy = iota
	// ZeroSymbols gives missing symbols probability zero.
	ZeroSymbols
)

func (p Policy) String() string {
	switch p {
	case StrictSymbols:
		return "error"
	case ZeroSymbols:
		return "zero"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts "error" or "zero" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "error", "strict":
		return StrictSymbols, nil
	case "zero":
		return ZeroSymbols, nil
	}
	return StrictSymbols, fmt.Errorf("unknown symbol policy [%s], expected \"error\" or \"zero\"", s)
}

// Model is a discrete hidden Markov model.
// Φ = (A, B, π)
// A Model is immutable and safe for concurrent use.
type Model struct {

	// Model name.
	name string

	// q(t) is the state at time t
	// states are labeled {0,1,...,N-1} in sorted label order.
	states     []string
	stateIndex map[string]int

	// Union of all emission table keys, sorted.
	symbols     []string
	symbolIndex map[string]int

	// State-transition probability distribution matrix. [N x N]
	// a(i,j) = P[q(t+1) = j | q(t) = i]
	a [][]float64

	// Observation probability distribution. [N x M]
	// b(j,k) = P[o(t) = k | q(t) = j]
	b [][]float64

	// has(j,k) is true when symbol k is listed in the table of state j.
	has [][]bool

	// Initial state distribution. [N]
	// π(i) = P[q(0) = i]
	pi []float64

	policy    Policy
	tolerance float64

	// Alpha vectors of length N.
	pool *floatx.Pool
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// Name is an option to set the model name.
func Name(name string) Option {
	return func(m *Model) { m.name = name }
}

// Tolerance is an option to set the normalization tolerance.
func Tolerance(tol float64) Option {
	return func(m *Model) { m.tolerance = tol }
}

// UnknownSymbols is an option to set the unknown symbol policy.
func UnknownSymbols(p Policy) Option {
	return func(m *Model) { m.policy = p }
}

// NewModel creates a new HMM from probability tables. The model name
// defaults to t.Name, or "HMM" if empty.
// Returns a *ValidationError if the tables are inconsistent.
func NewModel(t Tables, options ...Option) (*Model, error) {

	m := &Model{
		name:      "HMM",
		policy:    StrictSymbols,
		tolerance: DefaultTolerance,
	}

	if t.Name != "" {
		m.name = t.Name
	}

	// Set options.
	for _, option := range options {
		option(m)
	}
	if !(m.tolerance > 0) {
		return nil, &ValidationError{Table: "model", Msg: fmt.Sprintf("tolerance must be positive, got %v", m.tolerance)}
	}

	if len(t.Transition) == 0 {
		return nil, &ValidationError{Table: "transition", Msg: "no states"}
	}

	m.states = sortedKeys(t.Transition)
	m.stateIndex = indexOf(m.states)
	if err := m.checkStateSet("emission", sortedKeys(t.Emission)); err != nil {
		return nil, err
	}
	if err := m.checkStateSet("start", sortedKeys(t.Start)); err != nil {
		return nil, err
	}

	symSet := make(map[string]bool)
	for _, row := range t.Emission {
		for sym := range row {
			symSet[sym] = true
		}
	}
	m.symbols = sortedKeys(symSet)
	m.symbolIndex = indexOf(m.symbols)

	N, M := len(m.states), len(m.symbols)
	m.a = floatx.MakeFloat2D(N, N)
	m.b = floatx.MakeFloat2D(N, M)
	m.pi = make([]float64, N)
	m.has = make([][]bool, N)

	for i, from := range m.states {
		for to, p := range t.Transition[from] {
			j, ok := m.stateIndex[to]
			if !ok {
				return nil, &ValidationError{Table: "transition", State: from,
					Msg: fmt.Sprintf("destination [%s] is not a state", to)}
			}
			m.a[i][j] = p
		}
		if err := m.checkRow("transition", from, m.a[i]); err != nil {
			return nil, err
		}

		m.has[i] = make([]bool, M)
		for sym, p := range t.Emission[from] {
			k := m.symbolIndex[sym]
			m.b[i][k] = p
			m.has[i][k] = true
		}
		if err := m.checkRow("emission", from, m.b[i]); err != nil {
			return nil, err
		}

		m.pi[i] = t.Start[from]
	}
	if err := m.checkRow("start", "", m.pi); err != nil {
		return nil, err
	}

	m.pool = floatx.NewPool(N, poolSize)

	glog.Infof("New HMM [%s]. Num states = %d, num symbols = %d.", m.name, N, M)
	if glog.V(2) {
		glog.Infof("States:               %v.", m.states)
		glog.Infof("Symbols:              %v.", m.symbols)
		glog.Infof("Init. State Probs:    %v.", m.pi)
		glog.Infof("Trans. Probs:         %v.", m.a)
		glog.Infof("Emission Probs:       %v.", m.b)
	}
	return m, nil
}

// Checks that keys is the same state set as the transition table.
func (m *Model) checkStateSet(table string, keys []string) error {
	for _, k := range keys {
		if _, ok := m.stateIndex[k]; !ok {
			return &ValidationError{Table: table, State: k, Msg: "not a state of the transition table"}
		}
	}
	if len(keys) != len(m.states) {
		have := indexOf(keys)
		for _, s := range m.states {
			if _, ok := have[s]; !ok {
				return &ValidationError{Table: table, State: s, Msg: "missing row"}
			}
		}
	}
	return nil
}

func (m *Model) checkRow(table, state string, row []float64) error {
	for _, p := range row {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return &ValidationError{Table: table, State: state,
				Msg: fmt.Sprintf("probability %v is outside [0,1]", p)}
		}
	}
	if sum := floats.Sum(row); math.Abs(sum-1) > m.tolerance {
		return &ValidationError{Table: table, State: state,
			Msg: fmt.Sprintf("probabilities sum to %v, expected 1", sum)}
	}
	return nil
}

// States returns the state labels in index order.
func (m *Model) States() []string { return append([]string(nil), m.states...) }

// Symbols returns the symbol labels in index order.
func (m *Model) Symbols() []string { return append([]string(nil), m.symbols...) }

// NumStates is the number of hidden states.
func (m *Model) NumStates() int { return len(m.states) }

// NumSymbols is the number of distinct symbols.
func (m *Model) NumSymbols() int { return len(m.symbols) }

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Policy returns the unknown symbol policy.
func (m *Model) Policy() Policy { return m.policy }

// Transition returns P[q(t+1) = to | q(t) = from].
func (m *Model) Transition(from, to string) (float64, error) {
	i, err := m.state(from)
	if err != nil {
		return 0, err
	}
	j, err := m.state(to)
	if err != nil {
		return 0, err
	}
	return m.a[i][j], nil
}

// Emission returns P[o(t) = symbol | q(t) = state].
func (m *Model) Emission(state, symbol string) (float64, error) {
	i, err := m.state(state)
	if err != nil {
		return 0, err
	}
	k, ok := m.symbolIndex[symbol]
	if ok && m.has[i][k] {
		return m.b[i][k], nil
	}
	if m.policy == ZeroSymbols {
		return 0, nil
	}
	return 0, &UnknownSymbolError{State: state, Symbol: symbol}
}

// Start returns P[q(0) = state].
func (m *Model) Start(state string) (float64, error) {
	i, err := m.state(state)
	if err != nil {
		return 0, err
	}
	return m.pi[i], nil
}

// Tables returns a copy of the probability tables.
// Omitted transition entries are reported as zero.
func (m *Model) Tables() Tables {
	t := Tables{
		Name:       m.name,
		Transition: make(map[string]map[string]float64, len(m.states)),
		Emission:   make(map[string]map[string]float64, len(m.states)),
		Start:      make(map[string]float64, len(m.states)),
	}
	for i, s := range m.states {
		row := make(map[string]float64, len(m.states))
		for j, to := range m.states {
			row[to] = m.a[i][j]
		}
		t.Transition[s] = row

		erow := make(map[string]float64)
		for k, sym := range m.symbols {
			if m.has[i][k] {
				erow[sym] = m.b[i][k]
			}
		}
		t.Emission[s] = erow
		t.Start[s] = m.pi[i]
	}
	return t
}

func (m *Model) state(s string) (int, error) {
	i, ok := m.stateIndex[s]
	if !ok {
		return -1, &UnknownStateError{State: s}
	}
	return i, nil
}

// Maps a symbol sequence to indices. Symbols unknown to every state
// map to -1 under ZeroSymbols.
func (m *Model) encode(symbols []string) ([]int, error) {

	if len(symbols) == 0 {
		return nil, &InvalidSequenceError{Msg: "empty observation sequence"}
	}
	obs := make([]int, len(symbols))
	for t, sym := range symbols {
		k, ok := m.symbolIndex[sym]
		if !ok {
			if m.policy == ZeroSymbols {
				obs[t] = -1
				continue
			}
			return nil, &UnknownSymbolError{Symbol: sym}
		}
		if m.policy == StrictSymbols {
			for i, s := range m.states {
				if !m.has[i][k] {
					return nil, &UnknownSymbolError{State: s, Symbol: sym}
				}
			}
		}
		obs[t] = k
	}
	return obs, nil
}

// b(j,o(t)), zero for symbols outside the alphabet.
func (m *Model) emit(j, k int) float64 {
	if k < 0 {
		return 0
	}
	return m.b[j][k]
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return idx
}
