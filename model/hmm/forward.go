// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math"

	"github.com/akualab/seqprob/floatx"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

/*
   Forward algorithm. Indices are: α(time, state)

   α = | α(0,0),   α(0,1)   ... α(0,N-1)   |
       | α(1,0),   α(1,1)   ... α(1,N-1)   |
       ...
       | α(T-1,0), α(T-1,1) ... α(T-1,N-1) |

   1. Initialization: α(0,i) = π(i) b(i,o(0)); 0<=i<N
   2. Induction:      α(t+1,j) = sum_{i=0}^{N-1}[α(t,i) a(i,j)] b(j,o(t+1)); 0<=t<T-1; 0<=j<N
   3. Termination:    P(O|Φ) = sum_{i=0}^{N-1} α(T-1,i)

   Each row depends only on the previous one, so the full state vector is
   computed at time t before moving to t+1. Cost is O(T N^2).
*/

// SequenceProb returns P(symbols | m), the probability that the model
// emits the sequence, summed over all hidden state paths.
//
// The computation is unscaled. Long sequences may underflow to zero,
// use LogProb for those.
func SequenceProb(m *Model, symbols []string) (float64, error) {

	obs, err := m.encode(symbols)
	if err != nil {
		return 0, err
	}

	prev := m.pool.Get()
	cur := m.pool.Get()
	defer m.pool.Put(prev)
	defer m.pool.Put(cur)

	m.initAlpha(obs[0], prev)
	for t := 1; t < len(obs); t++ {
		m.stepAlpha(prev, cur, obs[t])
		prev, cur = cur, prev
		if glog.V(4) {
			glog.Infof("t: %4d | alpha: %v", t, prev)
		}
	}
	return floats.Sum(prev), nil
}

// Forward returns the unscaled forward lattice α(t,i) for the sequence.
// Rows are time steps, columns follow the order of m.States().
func Forward(m *Model, symbols []string) ([][]float64, error) {

	obs, err := m.encode(symbols)
	if err != nil {
		return nil, err
	}

	α := floatx.MakeFloat2D(len(obs), m.NumStates())
	m.initAlpha(obs[0], α[0])
	for t := 1; t < len(obs); t++ {
		m.stepAlpha(α[t-1], α[t], obs[t])
	}
	return α, nil
}

// LogProb returns log P(symbols | m) using a scaled forward pass.
// At each step α is normalized by c(t) = sum_i α(t,i) and
// log P = sum_t log c(t). Returns -Inf if the sequence cannot be
// emitted by the model.
// For scaling details see Rabiner/Juang and
// http://courses.media.mit.edu/2010fall/mas622j/ProblemSets/ps4/tutorial.pdf
func LogProb(m *Model, symbols []string) (float64, error) {

	obs, err := m.encode(symbols)
	if err != nil {
		return 0, err
	}

	prev := m.pool.Get()
	cur := m.pool.Get()
	defer m.pool.Put(prev)
	defer m.pool.Put(cur)

	var logProb float64
	m.initAlpha(obs[0], prev)
	for t := 0; ; t++ {
		c := floats.Sum(prev)
		if c == 0 {
			return math.Inf(-1), nil
		}
		floats.Scale(1/c, prev)
		logProb += math.Log(c)
		if glog.V(4) {
			glog.Infof("t: %4d | scale: %5e | logProb: %5e", t, c, logProb)
		}
		if t == len(obs)-1 {
			break
		}
		m.stepAlpha(prev, cur, obs[t+1])
		prev, cur = cur, prev
	}
	return logProb, nil
}

// Prob implements the model.Scorer interface. See SequenceProb().
func (m *Model) Prob(symbols []string) (float64, error) {
	return SequenceProb(m, symbols)
}

// LogProb implements the model.Scorer interface. See LogProb().
func (m *Model) LogProb(symbols []string) (float64, error) {
	return LogProb(m, symbols)
}

// α(0,i) = π(i) b(i,o(0))
func (m *Model) initAlpha(o int, α []float64) {
	for i := range α {
		α[i] = m.pi[i] * m.emit(i, o)
	}
}

// α(t+1,j) = sum_i[α(t,i) a(i,j)] b(j,o(t+1))
func (m *Model) stepAlpha(prev, next []float64, o int) {
	for j := range next {
		b := m.emit(j, o)
		if b == 0 {
			next[j] = 0
			continue
		}
		var sum float64
		for i, α := range prev {
			sum += α * m.a[i][j]
		}
		next[j] = sum * b
	}
}
