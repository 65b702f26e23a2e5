// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math/rand"

	"github.com/akualab/seqprob/model"
)

// Generator generates random observations using an hmm model.
// Not safe to use with multiple goroutines.
type Generator struct {
	hmm *Model
	r   *rand.Rand
}

// NewGenerator returns an hmm data generator.
func NewGenerator(m *Model, seed int64) *Generator {
	return &Generator{
		hmm: m,
		r:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns the hidden state path and the symbols emitted along it.
func (gen *Generator) Next(length int) (states, symbols []string, err error) {

	if length < 1 {
		return nil, nil, &InvalidSequenceError{Msg: fmt.Sprintf("length must be positive, got %d", length)}
	}
	h := gen.hmm
	states = make([]string, length)
	symbols = make([]string, length)

	s, err := model.RandIntFromDist(h.pi, gen.r)
	if err != nil {
		return nil, nil, err
	}
	for t := 0; t < length; t++ {
		if t > 0 {
			if s, err = model.RandIntFromDist(h.a[s], gen.r); err != nil {
				return nil, nil, err
			}
		}
		k, err := model.RandIntFromDist(h.b[s], gen.r)
		if err != nil {
			return nil, nil, err
		}
		states[t] = h.states[s]
		symbols[t] = h.symbols[k]
	}
	return states, symbols, nil
}

// Seq returns the next sequence as a model.Seq with the given id.
func (gen *Generator) Seq(id string, length int) (model.Seq, error) {

	states, symbols, err := gen.Next(length)
	if err != nil {
		return model.Seq{}, err
	}
	return model.Seq{ID: id, Symbols: symbols, States: states}, nil
}
