// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/akualab/seqprob/model"
)

func TestGenerator(t *testing.T) {

	m := makeModel(t, weatherTables())
	gen := NewGenerator(m, model.DefaultSeed)

	for n := 0; n < 50; n++ {
		states, symbols, err := gen.Next(10)
		fatalIf(t, err)
		if len(states) != 10 || len(symbols) != 10 {
			t.Fatalf("wrong lengths %d, %d", len(states), len(symbols))
		}

		// The generated path must have non-zero probability.
		p := pathProb(t, m, states, symbols)
		if p <= 0 {
			t.Fatalf("generated impossible path %v / %v", states, symbols)
		}
		lp, err := LogProb(m, symbols)
		fatalIf(t, err)
		if math.IsInf(lp, -1) || lp > 0 {
			t.Fatalf("generated sequence has log prob %v", lp)
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {

	m := makeModel(t, weatherTables())
	s1, err := NewGenerator(m, 7).Seq("a", 20)
	fatalIf(t, err)
	s2, err := NewGenerator(m, 7).Seq("a", 20)
	fatalIf(t, err)
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("same seed gave different sequences:\n%v\n%v", s1, s2)
	}
	t.Logf("seq: %+v", s1)
}

func TestGeneratorDegenerate(t *testing.T) {

	// Coin 1 always Heads, coin 2 always Tails: symbols reveal states.
	m := makeModel(t, coinTables(1, 0))
	gen := NewGenerator(m, model.DefaultSeed)
	states, symbols, err := gen.Next(100)
	fatalIf(t, err)
	for i := range states {
		if (states[i] == "Coin 1") != (symbols[i] == "Heads") {
			t.Fatalf("t=%d: state %s emitted %s", i, states[i], symbols[i])
		}
	}
}

func TestGeneratorBadLength(t *testing.T) {

	m := makeModel(t, weatherTables())
	var ie *InvalidSequenceError
	if _, _, err := NewGenerator(m, 1).Next(0); !errors.As(err, &ie) {
		t.Fatalf("expected InvalidSequenceError, got %v", err)
	}
}
