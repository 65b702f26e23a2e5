// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqprob scores observation sequences against discrete hidden
// Markov models.
package seqprob

import (
	"encoding/json"
	"io"
	"math"

	"github.com/golang/glog"
)

// Result is the score of one observation sequence.
type Result struct {
	ID      string   `json:"id,omitempty"`
	Symbols []string `json:"symbols"`
	Prob    float64  `json:"prob"`
	LogProb float64  `json:"log_prob"`
	Err     string   `json:"error,omitempty"`
}

// MarshalJSON encodes an infinite log probability as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type result Result
	out := struct {
		result
		LogProb *float64 `json:"log_prob"`
	}{result: result(r)}
	if !math.IsInf(r.LogProb, 0) && !math.IsNaN(r.LogProb) {
		out.LogProb = &r.LogProb
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null log probability as -Inf.
func (r *Result) UnmarshalJSON(b []byte) error {
	type result Result
	in := struct {
		*result
		LogProb *float64 `json:"log_prob"`
	}{result: (*result)(r)}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	r.LogProb = math.Inf(-1)
	if in.LogProb != nil {
		r.LogProb = *in.LogProb
	}
	return nil
}

// WriteResults writes results as newline-separated JSON objects.
func WriteResults(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
