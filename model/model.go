// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the observation types shared by sequence models.
package model

const (
	// DefaultSeed provided for model implementation.
	DefaultSeed = 33
)

// Scorer computes the probability of a symbol sequence.
type Scorer interface {

	// The model name.
	Name() string

	// Prob returns P(symbols | model).
	Prob(symbols []string) (float64, error)

	// LogProb returns log P(symbols | model).
	LogProb(symbols []string) (float64, error)
}

// Seq is a data format to represent a sequence of discrete observations.
// We use it to read and write json data.
type Seq struct {
	ID      string   `json:"id,omitempty"`
	Symbols []string `json:"symbols"`

	// Hidden state path, if known. Set by generators.
	States []string `json:"states,omitempty"`
}

// Len returns the number of observations.
func (s Seq) Len() int { return len(s.Symbols) }
