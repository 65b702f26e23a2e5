// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import "fmt"

// ValidationError is returned by NewModel when the probability tables
// are inconsistent or not normalized.
type ValidationError struct {
	Table string // "transition", "emission" or "start"
	State string // offending state, empty for table-wide problems
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("hmm: invalid %s table: %s", e.Table, e.Msg)
	}
	return fmt.Sprintf("hmm: invalid %s table, state [%s]: %s", e.Table, e.State, e.Msg)
}

// UnknownStateError is returned when a lookup names a state that is
// not in the model.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("hmm: unknown state [%s]", e.State)
}

// UnknownSymbolError is returned when a symbol has no emission
// probability. State is empty if the symbol is unknown to every state.
type UnknownSymbolError struct {
	State  string
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("hmm: unknown symbol [%s]", e.Symbol)
	}
	return fmt.Sprintf("hmm: unknown symbol [%s] for state [%s]", e.Symbol, e.State)
}

// InvalidSequenceError is returned for observation sequences that
// cannot be scored, such as an empty one.
type InvalidSequenceError struct {
	Msg string
}

func (e *InvalidSequenceError) Error() string {
	return "hmm: invalid sequence: " + e.Msg
}
