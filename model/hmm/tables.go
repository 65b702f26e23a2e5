// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tables holds the probability tables of a discrete HMM keyed by
// state and symbol labels. It is the serialized form of a Model.
//
//	transition:
//	  Coin 1: {Coin 1: 0.5, Coin 2: 0.5}
//	  Coin 2: {Coin 1: 0.5, Coin 2: 0.5}
//	emission:
//	  Coin 1: {Heads: 1, Tails: 0}
//	  Coin 2: {Heads: 0, Tails: 1}
//	start: {Coin 1: 0.5, Coin 2: 0.5}
type Tables struct {
	Name       string                        `yaml:"name,omitempty" json:"name,omitempty"`
	Transition map[string]map[string]float64 `yaml:"transition" json:"transition"`
	Emission   map[string]map[string]float64 `yaml:"emission" json:"emission"`
	Start      map[string]float64            `yaml:"start" json:"start"`
}

// Reads tables from io.Reader. Accepts YAML or JSON.
func ReadTables(r io.Reader) (Tables, error) {

	var t Tables
	b, err := io.ReadAll(r)
	if err != nil {
		return t, errors.Wrap(err, "reading hmm tables")
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, errors.Wrap(err, "decoding hmm tables")
	}
	return t, nil
}

// Reads tables from a file. See ReadTables().
func ReadTablesFile(fn string) (Tables, error) {

	f, err := os.Open(fn)
	if err != nil {
		return Tables{}, errors.Wrapf(err, "opening hmm tables file %s", fn)
	}
	defer f.Close()
	return ReadTables(f)
}

// ReadModelFile reads tables from a file and creates a Model.
func ReadModelFile(fn string, options ...Option) (*Model, error) {

	t, err := ReadTablesFile(fn)
	if err != nil {
		return nil, err
	}
	m, err := NewModel(t, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "model file %s", fn)
	}
	return m, nil
}

// Writes tables as YAML.
func (t Tables) Write(w io.Writer) error {

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(err, "encoding hmm tables")
	}
	return enc.Close()
}

// Writes tables to a file. Creates the parent dir if needed.
func (t Tables) WriteFile(fn string) error {

	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.Write(f); err != nil {
		return err
	}
	glog.Infof("Wrote hmm tables to file %s.", fn)
	return nil
}
