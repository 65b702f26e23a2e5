// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqprob

import (
	"io"
	"os"
	"runtime"

	"github.com/akualab/seqprob/model"
	"github.com/akualab/seqprob/model/hmm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the parameters of a scoring run.
type Config struct {
	ModelFile   string `yaml:"model_file,omitempty" json:"model_file,omitempty"`
	DataFile    string `yaml:"data_file,omitempty" json:"data_file,omitempty"`
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`

	// "error" (default) or "zero".
	UnknownSymbols string  `yaml:"unknown_symbols,omitempty" json:"unknown_symbols,omitempty"`
	LogSpace       bool    `yaml:"log_space,omitempty" json:"log_space,omitempty"`
	Tolerance      float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`

	// Zero disables the cache.
	CacheSize int64 `yaml:"cache_size,omitempty" json:"cache_size,omitempty"`
	Workers   int   `yaml:"workers,omitempty" json:"workers,omitempty"`

	Generator Generator `yaml:"generator" json:"generator"`

	Server Server `yaml:"server" json:"server"`
}

type Generator struct {
	Seed   int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Length int   `yaml:"length,omitempty" json:"length,omitempty"`
	Num    int   `yaml:"num,omitempty" json:"num,omitempty"`
}

type Server struct {
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = hmm.DefaultTolerance
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Generator.Seed == 0 {
		c.Generator.Seed = model.DefaultSeed
	}
	if c.Generator.Length == 0 {
		c.Generator.Length = 10
	}
	if c.Generator.Num == 0 {
		c.Generator.Num = 10
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Reads config from a YAML file. See ReadConfigReader().
func ReadConfig(fn string) (*Config, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening config file %s", fn)
	}
	defer f.Close()
	c, err := ReadConfigReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", fn)
	}
	return c, nil
}

// Reads config from an io.Reader. Missing values get defaults.
func ReadConfigReader(r io.Reader) (*Config, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	c.setDefaults()
	if _, err := hmm.ParsePolicy(c.UnknownSymbols); err != nil {
		return nil, err
	}
	return c, nil
}

// ModelOptions converts the config to hmm.Model options.
func (c *Config) ModelOptions() ([]hmm.Option, error) {
	p, err := hmm.ParsePolicy(c.UnknownSymbols)
	if err != nil {
		return nil, err
	}
	return []hmm.Option{hmm.UnknownSymbols(p), hmm.Tolerance(c.Tolerance)}, nil
}

// ScorerOptions converts the config to Scorer options.
func (c *Config) ScorerOptions() []Option {
	return []Option{CacheSize(c.CacheSize), LogSpace(c.LogSpace), Workers(c.Workers)}
}
