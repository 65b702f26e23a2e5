// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqprob

import (
	"context"
	"math"
	"sync"

	"github.com/akualab/seqprob/cache"
	"github.com/akualab/seqprob/model"
	"github.com/golang/glog"
)

// Scorer computes sequence probabilities using a model.
// Results may be served from a cache. Errors are never cached.
// Safe for concurrent use.
type Scorer struct {
	model     model.Scorer
	cache     *cache.Cache
	cacheSize int64
	logSpace  bool
	workers   int
}

// Option type is used to pass options to NewScorer().
type Option func(*Scorer)

// CacheSize sets the max number of cached sequences. Zero disables the cache.
func CacheSize(n int64) Option {
	return func(s *Scorer) { s.cacheSize = n }
}

// LogSpace selects the scaled forward pass. Use it for long sequences.
func LogSpace(b bool) Option {
	return func(s *Scorer) { s.logSpace = b }
}

// Workers sets the number of goroutines used by ScoreAll.
func Workers(n int) Option {
	return func(s *Scorer) { s.workers = n }
}

// NewScorer creates a scorer for model m.
func NewScorer(m model.Scorer, options ...Option) (*Scorer, error) {

	s := &Scorer{
		model:   m,
		workers: 1,
	}
	for _, option := range options {
		option(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.cacheSize > 0 {
		c, err := cache.NewCache(s.cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = c
	}
	glog.Infof("New scorer for model [%s]. cache: %d, log space: %t, workers: %d.",
		m.Name(), s.cacheSize, s.logSpace, s.workers)
	return s, nil
}

// Model returns the underlying model.
func (s *Scorer) Model() model.Scorer { return s.model }

// Score computes the probability of one sequence.
func (s *Scorer) Score(seq model.Seq) Result {

	r := Result{ID: seq.ID, Symbols: seq.Symbols}

	// Empty sequences go straight to the model, which rejects them.
	if s.cache != nil && len(seq.Symbols) > 0 {
		if v, ok := s.cache.Get(seq.Symbols); ok {
			s.fill(&r, v)
			return r
		}
	}

	var v float64
	var err error
	if s.logSpace {
		v, err = s.model.LogProb(seq.Symbols)
	} else {
		v, err = s.model.Prob(seq.Symbols)
	}
	if err != nil {
		glog.V(1).Infof("failed to score sequence [%s]: %s", seq.ID, err)
		r.Err = err.Error()
		r.LogProb = math.Inf(-1)
		return r
	}
	if s.cache != nil {
		s.cache.Set(seq.Symbols, v)
	}
	s.fill(&r, v)
	return r
}

func (s *Scorer) fill(r *Result, v float64) {
	if s.logSpace {
		r.LogProb = v
		r.Prob = math.Exp(v)
		return
	}
	r.Prob = v
	r.LogProb = math.Log(v)
}

// ScoreAll scores independent sequences concurrently. Results are in
// input order. If ctx is canceled, returns ctx.Err() and the results
// computed so far.
func (s *Scorer) ScoreAll(ctx context.Context, seqs []model.Seq) ([]Result, error) {

	results := make([]Result, len(seqs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.Score(seqs[i])
			}
		}()
	}

	var err error
loop:
	for i := range seqs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		}
	}
	close(jobs)
	wg.Wait()

	if glog.V(2) {
		glog.Infof("scored %d sequences with %d workers", len(seqs), s.workers)
	}
	return results, err
}

// Stats returns cache hits and misses.
func (s *Scorer) Stats() (hits, misses uint64) {
	if s.cache == nil {
		return 0, 0
	}
	hits, misses, _ = s.cache.Stats()
	return
}

// Close releases the cache.
func (s *Scorer) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}
