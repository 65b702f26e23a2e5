// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floatx provides helpers to allocate and manipulate float64 slices.
package floatx

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrZeroLength = Error("floatx: zero length in slice definition")
	ErrLength     = Error("floatx: length mismatch")
)

func SetValueFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return f }
}

// MakeFloat2D allocates an n1 x n2 slice backed by a single array.
func MakeFloat2D(n1, n2 int) [][]float64 {

	buf := make([]float64, n1*n2)
	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = buf[i*n2 : (i+1)*n2 : (i+1)*n2]
	}

	return s
}

// Check2D returns the shape of a rectangular 2D slice.
// Panics if any dimension is zero or the rows have different lengths.
func Check2D(s [][]float64) (n1, n2 int) {

	n1 = len(s)
	if n1 == 0 {
		panic(ErrZeroLength)
	}

	n2 = len(s[0])
	if n2 == 0 {
		panic(ErrZeroLength)
	}
	for _, row := range s[1:] {
		if len(row) != n2 {
			panic(ErrLength)
		}
	}

	return n1, n2
}

type ApplyFunc func(n int, v float64) float64

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	}
	if len(out) != n {
		panic(ErrLength)
	}
	for i := 0; i < n; i++ {
		out[i] = fn(i, in[i])
	}

	return out
}

// Set all values to zero.
func Clear(s []float64) {

	if len(s) == 0 {
		return
	}
	Apply(SetValueFunc(0), s, nil)
}

// A simple []float64 slice pool object.
// Use it to avoid allocating unecessary resources in
// concurrent code. Safe for use by multiple goroutines.
type Pool struct {
	n   int
	buf chan []float64
}

// NewPool returns a pool of slices of length n that
// retains at most size idle slices.
func NewPool(n, size int) *Pool {

	if size < 1 {
		size = 1
	}
	return &Pool{n, make(chan []float64, size)}
}

// Get returns a zeroed slice of length pool.Len().
func (pool *Pool) Get() []float64 {
	select {
	case b := <-pool.buf:
		Clear(b)
		return b
	default:
	}
	return make([]float64, pool.n)
}

// Put returns p to the pool. Slices of the wrong length are dropped.
func (pool *Pool) Put(p []float64) {
	if len(p) != pool.n {
		return
	}
	select {
	case pool.buf <- p:
	default:
	}
}

// Len is the length of the slices handed out by the pool.
func (pool *Pool) Len() int { return pool.n }
