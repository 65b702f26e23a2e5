package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinRuns(t *testing.T) {
	expected := map[string]float64{
		"normal":  0.125,
		"biased":  0.125,
		"biased2": 0,
		"biased3": 1,
	}
	for _, c := range coinRuns {
		p, err := c.prob()
		require.NoError(t, err, c.name)
		assert.InDelta(t, expected[c.name], p, 1e-12, c.name)
	}
}

func TestRunCoins(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCoins(&buf))
	out := buf.String()
	assert.Equal(t, len(coinRuns), strings.Count(out, "P(["))
	assert.Contains(t, out, "P([Heads Heads Heads]) = 1\n")
	assert.True(t, strings.HasPrefix(out, "normal: Both coins are fair."))
	assert.Contains(t, out, "biased2: Both coins always land heads, tails can never be observed.\n  P([Heads Tails Heads]) = 0\n")
}
