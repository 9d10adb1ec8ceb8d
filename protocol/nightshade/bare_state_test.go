// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/nightshade/authority"
)

func TestBareStateCompareConfidence0(t *testing.T) {
	require := require.New(t)

	low := bareState{endorses: 0, confidence0: 1, confidence1: 0}
	high := bareState{endorses: 1, confidence0: 2, confidence1: 0}

	require.Positive(high.compare(low))
	require.Negative(low.compare(high))
}

func TestBareStateCompareTieBreaksOnSmallerEndorses(t *testing.T) {
	require := require.New(t)

	a := bareState{endorses: 0, confidence0: 1, confidence1: 0}
	b := bareState{endorses: 5, confidence0: 1, confidence1: 0}

	require.Positive(a.compare(b))
	require.Negative(b.compare(a))
}

func TestBareStateCompareFallsBackToConfidence1(t *testing.T) {
	require := require.New(t)

	a := bareState{endorses: 0, confidence0: 1, confidence1: 3}
	b := bareState{endorses: 0, confidence0: 1, confidence1: 1}

	require.Positive(a.compare(b))
	require.Zero(a.compare(a))
}

func TestEmptyBareStateIsSmallestPossible(t *testing.T) {
	require := require.New(t)

	empty := emptyBareState()
	require.True(empty.isEmpty())

	genesis := newBareState(authority.ID(0))
	require.Negative(empty.compare(genesis))
}
