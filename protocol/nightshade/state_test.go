// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/nightshade/authority"
)

func state(endorses authority.ID, c0, c1 int64) State {
	return State{bare: bareState{endorses: endorses, confidence0: c0, confidence1: c1}}
}

func TestMergeSameEndorsementTakesHigherConfidence1(t *testing.T) {
	require := require.New(t)

	a := state(0, 2, 1)
	b := state(0, 1, 4)

	merged := Merge(a, b)
	require.Equal(authority.ID(0), merged.Endorses())
	require.Equal(int64(2), merged.Confidence0())
	require.Equal(int64(4), merged.Confidence1())
}

func TestMergeIncompatibleRaisesConfidence1FromRivalConfidence0(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 0)
	b := state(1, 1, 0)

	merged := Merge(a, b)
	require.Equal(authority.ID(0), merged.Endorses())
	require.Equal(int64(3), merged.Confidence0())
	require.Equal(int64(1), merged.Confidence1())
}

func TestMergeIncompatibleIgnoresWeakerRival(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 2)
	b := state(1, 1, 0)

	merged := Merge(a, b)
	require.Equal(int64(2), merged.Confidence1())
}

func TestMergeIsCommutative(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 0)
	b := state(1, 2, 1)

	require.True(Merge(a, b).Equal(Merge(b, a)))
}

func TestIncompatibleDetectsRealConflict(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 0)
	b := state(1, 1, 0)
	require.True(Incompatible(a, b))
}

func TestIncompatibleFalseForSameEndorsement(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 1)
	b := state(0, 1, 1)
	require.False(Incompatible(a, b))
}

func TestIncompatibleFalseWhenRivalTooWeakToChangeMax(t *testing.T) {
	require := require.New(t)

	a := state(0, 3, 2)
	b := state(1, 1, 0)
	require.False(Incompatible(a, b))
}

func TestCanCommitRequiresThresholdGap(t *testing.T) {
	require := require.New(t)

	require.False(state(0, 4, 2).CanCommit())
	require.True(state(0, 5, 2).CanCommit())
	require.True(state(0, 3, 0).CanCommit())
}

func TestIncreaseConfidenceBumpsConfidence0AndSetsProof(t *testing.T) {
	require := require.New(t)

	s := state(0, 0, 0)
	proof := SignedState{}
	next := s.IncreaseConfidence(proof)

	require.Equal(int64(1), next.Confidence0())
	require.NotNil(next.proof0)
	require.Equal(int64(0), s.Confidence0(), "original state must not mutate")
}
