// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/nightshade/authority"
)

func newTestInstance(t *testing.T, owner authority.ID, n int) *Nightshade {
	t.Helper()
	cfg, err := NewBuilder(owner, n).Build()
	require.NoError(t, err)
	return New(cfg)
}

func TestNightshadeGenesisStateEndorsesSelf(t *testing.T) {
	require := require.New(t)

	ns := newTestInstance(t, 1, 2)
	require.Equal(authority.ID(1), ns.State().Endorses())
}

func TestNightshadeBasicHandshake(t *testing.T) {
	require := require.New(t)

	ns0 := newTestInstance(t, 0, 2)
	ns1 := newTestInstance(t, 1, 2)

	require.Equal(authority.ID(1), ns1.State().Endorses())

	_, err := ns1.UpdateState(0, ns0.State())
	require.NoError(err)
	require.Equal(authority.ID(0), ns1.State().Endorses())
}

func TestNightshadeConfidenceRisesAfterSuperMajority(t *testing.T) {
	require := require.New(t)

	const n = 4
	instances := make([]*Nightshade, n)
	for i := range instances {
		instances[i] = newTestInstance(t, authority.ID(i), n)
	}

	for i := 2; i < 4; i++ {
		state1 := instances[1].State()
		_, err := instances[i].UpdateState(1, state1)
		require.NoError(err)
		require.Equal(authority.ID(1), instances[i].State().Endorses())

		stateI := instances[i].State()
		_, err = instances[1].UpdateState(authority.ID(i), stateI)
		require.NoError(err)

		state1 = instances[1].State()
		require.Equal(authority.ID(1), state1.Endorses())
		require.Equal(int64(i-2), state1.Confidence0())
	}
}

func TestNightshadeTwoAuthorityConverges(t *testing.T) {
	require := require.New(t)
	instances := makeInstances(t, 2)

	rounds, final, err := RunUntilFinal(instances, 5)
	require.NoError(err)
	require.True(final, "expected convergence within 5 rounds")
	require.LessOrEqual(rounds, 5)

	for _, ns := range instances {
		require.True(ns.State().CanCommit())
		require.True(ns.IsFinal())
	}
}

func TestNightshadeThreeAuthorityConverges(t *testing.T) {
	require := require.New(t)
	instances := makeInstances(t, 3)

	_, final, err := RunUntilFinal(instances, 5)
	require.NoError(err)
	require.True(final, "expected convergence within 5 rounds")

	for _, ns := range instances {
		require.True(ns.State().CanCommit())
	}
}

func TestNightshadeAllConvergeOnSameAuthority(t *testing.T) {
	require := require.New(t)
	instances := makeInstances(t, 5)

	_, final, err := RunUntilFinal(instances, 10)
	require.NoError(err)
	require.True(final)

	first, ok := instances[0].CommittedTo()
	require.True(ok)
	for _, ns := range instances[1:] {
		endorsed, ok := ns.CommittedTo()
		require.True(ok)
		require.Equal(first, endorsed)
	}
}

func TestNightshadeStaleUpdateIsIgnored(t *testing.T) {
	require := require.New(t)

	ns0 := newTestInstance(t, 0, 3)
	ns1 := newTestInstance(t, 1, 3)

	initial := ns1.State()
	result, err := ns0.UpdateState(1, initial)
	require.NoError(err)
	require.NotNil(result)

	// Re-delivering the exact same state a second time carries no new
	// information and must not be treated as an error.
	result, err = ns0.UpdateState(1, initial)
	require.NoError(err)
	require.Nil(result)
}

func TestNightshadeIncompatibleUpdateMarksAdversary(t *testing.T) {
	require := require.New(t)

	ns0 := newTestInstance(t, 0, 3)

	firstFromTwo := state(2, 3, 0)
	_, err := ns0.UpdateState(2, firstFromTwo)
	require.NoError(err)

	// A rival endorsement strong enough to move authority 2's own
	// confidence1 once merged is incompatible with what it already
	// announced, and so proves it double-voted.
	conflicting := state(1, 1, 0)
	_, err = ns0.UpdateState(2, conflicting)
	require.ErrorIs(err, ErrAdversary)

	// Once marked, every subsequent update from that authority is
	// rejected regardless of content.
	_, err = ns0.UpdateState(2, state(2, 10, 0))
	require.ErrorIs(err, ErrAdversary)
}

func TestNightshadeDoubleCommitToSameAuthorityDoesNotPanic(t *testing.T) {
	require := require.New(t)
	instances := makeInstances(t, 2)

	_, final, err := RunUntilFinal(instances, 5)
	require.NoError(err)
	require.True(final)

	require.NotPanics(func() {
		require.NoError(RunSyncRound(instances))
	})
}

func makeInstances(t *testing.T, n int) []*Nightshade {
	t.Helper()
	instances := make([]*Nightshade, n)
	for i := range instances {
		instances[i] = newTestInstance(t, authority.ID(i), n)
	}
	return instances
}
