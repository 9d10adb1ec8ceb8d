// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import "github.com/luxfi/nightshade/authority"

// RunSyncRound delivers every authority's current state to every
// other authority exactly once, snapshotting all states up front so a
// round reflects what was known at its start rather than partial
// progress made mid-round. This is the synchronous, fully-connected
// gossip schedule the reference implementation's test harness drove
// its convergence tests with; the package's convergence tests build on
// it, and cmd/nightshade's simulate command reimplements the same
// schedule in its own gossipRound.
//
// It returns the first update error encountered, which ends the round
// without delivering the remaining states; a SafetyViolation panic
// from a receiver propagates out of RunSyncRound rather than being
// captured, since it indicates the instances were never in a state
// consistent with the protocol's assumptions.
func RunSyncRound(instances []*Nightshade) error {
	snapshot := make([]State, len(instances))
	for i, ns := range instances {
		snapshot[i] = ns.State()
	}

	for i, receiver := range instances {
		for j := range instances {
			if i == j {
				continue
			}
			if _, err := receiver.UpdateState(authority.ID(j), snapshot[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

// RunUntilFinal runs synchronous gossip rounds until every instance
// has committed, or maxRounds is exhausted. It returns the number of
// rounds actually run and whether every instance reached finality.
func RunUntilFinal(instances []*Nightshade, maxRounds int) (int, bool, error) {
	for round := 1; round <= maxRounds; round++ {
		if err := RunSyncRound(instances); err != nil {
			return round, false, err
		}

		allFinal := true
		for _, ns := range instances {
			if !ns.IsFinal() {
				allFinal = false
				break
			}
		}
		if allFinal {
			return round, true, nil
		}
	}

	return maxRounds, false, nil
}
