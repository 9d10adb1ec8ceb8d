// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nightshade implements the core of the Nightshade binary
// agreement protocol: a fixed set of authorities repeatedly gossip a
// signed State until one authority's endorsement accumulates enough
// confidence over its best-known rival to be declared final.
package nightshade

import (
	"fmt"

	"github.com/luxfi/nightshade/authority"
)

// bareState is the unsigned portion of a State: an endorsement plus
// the two confidence counters. It is comparable so it can key the
// signature-verification cache and participate in equality checks the
// same way the reference implementation's derived PartialEq/Eq/Hash
// does.
type bareState struct {
	endorses    authority.ID
	confidence0 int64
	confidence1 int64
}

// newBareState returns the genesis bare state for an authority that
// endorses itself: confidence0 = confidence1 = 0.
func newBareState(endorses authority.ID) bareState {
	return bareState{endorses: endorses}
}

// emptyBareState marks "no update received from this peer yet". It
// compares strictly less than every real bare state.
func emptyBareState() bareState {
	return bareState{confidence0: -1, confidence1: -1}
}

// isEmpty reports whether b is the empty sentinel.
func (b bareState) isEmpty() bool {
	return b.confidence0 == -1 && b.confidence1 == -1
}

// compare implements the total order from spec.md §3:
//  1. higher confidence0 wins
//  2. else, lower endorses id wins (an arbitrary but deterministic
//     tie-break so all honest authorities converge on one candidate)
//  3. else, higher confidence1 wins
//  4. else equal
//
// It returns a negative number if b < other, zero if equal, and a
// positive number if b > other — the standard Go three-way compare
// convention (cmp.Compare-shaped), used instead of returning an
// ordering enum the way the Rust source's Ord impl does.
func (b bareState) compare(other bareState) int {
	if b.confidence0 != other.confidence0 {
		if b.confidence0 > other.confidence0 {
			return 1
		}
		return -1
	}

	if b.endorses != other.endorses {
		if b.endorses < other.endorses {
			return 1
		}
		return -1
	}

	if b.confidence1 != other.confidence1 {
		if b.confidence1 > other.confidence1 {
			return 1
		}
		return -1
	}

	return 0
}

func (b bareState) String() string {
	return fmt.Sprintf("(%s, c0=%d, c1=%d)", b.endorses, b.confidence0, b.confidence1)
}
