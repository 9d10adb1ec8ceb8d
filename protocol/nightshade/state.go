// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/luxfi/nightshade/authority"
)

// commitThreshold is the confidence gap a state's endorsement must
// hold over its rival before it can be declared final — spec.md §4.1.
const commitThreshold = 3

// State is a bare state plus the two proofs witnessing it: proof0
// attests that a super-majority of authorities held this state one
// confidence level lower (at confidence0-1), proof1 attests to the highest-confidence0 incompatible
// rival bare carried confidence1. Either proof may be nil — the
// genesis state carries neither.
type State struct {
	bare   bareState
	proof0 *SignedState
	proof1 *SignedState
}

// newGenesisState returns the state an authority starts from,
// endorsing itself with no proofs yet collected.
func newGenesisState(self authority.ID) State {
	return State{bare: newBareState(self)}
}

// NewRawState builds a State with no proofs from an explicit
// endorsement and confidence pair. It exists for callers outside this
// package that need to construct or inject a specific state directly
// — a simulation driver fabricating a byzantine announcement, or a
// test exercising UpdateState — rather than reaching it only through
// Merge or IncreaseConfidence.
func NewRawState(endorses authority.ID, confidence0, confidence1 int64) State {
	return State{bare: bareState{endorses: endorses, confidence0: confidence0, confidence1: confidence1}}
}

// compare orders two states by their bare portion only; proofs do not
// participate in the ordering, mirroring the Rust source's Ord impl
// which is derived solely from BareState.
func (s State) compare(other State) int {
	return s.bare.compare(other.bare)
}

// Endorses returns the authority this state currently endorses.
func (s State) Endorses() authority.ID { return s.bare.endorses }

// Confidence0 returns the confidence behind the endorsed authority.
func (s State) Confidence0() int64 { return s.bare.confidence0 }

// Confidence1 returns the confidence behind the best known
// incompatible rival.
func (s State) Confidence1() int64 { return s.bare.confidence1 }

// CanCommit reports whether s carries enough of a confidence lead
// over its rival to be declared final — spec.md §4.1:
//
//	S.can_commit() ⇔ S.confidence0 ≥ S.confidence1 + COMMIT_THRESHOLD
func (s State) CanCommit() bool {
	return s.bare.confidence0 >= s.bare.confidence1+commitThreshold
}

// Merge combines two states into the strongest state consistent with
// both, following spec.md §4.1:
//
//	hi = max(a, b); lo = min(a, b)
//	if hi and lo endorse different authorities: hi's confidence1 is
//	  raised to lo's confidence0 (and proof1 replaced) when that
//	  exceeds hi's current confidence1 — lo's endorsement becomes hi's
//	  best known rival.
//	else (same endorsement): hi's confidence1 is raised to lo's
//	  confidence1 (and proof1 replaced) when that exceeds hi's current
//	  confidence1 — lo's view of the rival may be stronger than hi's.
func Merge(a, b State) State {
	hi, lo := a, b
	if hi.compare(lo) < 0 {
		hi, lo = lo, hi
	}

	merged := hi
	if hi.bare.endorses != lo.bare.endorses {
		if lo.bare.confidence0 > merged.bare.confidence1 {
			merged.bare.confidence1 = lo.bare.confidence0
			merged.proof1 = lo.proof0
		}
	} else {
		if lo.bare.confidence1 > merged.bare.confidence1 {
			merged.bare.confidence1 = lo.bare.confidence1
			merged.proof1 = lo.proof1
		}
	}
	return merged
}

// Incompatible reports whether merging a and b would actually change
// the stronger of the two — spec.md §4.1. Equivalent to the reference
// implementation's incompatible_states: merging is a no-op when the
// weaker state has no stronger rival evidence to contribute (for the
// same endorsement, a confidence1 no higher than the stronger state's;
// for a different endorsement, a confidence0 no higher than the
// stronger state's confidence1), and only then are the two states
// compatible.
func Incompatible(a, b State) bool {
	hi := a
	if hi.compare(b) < 0 {
		hi = b
	}
	return !Merge(a, b).Equal(hi)
}

// IncreaseConfidence returns a copy of s with confidence0 raised by
// one and proof0 replaced by proof, used once an authority observes a
// super-majority of support for its own endorsement — spec.md §4.2
// step 6.
func (s State) IncreaseConfidence(proof SignedState) State {
	next := s
	next.bare.confidence0++
	next.proof0 = &proof
	return next
}

// Equal reports whether s and other carry the same endorsement and
// confidence counters. Like the reference implementation's PartialEq,
// it ignores proofs entirely — two states witnessing the same bare
// claim are the same state regardless of who proved it.
func (s State) Equal(other State) bool {
	return s.bare == other.bare
}

func (s State) String() string {
	return fmt.Sprintf("State%s", s.bare)
}
