// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"github.com/luxfi/nightshade/authority"
	"github.com/luxfi/nightshade/crypto/bls"
)

// SignedState is a proof: an aggregated signature witnessing that a
// set of authorities simultaneously held an identical bare state.
// proof0 testifies to confidence0 (it must cover a super-majority);
// proof1 testifies to the incompatible rival with the highest
// confidence0 seen so far and carries no quorum requirement of its
// own — see spec.md §3.
type SignedState struct {
	signature bls.Aggregate
	parent    []bareState
	signers   []authority.ID
}

// buildSignedState aggregates contributions into a new SignedState,
// unlike the reference implementation's SignedState::update (left as
// a TODO appending bare states with no real aggregation) — spec.md §9
// requires a real aggregator here.
func buildSignedState(provider SignatureProvider, contributions []Contribution) SignedState {
	parent := make([]bareState, len(contributions))
	signers := make([]authority.ID, len(contributions))
	for i, c := range contributions {
		parent[i] = c.Bare
		signers[i] = c.Signer
	}
	return SignedState{
		signature: provider.Aggregate(contributions),
		parent:    parent,
		signers:   signers,
	}
}

// Signers returns the authorities whose support this proof attests
// to.
func (s SignedState) Signers() []authority.ID {
	out := make([]authority.ID, len(s.signers))
	copy(out, s.signers)
	return out
}

// Len returns the number of contributors a proof witnesses.
func (s SignedState) Len() int {
	return len(s.signers)
}
