// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"go.uber.org/zap"

	"github.com/luxfi/nightshade/authority"
)

// Nightshade is one authority's view of the binary agreement instance:
// its own state, its best guess at every other authority's state, and
// the bookkeeping needed to detect adversaries and commits.
type Nightshade struct {
	cfg Config

	states    []State
	adversary *authority.AdversarySet

	// bestStateCounter tracks how many authorities (including self)
	// are currently known to agree with states[OwnerID]. It resets to
	// 1 every time states[OwnerID] itself changes.
	bestStateCounter int

	// seenBareStates caches which bare states have already passed
	// VerifyBare, so a state gossiped repeatedly is only checked once
	// — spec.md §4.2 step 2.
	seenBareStates map[bareState]struct{}

	committed   bool
	committedTo authority.ID
}

// New constructs an instance for cfg.OwnerID among cfg.NumAuthorities
// participants, starting from genesis: every authority endorses
// itself and nothing is yet known about peers.
func New(cfg Config) *Nightshade {
	states := make([]State, cfg.NumAuthorities)
	for i := range states {
		if authority.ID(i) == cfg.OwnerID {
			states[i] = newGenesisState(cfg.OwnerID)
		} else {
			states[i] = State{bare: emptyBareState()}
		}
	}

	return &Nightshade{
		cfg:              cfg,
		states:           states,
		adversary:        authority.NewAdversarySet(cfg.NumAuthorities),
		bestStateCounter: 1,
		seenBareStates:   make(map[bareState]struct{}),
	}
}

// State returns this authority's current state.
func (n *Nightshade) State() State {
	return n.states[n.cfg.OwnerID]
}

// IsFinal reports whether this instance has committed to an
// authority.
func (n *Nightshade) IsFinal() bool {
	return n.committed
}

// CommittedTo returns the authority this instance has committed to,
// and whether a commit has happened at all.
func (n *Nightshade) CommittedTo() (authority.ID, bool) {
	return n.committedTo, n.committed
}

// UpdateState processes a state gossiped by from, following spec.md
// §4.2:
//
//  1. reject if from is already marked adversarial, or if from's
//     announced state is incompatible with what we last recorded for
//     from (and mark from adversarial when that happens)
//  2. verify the bare state the first time it's seen; reject if it
//     fails verification
//  3. ignore updates no stronger than what we already have on file
//     for from (returns (nil, nil), mirroring NSResult::Updated(None))
//  4. record the new state for from, merge it into our own state,
//     track how many authorities now agree with us
//  5. raise our own confidence once a super-majority agrees
//  6. check whether our state can now commit
//
// The returned State, when non-nil, is this authority's state after
// processing the update.
func (n *Nightshade) UpdateState(from authority.ID, state State) (*State, error) {
	if n.adversary.IsMarked(from) || Incompatible(n.states[from], state) {
		n.adversary.Mark(from)
		n.cfg.Metrics.adversariesMarked.Inc()
		n.cfg.Metrics.updatesRejected.Inc()
		n.cfg.Log.Debug("rejecting update from adversary",
			zap.Stringer("from", from),
			zap.Stringer("state", state),
		)
		return nil, ErrAdversary
	}

	if _, seen := n.seenBareStates[state.bare]; !seen {
		if !n.cfg.Provider.VerifyBare(state.bare) {
			n.cfg.Metrics.updatesRejected.Inc()
			return nil, ErrInvalidState
		}
		n.seenBareStates[state.bare] = struct{}{}
	}

	if state.compare(n.states[from]) <= 0 {
		// No new information: from re-announced a state we already
		// have on file, or something weaker. Not an error — gossip
		// is not guaranteed to be aware of what it already delivered.
		return nil, nil
	}

	n.states[from] = state
	n.cfg.Metrics.updatesAccepted.Inc()

	own := n.states[n.cfg.OwnerID]
	merged := Merge(own, state)
	if !merged.Equal(own) {
		n.states[n.cfg.OwnerID] = merged
		n.bestStateCounter = 1
		own = merged
	}

	if state.Equal(own) {
		n.bestStateCounter++
	}

	if n.canIncreaseConfidence() {
		contributions := n.collectContributions(own)
		proof := buildSignedState(n.cfg.Provider, contributions)
		own = own.IncreaseConfidence(proof)
		n.states[n.cfg.OwnerID] = own
		n.bestStateCounter = 1
		n.cfg.Metrics.confidenceRaises.Inc()
	}

	n.cfg.Metrics.confidence0.Set(float64(own.Confidence0()))
	n.cfg.Metrics.confidence1.Set(float64(own.Confidence1()))

	if own.CanCommit() {
		if n.committed {
			if n.committedTo != own.Endorses() {
				panic(SafetyViolation{First: n.committedTo, Second: own.Endorses()})
			}
		} else {
			n.committed = true
			n.committedTo = own.Endorses()
			n.cfg.Metrics.commits.Inc()
			n.cfg.Log.Info("committed",
				zap.Stringer("endorses", n.committedTo),
				zap.Int64("confidence0", own.Confidence0()),
				zap.Int64("confidence1", own.Confidence1()),
			)
		}
	}

	result := own
	return &result, nil
}

// canIncreaseConfidence reports whether more than two thirds of all
// authorities currently agree with our state — spec.md §4.2 step 5.
func (n *Nightshade) canIncreaseConfidence() bool {
	return n.bestStateCounter*3 > n.cfg.NumAuthorities*2
}

// collectContributions gathers every authority whose recorded state
// currently equals target, the set a confidence-raising proof must
// aggregate over.
func (n *Nightshade) collectContributions(target State) []Contribution {
	contributions := make([]Contribution, 0, len(n.states))
	for i, s := range n.states {
		if s.Equal(target) {
			contributions = append(contributions, Contribution{
				Signer: authority.ID(i),
				Bare:   s.bare,
			})
		}
	}
	return contributions
}
