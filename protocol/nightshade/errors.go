// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"errors"
	"fmt"

	"github.com/luxfi/nightshade/authority"
)

// ErrAdversary is returned when an authority is rejected because it
// has been marked adversarial, either just now (for announcing two
// incompatible states) or on some earlier update. Once marked, an
// authority is never un-marked for the lifetime of the instance.
var ErrAdversary = errors.New("nightshade: update rejected, authority marked adversarial")

// ErrInvalidState is returned when a gossiped bare state fails the
// signature provider's well-formedness check.
var ErrInvalidState = errors.New("nightshade: update rejected, state failed verification")

// SafetyViolation is panicked, never returned, when an instance would
// need to commit to two different authorities. This should be
// unreachable under the protocol's honest-supermajority assumption;
// spec.md §7 treats it as a programming/assumption failure rather
// than an ordinary error an operator can route around.
type SafetyViolation struct {
	First  authority.ID
	Second authority.ID
}

func (e SafetyViolation) Error() string {
	return fmt.Sprintf("nightshade: safety violation: already committed to %s, cannot also commit to %s", e.First, e.Second)
}
