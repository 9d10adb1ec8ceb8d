// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package authority identifies the participants of one Nightshade
// agreement instance: their ids, count, and which of them have been
// caught misbehaving.
package authority

import "fmt"

// ID identifies a single authority within a fixed-size agreement
// instance. Authorities are numbered 0..n-1; the numbering is only
// meaningful for the lifetime of one instance.
type ID uint32

// String implements fmt.Stringer.
func (id ID) String() string {
	return fmt.Sprintf("authority-%d", uint32(id))
}

// Less orders two ids numerically, the same order the State total
// order's tie-break rule applies (the smaller id wins there).
func (id ID) Less(other ID) bool {
	return id < other
}
