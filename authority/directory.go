// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package authority

import (
	"fmt"

	"github.com/luxfi/nightshade/crypto/bls"
)

// Directory is the static, instance-lifetime view of who the n
// authorities are and their public keys. Membership rotation across
// agreement instances is out of scope for the core (spec.md §1); a
// Directory is built once per instance and never mutated.
type Directory struct {
	keys []*bls.PublicKey
}

// NewDirectory builds a Directory from an ordered list of public
// keys; keys[i] belongs to authority ID(i).
func NewDirectory(keys []*bls.PublicKey) *Directory {
	d := &Directory{keys: make([]*bls.PublicKey, len(keys))}
	copy(d.keys, keys)
	return d
}

// NewTestDirectory generates n fresh keypairs for simulation and
// testing, returning both the Directory and the secret keys so a
// caller can sign on each authority's behalf.
func NewTestDirectory(n int) (*Directory, []*bls.SecretKey, error) {
	secrets := make([]*bls.SecretKey, n)
	keys := make([]*bls.PublicKey, n)
	for i := range secrets {
		sk, err := bls.GenerateSecretKey()
		if err != nil {
			return nil, nil, fmt.Errorf("authority %d: generate key: %w", i, err)
		}
		secrets[i] = sk
		keys[i] = sk.PublicKey()
	}
	return NewDirectory(keys), secrets, nil
}

// N returns the number of authorities in the directory.
func (d *Directory) N() int {
	return len(d.keys)
}

// PublicKey returns the public key for id, or nil if id is out of
// range.
func (d *Directory) PublicKey(id ID) *bls.PublicKey {
	if int(id) >= len(d.keys) {
		return nil
	}
	return d.keys[id]
}
