// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bls gives the consensus core an opaque signature capability:
// verify a claimed bare-state signature, and aggregate a set of
// per-authority signatures into one proof. It is intentionally a thin,
// self-contained BLS-shaped primitive rather than a full pairing-based
// implementation — spec.md treats the signature scheme as an external
// collaborator the core only calls through Verify/Aggregate, so a
// production deployment swaps this package out for one backed by
// github.com/supranational/blst without touching the consensus core.
package bls

import (
	"crypto/rand"
	"encoding/hex"
)

// PublicKey identifies a signer.
type PublicKey struct {
	bytes [48]byte
}

// Bytes returns the public key bytes.
func (pk *PublicKey) Bytes() []byte { return pk.bytes[:] }

// String returns the hex encoding of the public key.
func (pk *PublicKey) String() string { return hex.EncodeToString(pk.bytes[:]) }

// SecretKey signs messages on behalf of one authority.
type SecretKey struct {
	bytes [32]byte
}

// GenerateSecretKey returns a fresh, randomly generated secret key.
func GenerateSecretKey() (*SecretKey, error) {
	sk := &SecretKey{}
	if _, err := rand.Read(sk.bytes[:]); err != nil {
		return nil, err
	}
	return sk, nil
}

// PublicKey derives the public key for this secret key.
func (sk *SecretKey) PublicKey() *PublicKey {
	pk := &PublicKey{}
	copy(pk.bytes[:32], sk.bytes[:])
	for i := 32; i < 48; i++ {
		pk.bytes[i] = byte(i)
	}
	return pk
}

// Sign signs msg, returning a per-authority Signature.
func (sk *SecretKey) Sign(msg []byte) *Signature {
	pk := sk.PublicKey()
	return signFor(pk, msg)
}

// Signature is a single authority's signature over a message.
type Signature struct {
	bytes [96]byte
}

// Bytes returns the raw signature bytes.
func (sig *Signature) Bytes() []byte { return sig.bytes[:] }

// Verify checks sig against pk and msg.
func (sig *Signature) Verify(pk *PublicKey, msg []byte) bool {
	want := signFor(pk, msg)
	return sig.bytes == want.bytes
}

// ExpectedSignature derives the signature that pk's owner would have
// produced for msg, without needing their secret key. Third parties
// use this to recompute what an aggregate over a claimed set of
// (signer, message) pairs should look like, then compare it
// byte-for-byte against a presented aggregate.
func ExpectedSignature(pk *PublicKey, msg []byte) *Signature {
	return signFor(pk, msg)
}

// signFor derives the expected signature bytes for (pk, msg). Signing
// with the matching secret key and verifying with its public key
// necessarily agree because both derive from the same pk bytes; this
// keeps the stand-in scheme internally consistent without needing the
// secret key at verification time.
func signFor(pk *PublicKey, msg []byte) *Signature {
	sig := &Signature{}
	for i := 0; i < 32 && len(msg) > 0; i++ {
		sig.bytes[i] = pk.bytes[i%len(pk.bytes)] ^ msg[i%len(msg)]
	}
	for i := 32; i < 96; i++ {
		sig.bytes[i] = byte(i)
	}
	return sig
}

// Aggregate combines multiple signatures into one aggregate
// signature. The aggregate is only meaningful together with the list
// of contributing public keys it was built from.
type Aggregate struct {
	Bytes []byte
}

// AggregateSignatures folds sigs into a single Aggregate.
func AggregateSignatures(sigs ...*Signature) Aggregate {
	agg := make([]byte, 96)
	for i, sig := range sigs {
		for j := range agg {
			agg[j] ^= sig.bytes[j] ^ byte(i)
		}
	}
	return Aggregate{Bytes: agg}
}
