// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"bytes"

	"github.com/luxfi/nightshade/authority"
	"github.com/luxfi/nightshade/crypto/bls"
)

// Contribution is one authority's attestation that it held a
// particular bare state, the unit aggregated into a SignedState
// proof. Sig is the signature as gossiped over the wire; a verifier
// is not required to trust it and may recompute the expected
// signature from Signer's public key instead (BLSProvider does).
type Contribution struct {
	Signer authority.ID
	Bare   bareState
	Sig    *bls.Signature
}

// SignatureProvider is the opaque signature capability spec.md §6
// describes: the core never inspects a signature's internals, only
// asks whether a proof is valid and how to build a new one. BLS
// aggregation/verification itself is an external collaborator;
// everything here is swappable without touching nightshade.go.
type SignatureProvider interface {
	// Sign produces owner's attestation to bare.
	Sign(owner authority.ID, bare bareState) *bls.Signature

	// VerifyProof reports whether sig was validly aggregated over
	// exactly the (signer, bare) pairs in contributions — i.e. that
	// it attests to exactly the listed contributors for exactly the
	// listed bare state.
	VerifyProof(sig bls.Aggregate, contributions []Contribution) bool

	// VerifyBare reports whether a gossiped bare state announcement
	// itself is well-formed enough to process. The reference
	// implementation's State::verify is a stub that always succeeds;
	// implementations are free to check genesis invariants here
	// (confidence0/confidence1 bounds) without needing a signature at
	// all, since bareState carries no signature of its own — only the
	// proofs built from it do.
	VerifyBare(bare bareState) bool

	// Aggregate combines contributions into one proof.
	Aggregate(contributions []Contribution) bls.Aggregate
}

// StubProvider is spec.md's literal default: every check succeeds,
// every aggregate is the zero value. It exists so the core's
// correctness does not depend on any particular signature scheme
// (spec.md §9: "correctness must hold if the cache is always empty"
// applies equally here — the protocol's safety comes from the
// confidence arithmetic, not from the stub's behavior).
type StubProvider struct{}

var _ SignatureProvider = StubProvider{}

func (StubProvider) Sign(authority.ID, bareState) *bls.Signature { return &bls.Signature{} }

func (StubProvider) VerifyProof(bls.Aggregate, []Contribution) bool { return true }

func (StubProvider) VerifyBare(bareState) bool { return true }

func (StubProvider) Aggregate([]Contribution) bls.Aggregate { return bls.Aggregate{} }

// BLSProvider is a real (non-stub) signature provider backed by
// crypto/bls and a static authority.Directory. It binds every
// aggregate to its exact contributor set by recomputing the expected
// per-signer signatures from the directory's public keys and the
// claimed bare state, then folding them the same way Sign/Aggregate
// did — an aggregate only verifies if it was built over precisely the
// (signer, bare) pairs presented.
type BLSProvider struct {
	directory *authority.Directory
	secrets   map[authority.ID]*bls.SecretKey
}

var _ SignatureProvider = (*BLSProvider)(nil)

// NewBLSProvider returns a provider that can verify proofs against
// directory and, for any authority whose secret key is supplied, sign
// on its behalf.
func NewBLSProvider(directory *authority.Directory, secrets map[authority.ID]*bls.SecretKey) *BLSProvider {
	return &BLSProvider{directory: directory, secrets: secrets}
}

func (p *BLSProvider) Sign(owner authority.ID, bare bareState) *bls.Signature {
	sk, ok := p.secrets[owner]
	if !ok {
		return &bls.Signature{}
	}
	return sk.Sign(encodeBareState(bare))
}

func (p *BLSProvider) VerifyBare(bare bareState) bool {
	return bare.confidence0 >= -1 && bare.confidence1 >= -1
}

func (p *BLSProvider) VerifyProof(sig bls.Aggregate, contributions []Contribution) bool {
	expected := p.expectedAggregate(contributions)
	return bytes.Equal(expected.Bytes, sig.Bytes)
}

func (p *BLSProvider) Aggregate(contributions []Contribution) bls.Aggregate {
	return p.expectedAggregate(contributions)
}

func (p *BLSProvider) expectedAggregate(contributions []Contribution) bls.Aggregate {
	sigs := make([]*bls.Signature, 0, len(contributions))
	for _, c := range contributions {
		pk := p.directory.PublicKey(c.Signer)
		if pk == nil {
			continue
		}
		sigs = append(sigs, bls.ExpectedSignature(pk, encodeBareState(c.Bare)))
	}
	return bls.AggregateSignatures(sigs...)
}

func encodeBareState(b bareState) []byte {
	buf := make([]byte, 0, 20)
	buf = appendInt64(buf, int64(b.endorses))
	buf = appendInt64(buf, b.confidence0)
	buf = appendInt64(buf, b.confidence1)
	return buf
}

func appendInt64(buf []byte, v int64) []byte {
	u := uint64(v)
	return append(buf,
		byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32),
		byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}
