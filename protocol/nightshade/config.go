// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/nightshade/authority"
)

// Config holds everything an instance needs to run: who it is, how
// many authorities participate, and its collaborators.
type Config struct {
	OwnerID        authority.ID
	NumAuthorities int
	Provider       SignatureProvider
	Log            log.Logger
	Metrics        *Metrics
}

// Builder assembles a Config field by field, the way the rest of this
// codebase's components are constructed, defaulting any collaborator
// the caller does not supply.
type Builder struct {
	cfg Config
}

// NewBuilder starts a Builder for an authority identified by owner
// among n participants.
func NewBuilder(owner authority.ID, n int) *Builder {
	return &Builder{cfg: Config{OwnerID: owner, NumAuthorities: n}}
}

// WithSignatureProvider sets the signature collaborator. Defaults to
// StubProvider if never called.
func (b *Builder) WithSignatureProvider(provider SignatureProvider) *Builder {
	b.cfg.Provider = provider
	return b
}

// WithLog sets the logger. Defaults to log.NoLog if never called.
func (b *Builder) WithLog(logger log.Logger) *Builder {
	b.cfg.Log = logger
	return b
}

// WithMetrics sets the metrics collaborator. Defaults to a
// freshly-registered set if never called.
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.cfg.Metrics = m
	return b
}

// Build validates and returns the assembled Config, filling in
// defaults for anything left unset.
func (b *Builder) Build() (Config, error) {
	cfg := b.cfg

	if cfg.NumAuthorities <= 0 {
		return Config{}, fmt.Errorf("nightshade: NumAuthorities must be positive, got %d", cfg.NumAuthorities)
	}
	if int(cfg.OwnerID) >= cfg.NumAuthorities {
		return Config{}, fmt.Errorf("nightshade: OwnerID %s out of range for %d authorities", cfg.OwnerID, cfg.NumAuthorities)
	}
	if cfg.Provider == nil {
		cfg.Provider = StubProvider{}
	}
	if cfg.Log == nil {
		cfg.Log = log.NoLog{}
	}
	if cfg.Metrics == nil {
		m, err := NewMetrics()
		if err != nil {
			return Config{}, fmt.Errorf("nightshade: default metrics: %w", err)
		}
		cfg.Metrics = m
	}

	return cfg, nil
}
