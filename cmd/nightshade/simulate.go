// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/luxfi/nightshade/authority"
	"github.com/luxfi/nightshade/crypto/bls"
	"github.com/luxfi/nightshade/protocol/nightshade"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a synchronous gossip simulation across n authorities",
		Long: `Simulate drives n Nightshade instances through synchronous, fully
connected gossip rounds: every round, every authority's current state is
delivered to every other authority. A fraction of authorities may be marked
byzantine, in which case they gossip a fixed, non-adaptive conflicting
endorsement instead of their true merged state.`,
		RunE: runSimulate,
	}

	cmd.Flags().Int("authorities", 4, "Number of authorities")
	cmd.Flags().Int("rounds", 10, "Maximum number of gossip rounds")
	cmd.Flags().Float64("byzantine", 0, "Fraction of authorities that gossip a fixed conflicting endorsement")
	cmd.Flags().Bool("bls", false, "Use the BLS-backed signature provider instead of the stub")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while the simulation runs (e.g. :9100)")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("authorities")
	rounds, _ := cmd.Flags().GetInt("rounds")
	byzantineFraction, _ := cmd.Flags().GetFloat64("byzantine")
	useBLS, _ := cmd.Flags().GetBool("bls")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	if n <= 0 {
		return fmt.Errorf("authorities must be positive, got %d", n)
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			fmt.Fprintf(cmd.ErrOrStderr(), "metrics listening on %s\n", metricsAddr)
			_ = server.ListenAndServe()
		}()
	}

	byzantineCount := int(float64(n) * byzantineFraction)

	dir, secrets, err := authority.NewTestDirectory(n)
	if err != nil {
		return fmt.Errorf("build test directory: %w", err)
	}

	instances := make([]*nightshade.Nightshade, n)
	for i := range instances {
		builder := nightshade.NewBuilder(authority.ID(i), n)
		if useBLS {
			provider := nightshade.NewBLSProvider(dir, map[authority.ID]*bls.SecretKey{authority.ID(i): secrets[i]})
			builder = builder.WithSignatureProvider(provider)
		}
		cfg, err := builder.Build()
		if err != nil {
			return fmt.Errorf("build instance %d: %w", i, err)
		}
		instances[i] = nightshade.New(cfg)
	}

	fmt.Printf("=== Nightshade Simulation ===\n")
	fmt.Printf("authorities: %d (byzantine: %d)\n", n, byzantineCount)
	fmt.Printf("max rounds:  %d\n", rounds)
	fmt.Println()

	byzantine := make(map[int]bool, byzantineCount)
	perm := rand.Perm(n)
	for i := 0; i < byzantineCount; i++ {
		byzantine[perm[i]] = true
	}

	for round := 1; round <= rounds; round++ {
		if err := gossipRound(instances, byzantine); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		allFinal := true
		for _, ns := range instances {
			if !ns.IsFinal() {
				allFinal = false
				break
			}
		}

		fmt.Printf("round %3d: ", round)
		for _, ns := range instances {
			fmt.Printf("%s ", ns.State())
		}
		fmt.Println()

		if allFinal {
			fmt.Printf("\nconverged after %d round(s)\n", round)
			return nil
		}
	}

	fmt.Printf("\nno convergence after %d round(s)\n", rounds)
	return nil
}

// gossipRound mirrors protocol/nightshade.RunSyncRound but substitutes
// a byzantine authority's announcement with a state endorsing a fixed
// rival at a fixed high confidence0 of 100, the simplest update an adversary could
// make to try to split honest authorities across two outcomes.
func gossipRound(instances []*nightshade.Nightshade, byzantine map[int]bool) error {
	snapshot := make([]nightshade.State, len(instances))
	for i, ns := range instances {
		snapshot[i] = ns.State()
	}

	for i, receiver := range instances {
		for j := range instances {
			if i == j {
				continue
			}
			announced := snapshot[j]
			if byzantine[j] {
				announced = byzantineAnnouncement(j, len(instances))
			}
			if _, err := receiver.UpdateState(authority.ID(j), announced); err != nil && !errors.Is(err, nightshade.ErrAdversary) {
				return err
			}
		}
	}

	return nil
}

// byzantineAnnouncement fabricates a state endorsing the authority
// right after j (wrapping around), so a byzantine authority never
// endorses itself; for j = n-1 the rival is authority 0.
func byzantineAnnouncement(j, n int) nightshade.State {
	rival := authority.ID((j + 1) % n)
	return nightshade.NewRawState(rival, 100, 0)
}
