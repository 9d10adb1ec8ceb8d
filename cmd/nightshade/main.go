// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command nightshade drives the Nightshade binary agreement protocol
// from the command line: simulate a gossip round-robin among a set of
// authorities, or check whether a given authority count and byzantine
// fraction satisfy the protocol's safety assumption.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nightshade",
	Short: "Nightshade binary agreement tools for simulation and parameter checking",
	Long: `The nightshade command drives the Nightshade binary agreement protocol
from the command line.

Key Features:
- Synchronous gossip simulation across n authorities with a byzantine fraction
- Safety-assumption checking for a given authority count
- Freshly generated test directories of authority public keys for scripted scenarios`,
}

func main() {
	rootCmd.AddCommand(
		simulateCmd(),
		paramsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
