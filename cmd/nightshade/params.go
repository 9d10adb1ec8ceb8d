// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/nightshade/authority"
)

func paramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Check and generate Nightshade instance parameters",
	}

	cmd.AddCommand(checkCmd(), generateCmd())
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an authority count tolerates the given byzantine fraction",
		Long: `Nightshade's confidence-raising step requires more than two thirds of
authorities to agree before an authority advances, which only guarantees
progress and safety together when fewer than one third of authorities are
byzantine. This reports whether a given (n, byzantine) pair satisfies that
bound, and how many byzantine authorities n actually tolerates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("authorities")
			byzantine, _ := cmd.Flags().GetInt("byzantine")

			if n <= 0 {
				return fmt.Errorf("authorities must be positive, got %d", n)
			}

			tolerated := (n - 1) / 3
			safe := byzantine <= tolerated

			fmt.Printf("authorities:       %d\n", n)
			fmt.Printf("byzantine assumed: %d\n", byzantine)
			fmt.Printf("tolerated (<n/3):  %d\n", tolerated)
			fmt.Printf("safe:              %t\n", safe)

			if !safe {
				return fmt.Errorf("byzantine count %d exceeds what %d authorities tolerate (%d)", byzantine, n, tolerated)
			}
			return nil
		},
	}

	cmd.Flags().Int("authorities", 4, "Number of authorities")
	cmd.Flags().Int("byzantine", 1, "Assumed number of byzantine authorities")
	return cmd
}

// directoryFile is the on-disk shape params generate writes: each
// authority's id and public key. Secret keys are not written, so the
// file alone cannot sign on any authority's behalf.
type directoryFile struct {
	Authorities []authorityKeys `json:"authorities"`
}

type authorityKeys struct {
	ID        int    `json:"id"`
	PublicKey string `json:"public_key"`
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh test directory of authority keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("authorities")
			out, _ := cmd.Flags().GetString("out")

			dir, _, err := authority.NewTestDirectory(n)
			if err != nil {
				return fmt.Errorf("generate directory: %w", err)
			}

			file := directoryFile{Authorities: make([]authorityKeys, dir.N())}
			for i := 0; i < dir.N(); i++ {
				file.Authorities[i] = authorityKeys{
					ID:        i,
					PublicKey: dir.PublicKey(authority.ID(i)).String(),
				}
			}

			encoded, err := json.MarshalIndent(file, "", "  ")
			if err != nil {
				return fmt.Errorf("encode directory: %w", err)
			}

			if out == "" {
				fmt.Println(string(encoded))
				return nil
			}
			return os.WriteFile(out, encoded, 0o644)
		},
	}

	cmd.Flags().Int("authorities", 4, "Number of authorities to generate")
	cmd.Flags().String("out", "", "File to write the directory to (stdout if empty)")
	return cmd
}
