// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/sparsetot/internal/input"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/spf13/cobra"
)

// loadMaps reads a maps document named by the --file flag.
func loadMaps(file string) ([]*sparsemap.SparseMap, error) {
	rc, err := input.Open(file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	doc, err := input.LoadMaps(rc)
	if err != nil {
		return nil, err
	}

	return doc.SparseMaps()
}

func newComposeCmd(ro *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose the maps of a document left to right",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			maps, err := loadMaps(file)
			if err != nil {
				return err
			}
			acc := maps[0]
			for k, m := range maps[1:] {
				if acc, err = acc.Compose(m); err != nil {
					return fmt.Errorf("compose maps[%d]: %w", k+1, err)
				}
			}
			ro.logger.Debug("totbuild: composed", "maps", len(maps), "entries", acc.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nhash %016x\n", acc, acc.Hash())

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "maps document (YAML, - for stdin)")

	return cmd
}

func newInverseCmd(ro *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "Print the inverse of every map of a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			maps, err := loadMaps(file)
			if err != nil {
				return err
			}
			for _, m := range maps {
				inv := m.Inverse()
				ro.logger.Debug("totbuild: inverted", "entries", m.Len(), "inverse", inv.Len())
				fmt.Fprintln(cmd.OutOrStdout(), inv)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "maps document (YAML, - for stdin)")

	return cmd
}
