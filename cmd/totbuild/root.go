// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "totbuild",
		Short:         "Build tensors of tensors from sparse tensors and sparse maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(ro.logLevel)); err != nil {
				return fmt.Errorf("--log-level %q: %w", ro.logLevel, err)
			}
			ro.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newBuildCmd(ro),
		newComposeCmd(ro),
		newInverseCmd(ro),
	)

	return cmd
}
