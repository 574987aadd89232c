// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/sparsetot/internal/input"
	"github.com/katalvlaran/sparsetot/internal/telemetry"
	"github.com/katalvlaran/sparsetot/tot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	file    string
	out     string
	workers int
	metrics bool
	consume bool
}

func newBuildCmd(ro *rootOptions) *cobra.Command {
	bo := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a tensor of tensors and write it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, ro, bo)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&bo.file, "file", "f", "-", "build document (YAML, - for stdin)")
	f.StringVarP(&bo.out, "output", "o", "", "output file (default stdout)")
	f.IntVar(&bo.workers, "workers", 0, "worker count; overrides the document")
	f.BoolVar(&bo.metrics, "metrics", false, "print build metrics to stderr")
	f.BoolVar(&bo.consume, "consume", false, "allow tiles to alias source storage")

	return cmd
}

func runBuild(cmd *cobra.Command, ro *rootOptions, bo *buildOptions) error {
	// Stage 1: load and convert the document.
	rc, err := input.Open(bo.file)
	if err != nil {
		return err
	}
	defer rc.Close()
	doc, err := input.LoadBuild(rc)
	if err != nil {
		return err
	}
	src, err := doc.Source()
	if err != nil {
		return err
	}
	sm, err := doc.Map(src)
	if err != nil {
		return err
	}

	// Stage 2: engine options; flags win over the document.
	opts := append(doc.Options(), tot.WithLogger(ro.logger))
	if bo.workers > 0 {
		opts = append(opts, tot.WithWorkers(bo.workers))
	}
	if bo.consume {
		opts = append(opts, tot.WithConsumeSource())
	}
	var reg *prometheus.Registry
	if bo.metrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, tot.WithObserver(telemetry.NewObserver(reg)))
	}

	// Stage 3: build and write.
	result, err := tot.Build(cmd.Context(), sm, src, opts...)
	if err != nil {
		return err
	}
	ro.logger.Info("totbuild: built", "tiles", result.Len(), "nnz", result.NNZ())

	if bo.out == "" {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fh, err := os.Create(bo.out)
		if err != nil {
			return err
		}
		if err := encodeAndClose(fh, result); err != nil {
			return fmt.Errorf("write %s: %w", bo.out, err)
		}
	}

	if reg != nil {
		return writeMetrics(cmd.ErrOrStderr(), reg)
	}

	return nil
}

// encodeAndClose writes v as JSON to wc and closes it. The close error is
// returned when encoding succeeded.
func encodeAndClose(wc io.WriteCloser, v any) error {
	if err := json.NewEncoder(wc).Encode(v); err != nil {
		_ = wc.Close()
		return fmt.Errorf("encode result: %w", err)
	}

	return wc.Close()
}

// writeMetrics dumps reg in the Prometheus text exposition format.
func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
