package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/metrics"
)

func benchCmd() *cobra.Command {
	var (
		size        int
		rounds      int
		showMetrics bool
	)

	names := make([]string, 0, len(workloads))
	for _, w := range workloads {
		names = append(names, fmt.Sprintf("  %-8s %s", w.name, w.help))
	}

	cmd := &cobra.Command{
		Use:   "bench [workloads...]",
		Short: "Run synthetic workloads",
		Long: `Build a reactive graph per workload, then time rounds of updates.
Runs every workload when none is given.

Workloads:
` + strings.Join(names, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 1 || rounds < 1 {
				return fmt.Errorf("size and rounds must be positive")
			}

			selected := workloads
			if len(args) > 0 {
				selected = nil
				for _, name := range args {
					w, err := findWorkload(name)
					if err != nil {
						return err
					}
					selected = append(selected, w)
				}
			}

			registry := prometheus.NewRegistry()
			collector := metrics.New(metrics.WithRegistry(registry))
			reactive.Configure(collector.Option())

			if err := runBench(cmd.OutOrStdout(), selected, size, rounds); err != nil {
				return err
			}

			if showMetrics {
				return printMetrics(cmd.OutOrStdout(), registry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 1000, "Number of nodes per graph")
	cmd.Flags().IntVarP(&rounds, "rounds", "r", 100, "Number of update rounds")
	cmd.Flags().BoolVarP(&showMetrics, "metrics", "m", false, "Print the collected metrics")

	return cmd
}

func runBench(out io.Writer, selected []workload, size, rounds int) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tSIZE\tROUNDS\tBUILD\tTOTAL\tPER ROUND")

	for _, w := range selected {
		owner := reactive.NewOwner()

		var round func(int)
		start := time.Now()
		owner.Run(func() error {
			round = w.build(size)
			return nil
		})
		build := time.Since(start)

		start = time.Now()
		for i := range rounds {
			round(i)
		}
		total := time.Since(start)

		if err := reactive.Settle(); err != nil {
			return fmt.Errorf("%s: %w", w.name, err)
		}
		owner.Dispose()

		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			w.name, size, rounds, build, total, total/time.Duration(rounds))
	}

	return tw.Flush()
}

func printMetrics(out io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	slices.SortFunc(families, func(a, b *dto.MetricFamily) int {
		return strings.Compare(a.GetName(), b.GetName())
	})

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			fmt.Fprintf(tw, "%s%s\t%s\n", f.GetName(), labels(m), value(m))
		}
	}

	return tw.Flush()
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}

	return "{" + strings.Join(pairs, ",") + "}"
}

func value(m *dto.Metric) string {
	switch {
	case m.Counter != nil:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case m.Gauge != nil:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case m.Histogram != nil:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	}

	return "-"
}
