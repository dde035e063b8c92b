package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stokeskit/internal/automation"
	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/optim"
	"github.com/san-kum/stokeskit/internal/storage"
	"github.com/san-kum/stokeskit/internal/tracer"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func logProgress(done, total int, label string) {
	logger.Info("finished", "run", label, "done", done, "total", total)
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file.yaml]",
		Short: "run a scripted batch of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := automation.LoadBatch(args[0])
			if err != nil {
				return err
			}
			logger.Info("batch loaded", "name", b.Name, "steps", len(b.Steps))

			ctx, stop := interruptible()
			defer stop()

			results, err := automation.RunBatch(ctx, b, experiment.NewRegistry(), logProgress)
			if err != nil {
				return err
			}

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tFLOW\tSTEPS\tREFLECTIONS\tMSD\tRUN")
			for _, r := range results {
				runID := "-"
				if r.Save {
					if runID, err = st.Save(r.Config, r.Result); err != nil {
						return err
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3g\t%s\n",
					r.Name, r.Config.Flow, r.Result.Stats.Steps, r.Result.Stats.Reflections, r.Result.Stats.MSD, runID)
			}
			return w.Flush()
		},
	}
}

func newSweepCmd() *cobra.Command {
	var (
		param    string
		lo, hi   float64
		steps    int
		metric   string
		showPlot bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the scenario across a range of one parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}

			ctx, stop := interruptible()
			defer stop()

			sweep := &automation.ParameterSweep{Base: cfg, Param: param, Min: lo, Max: hi, Steps: steps}
			results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry(), logProgress)
			if err != nil {
				return err
			}

			values := make([]float64, len(results))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(param), strings.ToUpper(metric))
			for i, r := range results {
				v, err := r.Stats.Metric(metric)
				if err != nil {
					return err
				}
				values[i] = v
				fmt.Fprintf(w, "%g\t%.6g\n", r.Value, v)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if showPlot && len(values) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(values,
					asciigraph.Height(10),
					asciigraph.Width(60),
					asciigraph.Caption(fmt.Sprintf("%s vs %s", metric, param)),
				))
			}
			return nil
		},
	}
	addScenarioFlags(cmd)
	addTracerFlags(cmd)
	cmd.Flags().StringVar(&param, "param", "radius", "parameter to vary: "+strings.Join(config.ParamNames(), ", "))
	cmd.Flags().Float64Var(&lo, "min", 5e-7, "first value")
	cmd.Flags().Float64Var(&hi, "max", 2e-6, "last value")
	cmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	cmd.Flags().StringVar(&metric, "metric", "msd", "statistic to report: "+strings.Join(tracer.MetricNames, ", "))
	cmd.Flags().BoolVar(&showPlot, "plot", true, "plot the metric against the parameter")
	return cmd
}

// parseGrid reads repeated name=v1,v2,... entries.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("grid %q: want name=v1,v2,...", entry)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func newSearchCmd() *cobra.Command {
	var (
		grid   []string
		metric string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "grid search for the parameters minimising a statistic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			names, ranges, err := parseGrid(grid)
			if err != nil {
				return err
			}
			g, err := optim.NewGridSearch(names, ranges)
			if err != nil {
				return err
			}

			ctx, stop := interruptible()
			defer stop()

			registry := experiment.NewRegistry()
			logger.Info("searching", "points", g.Points(), "metric", metric)
			best, val, err := g.Search(ctx, func(params map[string]float64) (*experiment.Experiment, error) {
				cfg := base.Clone()
				for name, v := range params {
					if err := cfg.SetParam(name, v); err != nil {
						return nil, err
					}
				}
				logger.Debug("grid point", "params", params)
				exp := experiment.New(cfg, registry)
				if err := exp.Setup(); err != nil {
					return nil, err
				}
				return exp, nil
			}, metric)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(best))
			for k := range best {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%g\n", k, best[k])
			}
			fmt.Fprintf(w, "%s\t%.6g\n", metric, val)
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	addTracerFlags(cmd)
	cmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "msd", "statistic to minimise: "+strings.Join(tracer.MetricNames, ", "))
	return cmd
}

func newEnsembleCmd() *cobra.Command {
	var (
		runs    int
		metrics []string
	)
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "repeat the scenario with independent seeds and summarise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}

			ctx, stop := interruptible()
			defer stop()

			logger.WithFlow(cfg.Flow).Info("running ensemble", "runs", runs, "particles", cfg.Tracer.Particles)
			results, err := automation.NewEnsemble(cfg, runs, cfg.Tracer.Seed).Run(ctx, experiment.NewRegistry())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX")
			for _, m := range metrics {
				s, err := automation.Summarize(results, m)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\n", s.Metric, s.Mean, s.Std, s.Min, s.Max)
			}
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	addTracerFlags(cmd)
	cmd.Flags().IntVar(&runs, "runs", 8, "ensemble size")
	cmd.Flags().StringSliceVar(&metrics, "metrics", []string{"msd", "diffusivity", "reflections"}, "statistics to summarise")
	return cmd
}
