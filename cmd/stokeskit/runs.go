package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stokeskit/internal/analysis"
	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/export"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/storage"
	"github.com/san-kum/stokeskit/internal/tracer"
	"github.com/san-kum/stokeskit/internal/viz"
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "advect Brownian tracers through the flow and save the run",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	addScenarioFlags(cmd)
	addTracerFlags(cmd)
	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	log := logger.WithFlow(cfg.Flow)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.NewRegistry())
	if err := exp.Setup(); err != nil {
		return err
	}

	steps := experiment.TracerParams(cfg).Steps()
	every := max(1, steps/10)
	exp.Simulator().AddObserver(tracer.ObserverFunc(func(step int, t float64, _ []array.Array[float64]) {
		if step%every == 0 {
			log.Debug("progress", "step", step, "of", steps, "t", t)
		}
	}))

	ctx, stop := interruptible()
	defer stop()

	log.Info("running tracers", "particles", cfg.Tracer.Particles, "steps", steps, "inject", cfg.Tracer.Inject)
	start := time.Now()
	result, err := exp.Run(ctx)
	switch {
	case errors.Is(err, tracer.ErrCanceled) && result != nil:
		log.Warn("interrupted, saving partial run", "frames", len(result.Times))
	case err != nil:
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	log.WithRun(runID).Info("run saved", "elapsed", elapsed)

	fmt.Printf("run id: %s\n", runID)
	printStats(os.Stdout, result.Stats)
	return nil
}

func printStats(out io.Writer, s tracer.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", s.Steps)
	fmt.Fprintf(w, "reflections\t%d\n", s.Reflections)
	fmt.Fprintf(w, "mean drag\t%.6g N\n", s.MeanDrag)
	fmt.Fprintf(w, "mean speed\t%.6g m/s\n", s.MeanSpeed)
	fmt.Fprintf(w, "msd\t%.6g m²\n", s.MSD)
	fmt.Fprintf(w, "diffusivity\t%.6g m²/s\n", s.Diffusivity)
	w.Flush()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFLOW\tTIME\tPARTICLES\tDURATION\tDT\tINJECT\tMSD")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gs\t%gs\t%s\t%.3g\n",
					run.ID,
					run.Flow,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Particles,
					run.Duration,
					run.Dt,
					run.Inject,
					run.Stats.MSD,
				)
			}
			return w.Flush()
		},
	}
}

func loadRun(runID string) (*storage.RunMetadata, *tracer.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, result, nil
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot displacement and mean height of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, result, err := loadRun(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("flow: %s\n", meta.Flow)
			fmt.Printf("frames: %d  particles: %d\n\n", len(result.Times), meta.Particles)

			msd := result.MSD(len(result.Times) - 1)
			height := make([]float64, len(result.Times))
			for k, frame := range result.Positions {
				var sum float64
				for _, p := range frame {
					sum += p[2]
				}
				height[k] = sum / float64(max(1, len(frame)))
			}

			for _, series := range []struct {
				data    []float64
				caption string
			}{
				{msd, "mean squared displacement (m²) vs time"},
				{height, "mean tracer height z (m) vs time"},
			} {
				fmt.Println(asciigraph.Plot(series.data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(series.caption),
				))
				fmt.Println()
			}
			return nil
		},
	}
}

func newSpectrumCmd() *cobra.Command {
	var (
		axis int
		acf  bool
	)
	cmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "velocity power spectrum or autocorrelation of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			name := string("xyz"[min(max(axis, 0), 2)])

			if acf {
				c, err := analysis.VelocityAutocorrelation(result, axis)
				if err != nil {
					return err
				}
				fmt.Printf("run: %s  flow: %s  axis: %s\n\n", meta.ID, meta.Flow, name)
				fmt.Println(asciigraph.Plot(c,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(fmt.Sprintf("velocity autocorrelation along %s vs lag (dt=%gs)", name, meta.Dt)),
				))
				return nil
			}

			freqs, power, err := analysis.VelocitySpectrum(result, axis)
			if err != nil {
				return err
			}
			var level float64
			for _, p := range power[1:] {
				level += p / float64(len(power)-1)
			}

			fmt.Printf("run: %s  flow: %s  axis: %s\n", meta.ID, meta.Flow, name)
			fmt.Printf("bins: %d  nyquist: %g Hz\n", len(freqs), freqs[len(freqs)-1])
			fmt.Printf("mean level: %.6g m²/s  (2D for free diffusion, D≈%.6g m²/s)\n\n", level, level/2)
			fmt.Println(asciigraph.Plot(power,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("velocity power along %s (m²/s) vs frequency", name)),
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&axis, "axis", 2, "axis: 0=x, 1=y, 2=z")
	cmd.Flags().BoolVar(&acf, "acf", false, "plot the autocorrelation instead of the spectrum")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return storage.ExportJSON(os.Stdout, meta, result)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := storage.ExportJSON(f, meta, result); err != nil {
				return err
			}
			logger.WithRun(meta.ID).Info("exported", "file", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	var (
		out           string
		field         bool
		width, height int
		paths         int
	)
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's trajectories, or its flow on the x-z mid-plane, to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]
			st := storage.New(dataDir)
			cfg, err := st.LoadScenario(runID)
			if err != nil {
				return err
			}
			box := cfg.Domain()

			var svg string
			if field {
				f, err := experiment.NewRegistry().GetField(cfg.Flow, cfg)
				if err != nil {
					return err
				}
				grid := fluid.SampleXZ(f, box, cfg.Sphere.Position[1], 24, 24)
				svg = export.FieldSliceToSVG(grid, box, width, height)
			} else {
				_, result, err := loadRun(runID)
				if err != nil {
					return err
				}
				svg = export.TrajectoryToSVG(result, box, width, height, paths)
			}

			if out == "" {
				out = runID + ".svg"
				if field {
					out = runID + "-field.svg"
				}
			}
			if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
				return err
			}
			logger.WithRun(runID).Info("exported", "file", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <run_id>.svg)")
	cmd.Flags().BoolVar(&field, "field", false, "draw the flow field instead of trajectories")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 800, "image height")
	cmd.Flags().IntVar(&paths, "paths", 50, "maximum trajectories drawn")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [flow]",
		Short: "list presets, for one flow or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows := make([]string, 0, len(config.Presets))
			if len(args) == 1 {
				flows = append(flows, args[0])
			} else {
				for flow := range config.Presets {
					flows = append(flows, flow)
				}
				sort.Strings(flows)
			}

			for _, flow := range flows {
				presets := config.ListPresets(flow)
				if len(presets) == 0 {
					fmt.Printf("no presets for flow: %s\n", flow)
					continue
				}
				fmt.Printf("presets for %s:\n", flow)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}
}

func newViewCmd() *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "interactive terminal viewer for a flow or a saved run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg    *config.Config
				replay *tracer.Result
				err    error
			)
			if len(args) == 1 {
				cfg, err = storage.New(dataDir).LoadScenario(args[0])
				if err != nil {
					return err
				}
				if _, replay, err = loadRun(args[0]); err != nil {
					return err
				}
			} else if cfg, err = loadScenario(cmd); err != nil {
				return err
			}

			if err := viz.SetTheme(theme); err != nil {
				return err
			}
			v, err := viz.NewViewer(cfg, experiment.NewRegistry(), replay)
			if err != nil {
				return err
			}
			return viz.Run(v)
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "color theme: ocean, thermal, mono")
	return cmd
}
