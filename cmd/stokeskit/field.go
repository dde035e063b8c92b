package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/randutil"
	"github.com/san-kum/stokeskit/internal/tracer"
)

func newFlowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow x,y,z [x,y,z ...]",
		Short: "evaluate the flow velocity at points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			field, err := experiment.NewRegistry().GetField(cfg.Flow, cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tVELOCITY\t|U|")
			for _, arg := range args {
				p, err := parsePoint(arg)
				if err != nil {
					return err
				}
				u := field(p)
				fmt.Fprintf(w, "%s\t%s\t%.6g\n", p, u, u.Magnitude())
			}
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func newTensorCmd() *cobra.Command {
	var imageOnly bool
	cmd := &cobra.Command{
		Use:   "tensor x,y,z",
		Short: "print the Blake tensor at a point and its product with the force",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			p, err := parsePoint(args[0])
			if err != nil {
				return err
			}

			g := fluid.BlakeTensorAt(p, cfg.SpherePosition(), cfg.WallZ(), cfg.Fluid.Viscosity, !imageOnly)
			if g.ContainsNaN() {
				logger.Warn("tensor is singular at this point", "position", p.String())
			}
			fmt.Printf("G%s (wall z=%g)\n%s", p, cfg.WallZ(), g)
			fmt.Printf("G.F = %s\n", fluid.BlakeFlowAt(p, cfg.SpherePosition(), cfg.ForceVector(), cfg.WallZ(), cfg.Fluid.Viscosity, !imageOnly))
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().BoolVar(&imageOnly, "image-only", false, "wall correction only, without the direct Stokeslet")
	return cmd
}

func newDragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Stokes drag on the sphere and tracer diffusivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			u := cfg.SphereVelocity()
			drag := fluid.StokesDrag(u, cfg.Fluid.Viscosity, cfg.Sphere.Radius)
			d := tracer.Diffusivity(cfg.Fluid.Temperature, cfg.Fluid.Viscosity, cfg.Tracer.Radius)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "velocity\t%s\tm/s\n", u)
			fmt.Fprintf(w, "drag\t%s\tN\n", drag)
			fmt.Fprintf(w, "|drag|\t%.6g\tN\n", drag.Magnitude())
			fmt.Fprintf(w, "tracer D\t%.6g\tm²/s\n", d)
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	addTracerFlags(cmd)
	return cmd
}

func newDivergenceCmd() *cobra.Command {
	var step float64
	cmd := &cobra.Command{
		Use:   "divergence x,y,z [x,y,z ...]",
		Short: "finite-difference divergence of the flow at points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			field, err := experiment.NewRegistry().GetField(cfg.Flow, cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tDIV U")
			for _, arg := range args {
				p, err := parsePoint(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.6g\n", p, fluid.DivergenceStep(field, p, step))
			}
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().Float64Var(&step, "step", fluid.DefaultDivergenceStep, "finite difference step (m)")
	return cmd
}

func newProfileCmd() *cobra.Command {
	var x, y float64
	var points int
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "plot |u| along a vertical line through the box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			field, err := experiment.NewRegistry().GetField(cfg.Flow, cfg)
			if err != nil {
				return err
			}
			if points < 2 {
				return fmt.Errorf("profile needs at least 2 points, got %d", points)
			}

			if !cmd.Flags().Changed("x") {
				x = cfg.Sphere.Position[0]
			}
			if !cmd.Flags().Changed("y") {
				y = cfg.Sphere.Position[1]
			}

			box := cfg.Domain()
			speeds := make([]float64, points)
			skipped := 0
			for i := range speeds {
				z := box.ZMin() + box.ZSize()*float64(i)/float64(points-1)
				s := field(array.Of(x, y, z)).Magnitude()
				if math.IsNaN(s) || math.IsInf(s, 0) {
					s = 0
					skipped++
				}
				speeds[i] = s
			}
			if skipped > 0 {
				logger.Warn("non-finite samples plotted as zero", "count", skipped)
			}

			fmt.Printf("flow: %s  x=%g y=%g  z in [%g, %g]\n\n", cfg.Flow, x, y, box.ZMin(), box.ZMax())
			fmt.Println(asciigraph.Plot(speeds,
				asciigraph.Height(12),
				asciigraph.Width(72),
				asciigraph.Caption("|u| (m/s) from floor to ceiling"),
			))
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().Float64Var(&x, "x", 0, "line x (default sphere x)")
	cmd.Flags().Float64Var(&y, "y", 0, "line y (default sphere y)")
	cmd.Flags().IntVar(&points, "points", 72, "samples along the line")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var n int
	var surface bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "draw random points in the box or on its surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			box := cfg.Domain()
			src := randutil.NewSource(cfg.Tracer.Seed)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "X\tY\tZ")
			for i := 0; i < n; i++ {
				var p array.Array[float64]
				if surface {
					p = box.RandomPointOnSurface(src)
				} else {
					p = box.RandomPointInBounds(src)
				}
				fmt.Fprintf(w, "%.6g\t%.6g\t%.6g\n", p[0], p[1], p[2])
			}
			return w.Flush()
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of points")
	cmd.Flags().BoolVar(&surface, "surface", false, "sample the box surface instead of the volume")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}
