package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/config"
)

var (
	dataDir string
	verbose bool
	logger  *Logger

	// Scenario
	configFile  string
	preset      string
	flowName    string
	radius      float64
	viscosity   float64
	shearRate   float64
	temperature float64
	spherePos   []float64
	velocity    []float64
	force       []float64
	wallZ       float64

	// Tracers
	particles    int
	tracerRadius float64
	dt           float64
	duration     float64
	seed         uint64
	inject       string
	workers      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stokeskit",
		Short: "Stokes flow kernels, tracers and wall-bounded flows",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = NewLogger(os.Stderr, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stokeskit", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newFlowCmd(),
		newTensorCmd(),
		newDragCmd(),
		newDivergenceCmd(),
		newProfileCmd(),
		newSampleCmd(),
		newTraceCmd(),
		newListCmd(),
		newPlotCmd(),
		newSpectrumCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newPresetsCmd(),
		newViewCmd(),
		newBatchCmd(),
		newSweepCmd(),
		newSearchCmd(),
		newEnsembleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scenario file (yaml)")
	f.StringVar(&preset, "preset", "", "use a named preset of --flow")
	f.StringVar(&flowName, "flow", config.DefaultFlow, "flow: uniform, translating, shear, blake, blake-image")
	f.Float64Var(&radius, "radius", config.DefaultRadius, "sphere radius (m)")
	f.Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "dynamic viscosity (Pa s)")
	f.Float64Var(&shearRate, "shear-rate", config.DefaultShearRate, "shear rate (1/s)")
	f.Float64Var(&temperature, "temperature", config.DefaultTemperature, "temperature (K)")
	f.Float64SliceVar(&spherePos, "sphere", nil, "sphere centre x,y,z (m)")
	f.Float64SliceVar(&velocity, "velocity", nil, "free-stream or sphere velocity x,y,z (m/s)")
	f.Float64SliceVar(&force, "force", nil, "point force x,y,z (N)")
	f.Float64Var(&wallZ, "wall-z", 0, "height of the no-slip wall (m); default is the box floor")
}

func addTracerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&particles, "particles", config.DefaultParticles, "number of tracers")
	f.Float64Var(&tracerRadius, "tracer-radius", config.DefaultTracerSize, "tracer radius (m)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&inject, "inject", config.DefaultInject, "injection: surface or volume")
	f.IntVar(&workers, "workers", 0, "worker goroutines (0 = default)")
}

// loadScenario builds the scenario from, in increasing priority: defaults,
// --preset, --config, then any flag set on the command line.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	flags := cmd.Flags()

	if preset != "" {
		p := config.GetPreset(flowName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(flowName))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("flow") {
		cfg.Flow = flowName
	}
	if flags.Changed("radius") {
		cfg.Sphere.Radius = radius
	}
	if flags.Changed("viscosity") {
		cfg.Fluid.Viscosity = viscosity
	}
	if flags.Changed("shear-rate") {
		cfg.Fluid.ShearRate = shearRate
	}
	if flags.Changed("temperature") {
		cfg.Fluid.Temperature = temperature
	}
	if flags.Changed("sphere") {
		cfg.Sphere.Position = spherePos
	}
	if flags.Changed("velocity") {
		cfg.Sphere.Velocity = velocity
	}
	if flags.Changed("force") {
		cfg.Force = force
	}
	if flags.Changed("wall-z") {
		cfg.Wall.ZMin, cfg.Wall.FromBox = wallZ, false
	}

	if flags.Changed("particles") {
		cfg.Tracer.Particles = particles
	}
	if flags.Changed("tracer-radius") {
		cfg.Tracer.Radius = tracerRadius
	}
	if flags.Changed("dt") {
		cfg.Tracer.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Tracer.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Tracer.Seed = seed
	}
	if flags.Changed("inject") {
		cfg.Tracer.Inject = inject
	}
	if flags.Changed("workers") {
		cfg.Tracer.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "flow", cfg.Flow, "preset", preset, "config", configFile)
	return cfg, nil
}

// parsePoint reads "x,y,z".
func parsePoint(s string) (array.Array[float64], error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("point %q: want x,y,z", s)
	}
	p := array.New[float64](3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}
