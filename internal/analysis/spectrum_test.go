package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/physconst"
	"github.com/san-kum/stokeskit/internal/tracer"
)

const eps = 1e-9

func TestPowerSpectrum_Constant(t *testing.T) {
	data := []float64{2, 2, 2, 2, 2, 2, 2, 2}
	freqs, power := PowerSpectrum(data, 0.5)

	if len(power) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(power))
	}
	// dt/n * (n*c)^2 = 0.5/8 * 256
	if math.Abs(power[0]-16) > eps {
		t.Errorf("DC power = %g, want 16", power[0])
	}
	for k := 1; k < len(power); k++ {
		if power[k] > eps {
			t.Errorf("bin %d has power %g", k, power[k])
		}
	}
	if math.Abs(freqs[1]-0.25) > eps {
		t.Errorf("frequency resolution = %g, want 0.25", freqs[1])
	}
}

func TestPowerSpectrum_SinePeak(t *testing.T) {
	const n = 16
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 2 * float64(i) / n)
	}
	_, power := PowerSpectrum(data, 1)

	for k, p := range power {
		want := 0.0
		if k == 2 {
			want = 4
		}
		if math.Abs(p-want) > eps {
			t.Errorf("bin %d: power %g, want %g", k, p, want)
		}
	}
}

func TestPowerSpectrum_Empty(t *testing.T) {
	if f, p := PowerSpectrum(nil, 1); f != nil || p != nil {
		t.Errorf("expected nil spectrum, got %v %v", f, p)
	}
}

func TestAutocorrelation(t *testing.T) {
	got := Autocorrelation([]float64{1, -1, 1, -1})
	want := []float64{1, -0.75, 0.5, -0.25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("acf = %v, want %v", got, want)
		}
	}

	for _, v := range Autocorrelation([]float64{3, 3, 3}) {
		if v != 0 {
			t.Errorf("constant signal should give zeros, got %v", v)
		}
	}
}

func straightRun() *tracer.Result {
	r := &tracer.Result{}
	for k := 0; k < 5; k++ {
		r.Times = append(r.Times, 0.1*float64(k))
		r.Positions = append(r.Positions, []array.Array[float64]{
			array.Of(0.2*float64(k), 0, 0),
			array.Of(0, 0, -0.2*float64(k)),
		})
	}
	return r
}

func TestVelocitySpectrum_Drift(t *testing.T) {
	// Particle 0 drifts at 2 m/s along x, particle 1 is still along x.
	freqs, power, err := VelocitySpectrum(straightRun(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(freqs))
	}
	// one particle: dt/n * (n*v)^2 = 0.1/4 * 64 = 1.6, averaged with zero
	if math.Abs(power[0]-0.8) > eps {
		t.Errorf("DC power = %g, want 0.8", power[0])
	}
	if power[1] > eps || power[2] > eps {
		t.Errorf("drift should have no AC power: %v", power)
	}
}

func TestVelocitySpectrum_Errors(t *testing.T) {
	if _, _, err := VelocitySpectrum(straightRun(), 3); !errors.Is(err, ErrBadAxis) {
		t.Errorf("expected ErrBadAxis, got %v", err)
	}

	short := straightRun()
	short.Times, short.Positions = short.Times[:2], short.Positions[:2]
	if _, _, err := VelocitySpectrum(short, 0); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := VelocityAutocorrelation(short, 0); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

// Free diffusion with D = 1 has a flat velocity spectrum at 2D and no
// velocity correlation beyond lag 0.
func TestVelocitySpectrum_Brownian(t *testing.T) {
	params := tracer.Params{
		Particles:   256,
		Radius:      1,
		Viscosity:   1 / (6 * math.Pi),
		Temperature: 1 / physconst.Boltzmann,
		Dt:          0.01,
		Duration:    0.5,
		Seed:        11,
		Inject:      tracer.InjectVolume,
	}
	still := func(array.Array[float64]) array.Array[float64] { return array.New[float64](3) }
	sim, err := tracer.New(still, bbox.New(-500, 500, -500, 500, -500, 500), params)
	if err != nil {
		t.Fatal(err)
	}
	result, err := sim.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	_, power, err := VelocitySpectrum(result, 2)
	if err != nil {
		t.Fatal(err)
	}
	var mean float64
	for _, p := range power {
		mean += p / float64(len(power))
	}
	if math.Abs(mean-2) > 0.2 {
		t.Errorf("mean spectral level = %g, want about 2", mean)
	}

	acf, err := VelocityAutocorrelation(result, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(acf[0]-1) > eps {
		t.Errorf("acf[0] = %g, want 1", acf[0])
	}
	if math.Abs(acf[1]) > 0.1 {
		t.Errorf("acf[1] = %g, want about 0", acf[1])
	}
}
