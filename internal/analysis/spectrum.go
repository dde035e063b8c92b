package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/stokeskit/internal/tracer"
)

var (
	ErrTooShort = errors.New("analysis: run too short")
	ErrBadAxis  = errors.New("analysis: axis out of range")
)

// PowerSpectrum is the one-sided periodogram dt/n * |X_k|^2 of samples spaced
// by dt, for k = 0..n/2, with the matching frequencies k/(n*dt).
func PowerSpectrum(data []float64, dt float64) (freqs, power []float64) {
	n := len(data)
	if n == 0 {
		return nil, nil
	}

	x := fft.FFTReal(data)
	bins := n/2 + 1
	freqs = make([]float64, bins)
	power = make([]float64, bins)
	for k := range power {
		a := cmplx.Abs(x[k])
		power[k] = dt / float64(n) * a * a
		freqs[k] = float64(k) / (float64(n) * dt)
	}
	return freqs, power
}

// Autocorrelation of data about its mean, normalised to 1 at lag 0. The
// signal is zero-padded so the correlation is linear, not circular. A
// constant signal gives all zeros.
func Autocorrelation(data []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	padded := make([]float64, 2*n)
	for i, v := range data {
		padded[i] = v - mean
	}

	x := fft.FFTReal(padded)
	for i, c := range x {
		x[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	r := fft.IFFT(x)

	r0 := real(r[0])
	if r0 == 0 {
		return out
	}
	for i := range out {
		out[i] = real(r[i]) / r0
	}
	return out
}

// velocities is the finite-difference velocity of particle i along axis.
func velocities(r *tracer.Result, axis, i int, dt float64) []float64 {
	out := make([]float64, len(r.Positions)-1)
	for k := range out {
		out[k] = (r.Positions[k+1][i][axis] - r.Positions[k][i][axis]) / dt
	}
	return out
}

func checkRun(r *tracer.Result, axis int) (float64, error) {
	if len(r.Times) < 3 || len(r.Positions) != len(r.Times) {
		return 0, fmt.Errorf("%w: %d frames", ErrTooShort, len(r.Times))
	}
	if axis < 0 || axis > 2 {
		return 0, fmt.Errorf("%w: %d", ErrBadAxis, axis)
	}
	return r.Times[1] - r.Times[0], nil
}

// VelocitySpectrum averages the power spectrum of every particle's velocity
// along axis.
func VelocitySpectrum(r *tracer.Result, axis int) (freqs, power []float64, err error) {
	dt, err := checkRun(r, axis)
	if err != nil {
		return nil, nil, err
	}

	n := len(r.Positions[0])
	for i := 0; i < n; i++ {
		f, p := PowerSpectrum(velocities(r, axis, i, dt), dt)
		if power == nil {
			freqs, power = f, make([]float64, len(p))
		}
		for k, v := range p {
			power[k] += v / float64(n)
		}
	}
	return freqs, power, nil
}

// VelocityAutocorrelation averages the velocity autocorrelation of every
// particle along axis. Index k is lag k*dt.
func VelocityAutocorrelation(r *tracer.Result, axis int) ([]float64, error) {
	dt, err := checkRun(r, axis)
	if err != nil {
		return nil, err
	}

	n := len(r.Positions[0])
	out := make([]float64, len(r.Positions)-1)
	for i := 0; i < n; i++ {
		for k, v := range Autocorrelation(velocities(r, axis, i, dt)) {
			out[k] += v / float64(n)
		}
	}
	return out, nil
}
