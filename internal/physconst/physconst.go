// Package physconst is the constants table used by the fluid and tracer
// packages. Values are SI.
package physconst

import "math"

const (
	Pi = math.Pi

	// Boltzmann is k_B in J/K.
	Boltzmann = 1.380649e-23

	// Avogadro is N_A in 1/mol.
	Avogadro = 6.02214076e23

	// GasConstant is R = N_A * k_B in J/(mol K).
	GasConstant = Avogadro * Boltzmann
)
