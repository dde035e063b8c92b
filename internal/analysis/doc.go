// Package analysis provides frequency-domain diagnostics for tracer runs.
//
// For free Brownian motion the finite-difference velocity along one axis is
// white, so its power spectrum is flat at 2D and its autocorrelation drops
// to zero after lag 0. Advection by a flow shows up as low-frequency power
// and positive correlation at short lags.
package analysis
