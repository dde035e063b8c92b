// Package fluid provides closed-form low Reynolds number flow kernels for a
// sphere in a viscous fluid.
//
// Every kernel is a pure function of its arguments:
//
//   - [StokesDrag]: drag force on a translating sphere
//   - [TranslatingFlowAt]: Stokeslet plus source dipole around a moving sphere
//   - [ShearFlowAt]: disturbance of a sphere held in simple shear (rate*z, 0, 0)
//   - [BlakeTensorAt], [BlakeFlowAt]: point force near a no-slip wall
//   - [Divergence]: central finite-difference estimate of div f
//
// Positions are 3-element [array.Array] values and are never modified.
// Evaluating a kernel at the sphere centre divides by zero; the resulting
// Inf or NaN is returned as is.
//
// # Walls
//
// The wall for the Blake kernels is the plane z = zMin. [BlakeFlowInBox]
// takes it from the floor of a [bbox.Box]:
//
//	box := bbox.New(-100, 100, -100, 100, 0, 200)
//	u := fluid.BlakeFlowInBox(pos, sphere, force, box, viscosity)
package fluid
