package array

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a checked access past the end of an array.
	ErrOutOfRange = errors.New("array: index out of range")

	// ErrShapeMismatch indicates an elementwise operation between arrays of
	// different lengths.
	ErrShapeMismatch = errors.New("array: shape mismatch")
)

// ShapeError is the panic value for a shape contract violation.
type ShapeError struct {
	Op    string
	Left  int
	Right int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s (%d vs %d)", ErrShapeMismatch.Error(), e.Op, e.Left, e.Right)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// CheckShape reports whether two lengths are compatible for op.
func CheckShape(op string, left, right int) error {
	if left != right {
		return &ShapeError{Op: op, Left: left, Right: right}
	}
	return nil
}

func mustMatch(op string, left, right int) {
	if err := CheckShape(op, left, right); err != nil {
		panic(err)
	}
}

func indexError(i, n int) error {
	return fmt.Errorf("At(%d) on length %d: %w", i, n, ErrOutOfRange)
}
