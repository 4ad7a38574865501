package dwa

import "errors"

// Domain errors for planner construction and execution.
var (
	// ErrUnknownShape indicates a shape name outside the closed variant set.
	ErrUnknownShape = errors.New("dwa: unknown robot shape")

	// ErrInvalidConfig indicates a config value the planner cannot run with.
	ErrInvalidConfig = errors.New("dwa: invalid config")
)
