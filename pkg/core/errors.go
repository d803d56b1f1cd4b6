package core

import (
	"errors"
	"fmt"
)

// ErrDegenerate is the root of every degenerate-geometry construction error
var ErrDegenerate = errors.New("degenerate geometry")

var (
	// ErrDegenerateDirection reports a zero-approximate direction vector
	ErrDegenerateDirection = fmt.Errorf("%w: zero-length direction", ErrDegenerate)

	// ErrDegenerateBasis reports a basis built from a zero-approximate vector
	ErrDegenerateBasis = fmt.Errorf("%w: cannot form orthonormal basis", ErrDegenerate)
)
