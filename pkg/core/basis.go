package core

// Basis is an orthonormal frame (U, V, W)
type Basis struct {
	U, V, W Vec3
}

// NewBasis builds a frame from a forward vector w and an approximate up
// vector vHint: W = normalize(w), U = normalize(vHint × W), V = W × U.
// A hint parallel to w cannot fix U and is rejected as well.
func NewBasis(w, vHint Vec3) (Basis, error) {
	if w.IsZeroApprox() || vHint.IsZeroApprox() {
		return Basis{}, ErrDegenerateBasis
	}

	w = w.NormalizedOrZero()
	u, ok := vHint.Cross(w).Normalized()
	if !ok {
		return Basis{}, ErrDegenerateBasis
	}
	v := w.Cross(u)

	return Basis{U: u, V: v, W: w}, nil
}
