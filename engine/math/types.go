package math

/**
 * @brief A 4x4 matrix stored row-major, the layout D3DMATRIX uses, so it can be
 * handed to SetTransform without reordering.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief A 2-element vector.
 */
type Vec2 struct {
	X float32
	Y float32
}

/**
 * @brief A 4-element vector used for row-vector transforms.
 */
type Vec4 struct {
	X float32
	Y float32
	Z float32
	W float32
}
