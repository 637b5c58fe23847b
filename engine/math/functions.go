package math

import gomath "math"

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Returns the result of multiplying matrix_0 and matrix_1.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}
	return out_matrix
}

// NewMat4ScreenOrthographic builds the projection used for UI drawing: pixel
// coordinates of a width x height viewport map to clip space, with a half
// pixel offset so texel centres line up with pixel centres, and z mapped to
// the middle of the depth range.
func NewMat4ScreenOrthographic(width, height float32) Mat4 {
	l := float32(0.5)
	r := width + 0.5
	t := float32(0.5)
	b := height + 0.5

	out_matrix := Mat4{}
	out_matrix.Data[0] = 2.0 / (r - l)
	out_matrix.Data[5] = 2.0 / (t - b)
	out_matrix.Data[10] = 0.5
	out_matrix.Data[12] = (l + r) / (l - r)
	out_matrix.Data[13] = (t + b) / (b - t)
	out_matrix.Data[14] = 0.5
	out_matrix.Data[15] = 1.0
	return out_matrix
}

// TransformRow multiplies the row vector v by m (v * M), the D3D convention.
func (v Vec4) TransformRow(m Mat4) Vec4 {
	return Vec4{
		X: v.X*m.Data[0] + v.Y*m.Data[4] + v.Z*m.Data[8] + v.W*m.Data[12],
		Y: v.X*m.Data[1] + v.Y*m.Data[5] + v.Z*m.Data[9] + v.W*m.Data[13],
		Z: v.X*m.Data[2] + v.Y*m.Data[6] + v.Z*m.Data[10] + v.W*m.Data[14],
		W: v.X*m.Data[3] + v.Y*m.Data[7] + v.Z*m.Data[11] + v.W*m.Data[15],
	}
}

func Floor(f float32) float32 {
	return float32(gomath.Floor(float64(f)))
}

func Ceil(f float32) float32 {
	return float32(gomath.Ceil(float64(f)))
}
