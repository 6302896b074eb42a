package canvas

import "math"

// Affine is a 2D affine transform in homogeneous coordinates. The bottom
// row is always {0, 0, 1}.
type Affine [3][3]float64

// Identity returns the transform that maps every point to itself.
func Identity() Affine {
	return Affine{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func Translate(tx, ty float64) Affine {
	return Affine{{1, 0, tx}, {0, 1, ty}, {0, 0, 1}}
}

// Rotate turns points by theta radians. With y pointing down the rotation
// appears clockwise on screen.
func Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{{cos, -sin, 0}, {sin, cos, 0}, {0, 0, 1}}
}

func Scale(sx, sy float64) Affine {
	return Affine{{sx, 0, 0}, {0, sy, 0}, {0, 0, 1}}
}

// Concat returns m·n: the transform that applies n first, then m.
func (m Affine) Concat(n Affine) Affine {
	var out Affine
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return out
}

// Apply maps (x, y) through the transform.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2],
		m[1][0]*x + m[1][1]*y + m[1][2]
}

// Point maps an integer point and rounds the result to the nearest pixel.
func (m Affine) Point(x, y int) (int, int) {
	fx, fy := m.Apply(float64(x), float64(y))
	return int(math.Round(fx)), int(math.Round(fy))
}
