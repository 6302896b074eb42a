package canvas

import "math"

// DrawLine draws a line from (x1, y1) to (x2, y2), both endpoints included.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, color uint32) {
	if c.Transform != nil {
		x1, y1 = c.Transform.Point(x1, y1)
		x2, y2 = c.Transform.Point(x2, y2)
	}
	plot := func(x, y int) { c.Set(x, y, color) }
	if c.LineAlgo == Bresenham {
		bresenham(x1, y1, x2, y2, plot)
		return
	}
	dda(x1, y1, x2, y2, plot)
}

// dda steps along the major axis one pixel at a time and rounds the minor
// coordinate.
func dda(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx, dy := x2-x1, y2-y1
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		plot(x1, y1)
		return
	}
	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(x1), float64(y1)
	for i := 0; i <= steps; i++ {
		plot(int(math.Round(x)), int(math.Round(y)))
		x += xInc
		y += yInc
	}
}

// bresenham is the integer-only error-accumulating variant, valid in every
// octant.
func bresenham(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int, color uint32) {
	if r < 0 {
		return
	}
	x, y, e := r, 0, 0
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {-x, y}, {x, -y}, {-x, -y},
			{y, x}, {-y, x}, {y, -x}, {-y, -x},
		} {
			c.Set(cx+p[0], cy+p[1], color)
		}
		if e <= 0 {
			y++
			e += 2*y + 1
		}
		if e > 0 {
			x--
			e -= 2*x + 1
		}
	}
}

// BoundaryFill paints the 4-connected region around (x, y) with fill,
// stopping at pixels that already hold fill or boundary.
func (c *Canvas) BoundaryFill(x, y int, fill, boundary uint32) {
	stack := [][2]int{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		px, py := p[0], p[1]
		if !c.inside(px, py) {
			continue
		}
		i := py*c.width + px
		if cur := c.pix[i]; cur == fill || cur == boundary {
			continue
		}
		c.pix[i] = fill
		stack = append(stack,
			[2]int{px + 1, py},
			[2]int{px - 1, py},
			[2]int{px, py + 1},
			[2]int{px, py - 1},
		)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
