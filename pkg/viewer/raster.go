package viewer

import (
	"image"
	"image/color"
	"math"
)

// point is a projected vertex: screen position plus camera depth
type point struct {
	x, y, z float64
}

// frame is an image with a depth buffer. Smaller depth is closer.
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int, background color.RGBA) *frame {
	f := &frame{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.img.SetRGBA(x, y, background)
		}
	}
	return f
}

// plot writes col at (x, y) when z passes the depth test with the given bias
func (f *frame) plot(x, y int, z, bias float64, col color.RGBA) {
	b := f.img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	i := y*b.Max.X + x
	if z-bias < f.depth[i] {
		f.depth[i] = math.Min(z, f.depth[i])
		f.img.SetRGBA(x, y, col)
	}
}

// fillTriangle rasterizes a triangle scanline by scanline, interpolating
// depth along the edges and then across each span
func (f *frame) fillTriangle(a, b, c point, col color.RGBA) {
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}
	if c.y == a.y {
		return
	}

	bounds := f.img.Bounds()
	top := int(math.Max(0, math.Ceil(a.y)))
	bottom := int(math.Min(float64(bounds.Max.Y-1), math.Floor(c.y)))

	for y := top; y <= bottom; y++ {
		fy := float64(y)

		// the long edge a-c spans every scanline, the short one switches at b
		start := along(a, c, fy)
		var end point
		if fy < b.y {
			end = along(a, b, fy)
		} else {
			end = along(b, c, fy)
		}
		if start.x > end.x {
			start, end = end, start
		}

		left := int(math.Max(0, math.Ceil(start.x)))
		right := int(math.Min(float64(bounds.Max.X-1), math.Floor(end.x)))
		for x := left; x <= right; x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			f.plot(x, y, start.z+t*(end.z-start.z), 0, col)
		}
	}
}

// along returns the point on edge p-q at scanline y
func along(p, q point, y float64) point {
	if q.y == p.y {
		return p
	}
	t := (y - p.y) / (q.y - p.y)
	return point{p.x + t*(q.x-p.x), y, p.z + t*(q.z-p.z)}
}

// drawLine draws a Bresenham line that stays visible on the faces it borders
func (f *frame) drawLine(p, q point, bias float64, col color.RGBA) {
	x0, y0 := int(math.Round(p.x)), int(math.Round(p.y))
	x1, y1 := int(math.Round(q.x)), int(math.Round(q.y))

	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	steps := max(dx, dy)
	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plot(x0, y0, p.z+t*(q.z-p.z), bias, col)

		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
