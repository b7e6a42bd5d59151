package geom

import "gonum.org/v1/gonum/spatial/r2"

// DefaultTolerance is the near-segment distance, in coordinate units, under
// which a point counts as touching a line.
const DefaultTolerance = 0.001

func vec(p [2]float64) r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

// NearSegment reports whether p lies closer than tol to the segment a-b.
// The projection of p is clamped to the segment's endpoints.
func NearSegment(p, a, b [2]float64, tol float64) bool {
	pv, av, bv := vec(p), vec(a), vec(b)
	ab := r2.Sub(bv, av)
	t := -1.0
	if lenSq := r2.Dot(ab, ab); lenSq != 0 {
		t = r2.Dot(r2.Sub(pv, av), ab) / lenSq
	}
	var q r2.Vec
	switch {
	case t < 0:
		q = av
	case t > 1:
		q = bv
	default:
		q = r2.Add(av, r2.Scale(t, ab))
	}
	return r2.Norm(r2.Sub(pv, q)) < tol
}

// NearLine reports whether p is near any consecutive segment of ls.
func NearLine(p [2]float64, ls [][2]float64, tol float64) bool {
	for i := 0; i+1 < len(ls); i++ {
		if NearSegment(p, ls[i], ls[i+1], tol) {
			return true
		}
	}
	return false
}

// PointInRing is an even-odd ray casting test. The ring may be open or closed.
func PointInRing(p [2]float64, ring [][2]float64) bool {
	x, y := p[0], p[1]
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// TranslateLine returns a copy of ls moved by d.
func TranslateLine(ls [][2]float64, d [2]float64) [][2]float64 {
	if ls == nil {
		return nil
	}
	dv := vec(d)
	out := make([][2]float64, len(ls))
	for i, p := range ls {
		v := r2.Add(vec(p), dv)
		out[i] = [2]float64{v.X, v.Y}
	}
	return out
}

// TranslateRings moves every vertex of every ring by d.
func TranslateRings(rings [][][2]float64, d [2]float64) [][][2]float64 {
	if rings == nil {
		return nil
	}
	out := make([][][2]float64, len(rings))
	for i, r := range rings {
		out[i] = TranslateLine(r, d)
	}
	return out
}

// CloneLine deep-copies a coordinate sequence.
func CloneLine(ls [][2]float64) [][2]float64 {
	if ls == nil {
		return nil
	}
	out := make([][2]float64, len(ls))
	copy(out, ls)
	return out
}

// CloneRings deep-copies a ring set.
func CloneRings(rings [][][2]float64) [][][2]float64 {
	if rings == nil {
		return nil
	}
	out := make([][][2]float64, len(rings))
	for i, r := range rings {
		out[i] = CloneLine(r)
	}
	return out
}

// CloseRing returns ring with its first vertex appended when it is not
// already closed. Rings under 3 vertices are returned unchanged.
func CloseRing(ring [][2]float64) [][2]float64 {
	if len(ring) < 3 {
		return ring
	}
	out := CloneLine(ring)
	if out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}
