package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a minimal geometry container for importing
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox

	n int // vertices folded into BBox
}

// Empty reports whether the box has no area.
func (b BBox) Empty() bool {
	return !(b.MaxX > b.MinX && b.MaxY > b.MinY)
}

// Extend grows the box to include pt.
func (b BBox) Extend(pt [2]float64) BBox {
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
	return b
}

func (d *Data) add(pt [2]float64) {
	if d.n == 0 {
		d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
	} else {
		d.BBox = d.BBox.Extend(pt)
	}
	d.n++
}

// Empty reports whether no geometry was collected.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Bounds recomputes the box of every collected vertex. ok is false when
// there are none.
func (d Data) Bounds() (BBox, bool) {
	var acc Data
	for _, p := range d.Points {
		acc.add(p)
	}
	for _, ls := range d.Lines {
		for _, p := range ls {
			acc.add(p)
		}
	}
	for _, poly := range d.Polygons {
		for _, r := range poly {
			for _, p := range r {
				acc.add(p)
			}
		}
	}
	return acc.BBox, acc.n > 0
}
