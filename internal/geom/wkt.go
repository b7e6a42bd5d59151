package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKTData returns Data for LINESTRING/POLYGON, or points for POINT/MULTIPOINT
func ParseWKTData(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var d Data
	parseTuples := func(block string) [][2]float64 {
		var out [][2]float64
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.Trim(strings.TrimSpace(tup), "()"))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, [2]float64{x, y})
		}
		return out
	}
	body := func(kind, open, close string) (string, error) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", errors.New("wkt " + kind + ": invalid")
		}
		return s[i+len(open) : j], nil
	}
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "POINT"):
		b, err := body("point", "(", ")")
		if err != nil {
			return Data{}, err
		}
		for _, p := range parseTuples(b) {
			d.Points = append(d.Points, p)
			d.add(p)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		b, err := body("linestring", "(", ")")
		if err != nil {
			return Data{}, err
		}
		ls := parseTuples(b)
		d.Lines = append(d.Lines, ls)
		for _, p := range ls {
			d.add(p)
		}
	case strings.HasPrefix(up, "POLYGON"):
		b, err := body("polygon", "((", "))")
		if err != nil {
			return Data{}, err
		}
		// normalize spaces around ring separators
		ringsNorm := strings.ReplaceAll(b, "), (", "),(")
		ringsNorm = strings.ReplaceAll(ringsNorm, ") , (", "),(")
		var poly [][][2]float64
		for _, rp := range strings.Split(ringsNorm, "),(") {
			pts := parseTuples(rp)
			poly = append(poly, pts)
			for _, p := range pts {
				d.add(p)
			}
		}
		d.Polygons = append(d.Polygons, poly)
	default:
		return Data{}, errors.New("unsupported wkt type")
	}
	if d.Empty() || d.n == 0 {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

func formatTuples(sb *strings.Builder, ls [][2]float64) {
	for i, p := range ls {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p[0], 'f', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p[1], 'f', -1, 64))
	}
}

// FormatLineString renders ls as LINESTRING(x y, ...).
func FormatLineString(ls [][2]float64) string {
	if len(ls) == 0 {
		return "LINESTRING EMPTY"
	}
	var sb strings.Builder
	sb.WriteString("LINESTRING(")
	formatTuples(&sb, ls)
	sb.WriteString(")")
	return sb.String()
}

// FormatPolygon renders rings as POLYGON((x y, ...), ...).
func FormatPolygon(rings [][][2]float64) string {
	if len(rings) == 0 {
		return "POLYGON EMPTY"
	}
	var sb strings.Builder
	sb.WriteString("POLYGON(")
	for i, r := range rings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		formatTuples(&sb, r)
		sb.WriteString(")")
	}
	sb.WriteString(")")
	return sb.String()
}
