package display

// Point is a position on the surface in pixels, y pointing down.
type Point struct {
	X, Y float64
}

// Series is the set of samples fetched from one source for one frame.
type Series struct {
	Source int
	Values []float64
}

// Trace is one stroked path. Source indexes the source whose style applies.
type Trace struct {
	Source int
	Points []Point
}

// Layout maps fetched series onto a w×h surface.
//
// sources is the number of active sources, which fixes the band count in
// ModeScale even when some of them produced nothing this frame. Layout is a
// pure function of its arguments.
func Layout(series []Series, sources int, mode MultiMode, w, h float64) []Trace {
	switch {
	case len(series) == 0:
		return nil
	case len(series) == 1:
		return []Trace{wave(series[0], w, h/2, h/2)}
	}

	switch mode {
	case ModeXY:
		// The path always takes the first source's style, even when that
		// source produced nothing this frame.
		return []Trace{xy(series[0], series[1], w, h)}

	case ModeScale:
		bands := sources
		if bands < len(series) {
			bands = len(series)
		}
		bandHeight := h / float64(bands)
		out := make([]Trace, 0, len(series))
		for _, s := range series {
			offsetY := float64(2*s.Source+1) * bandHeight / 2
			out = append(out, wave(s, w, offsetY, bandHeight/2))
		}
		return out

	default:
		out := make([]Trace, 0, len(series))
		for _, s := range series {
			out = append(out, wave(s, w, h/2, h/2))
		}
		return out
	}
}

func wave(s Series, w, offsetY, scaleY float64) Trace {
	n := len(s.Values)
	pts := make([]Point, n)
	scaleX := 0.0
	if n > 1 {
		scaleX = w / float64(n-1)
	}
	for i, v := range s.Values {
		pts[i] = Point{X: float64(i) * scaleX, Y: offsetY - v*scaleY}
	}
	return Trace{Source: s.Source, Points: pts}
}

func xy(sx, sy Series, w, h float64) Trace {
	n := len(sx.Values)
	if len(sy.Values) < n {
		n = len(sy.Values)
	}
	cx, cy := w/2, h/2
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{X: cx + sx.Values[i]*cx, Y: cy - sy.Values[i]*cy}
	}
	return Trace{Source: 0, Points: pts}
}
