package display

// Rect is an in-memory Element. It records whatever the chart writes so a
// software host (or a test) can inspect or rasterize it afterwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          string
	Visible       bool
	Writes        int // Number of position updates received
}

// SetPosition implements Element
func (r *Rect) SetPosition(x, y float64) {
	r.X = x
	r.Y = y
	r.Writes++
}

// SetSize implements Element
func (r *Rect) SetSize(width, height float64) {
	r.Width = width
	r.Height = height
}

// SetFill implements Element
func (r *Rect) SetFill(color string) {
	r.Fill = color
}

// SetVisible implements Element
func (r *Rect) SetVisible(visible bool) {
	r.Visible = visible
}

// HLine is an in-memory Line
type HLine struct {
	Y       float64
	Visible bool
}

// SetLevel implements Line
func (l *HLine) SetLevel(y float64) {
	l.Y = y
}

// SetVisible implements Line
func (l *HLine) SetVisible(visible bool) {
	l.Visible = visible
}

// NewRectPool allocates n hidden in-memory elements of the given size and fill.
// It returns both the Pool and the concrete elements backing it.
func NewRectPool(n int, width, height float64, fill string) (Pool, []*Rect) {
	pool := make(Pool, n)
	rects := make([]*Rect, n)
	for i := range rects {
		rects[i] = &Rect{Width: width, Height: height, Fill: fill}
		pool[i] = rects[i]
	}
	return pool, rects
}

// Visible returns the visible rects in pool order
func Visible(rects []*Rect) []*Rect {
	var out []*Rect
	for _, r := range rects {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}
