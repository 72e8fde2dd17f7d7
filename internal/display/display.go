// Package display defines the host-owned visual elements the chart mutates
package display

// Fallback screen geometry for hosts that cannot report their size
const (
	FallbackWidth  = 348
	FallbackHeight = 250
)

// Element is a pre-allocated visual slot (dot or bar) owned by the host.
// The chart only writes to elements and never reads them back.
type Element interface {
	SetPosition(x, y float64)
	SetSize(width, height float64)
	SetFill(color string)
	SetVisible(visible bool)
}

// Line is a horizontal guide line spanning the chart
type Line interface {
	SetLevel(y float64)
	SetVisible(visible bool)
}

// Pool is a fixed-length collection of elements of one visual category.
// Every slot holds an element.
type Pool []Element

// At returns element i, or nil when the pool is exhausted
func (p Pool) At(i int) Element {
	if i < 0 || i >= len(p) {
		return nil
	}
	return p[i]
}

// HideAll hides every element in the pool
func (p Pool) HideAll() {
	for _, e := range p {
		e.SetVisible(false)
	}
}

// Surface reports the drawable area of the host display
type Surface interface {
	Size() (width, height float64)
}

// ScreenSize returns the surface size, falling back to 348x250 when the
// surface is missing or reports a non-positive dimension.
func ScreenSize(s Surface) (width, height float64) {
	if s == nil {
		return FallbackWidth, FallbackHeight
	}
	width, height = s.Size()
	if width <= 0 || height <= 0 {
		return FallbackWidth, FallbackHeight
	}
	return width, height
}

// StaticSurface is a Surface with a fixed size
type StaticSurface struct {
	Width  float64
	Height float64
}

// Size implements Surface
func (s StaticSurface) Size() (float64, float64) {
	return s.Width, s.Height
}
