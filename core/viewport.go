package core

// Viewport is the rectangle of the document currently presented, in
// integer pixels. Fractional inputs are truncated on construction.
type Viewport struct {
	Top    int
	Left   int
	Width  int
	Height int
}

func NewViewport(top, left, width, height float64) Viewport {
	return Viewport{
		Top:    int(top),
		Left:   int(left),
		Width:  int(width),
		Height: int(height),
	}
}
