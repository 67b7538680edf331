package core

// Canvas receives draw calls in logical viewport units.
// Games call it only from their read-only render pass.
type Canvas interface {
	// Size returns the logical viewport width and height.
	Size() (w, h float64)

	// SetColor sets the color used by subsequent fill and text calls.
	SetColor(c Color)

	FillRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)

	// FillPolygon fills the polygon with vertices (xs[i], ys[i]).
	FillPolygon(xs, ys []float64)

	// DrawText draws a single line of text with its top-left corner at (x, y).
	DrawText(x, y float64, text string)
}
