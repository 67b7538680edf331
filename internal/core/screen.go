package core

import (
	"math"
	"strings"
)

// HalfBlock is the glyph used to show two stacked pixels in one cell.
const HalfBlock = '▀'

// Cell is a single rendered terminal cell.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// Screen is a terminal-sized raster that implements Canvas.
// Every cell holds two vertically stacked pixels plus an optional text rune.
// Draw calls arrive in logical viewport units and are scaled to pixels, so
// the game keeps its own coordinate space regardless of terminal size.
type Screen struct {
	width  int // cells
	height int // cells
	viewW  float64
	viewH  float64

	pixels []Color // width x height*2, always opaque
	text   []rune  // 0 means no text in the cell
	textFG []Color

	pen        Color
	background Color
}

// NewScreen creates a new screen with the given dimensions in cells.
// The logical viewport defaults to the pixel grid until SetViewport is called.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:      width,
		height:     height,
		pen:        ColorWhite,
		background: ColorBlack,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	n := max(s.width, 0) * max(s.height, 0)
	s.pixels = make([]Color, n*2)
	s.text = make([]rune, n)
	s.textFG = make([]Color, n)
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// SetViewport sets the logical size that maps onto the full screen.
func (s *Screen) SetViewport(w, h float64) {
	s.viewW, s.viewH = w, h
}

// Size returns the logical viewport size.
func (s *Screen) Size() (float64, float64) {
	if s.viewW <= 0 || s.viewH <= 0 {
		return float64(s.width), float64(s.height * 2)
	}
	return s.viewW, s.viewH
}

// Resize changes the screen dimensions and clears it.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// SetBackground sets the color used by Clear.
func (s *Screen) SetBackground(c Color) {
	s.background = RGB(c.R, c.G, c.B)
}

// Clear fills every pixel with the background and removes all text.
func (s *Screen) Clear() {
	for i := range s.pixels {
		s.pixels[i] = s.background
	}
	for i := range s.text {
		s.text[i] = 0
	}
}

// SetColor sets the pen color for subsequent draw calls.
func (s *Screen) SetColor(c Color) {
	s.pen = c
}

// scale returns pixels per logical unit on each axis.
func (s *Screen) scale() (float64, float64) {
	vw, vh := s.Size()
	return float64(s.width) / vw, float64(s.height*2) / vh
}

// plot blends the pen into the pixel at (px, py).
func (s *Screen) plot(px, py int) {
	if px < 0 || px >= s.width || py < 0 || py >= s.height*2 {
		return
	}
	i := py*s.width + px
	s.pixels[i] = s.pen.Over(s.pixels[i])
}

// span converts a logical interval to a pixel interval, never empty for size > 0.
func span(pos, size, scale float64) (int, int) {
	p0 := int(math.Round(pos * scale))
	p1 := int(math.Round((pos + size) * scale))
	if p1 <= p0 && size > 0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// FillRect fills an axis-aligned rectangle.
func (s *Screen) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	sx, sy := s.scale()
	x0, x1 := span(x, w, sx)
	y0, y1 := span(y, h, sy)
	x0, x1 = Clamp(x0, 0, s.width), Clamp(x1, 0, s.width)
	y0, y1 = Clamp(y0, 0, s.height*2), Clamp(y1, 0, s.height*2)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.plot(px, py)
		}
	}
}

// FillCircle fills a circle; tiny circles still cover their center pixel.
func (s *Screen) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	sx, sy := s.scale()
	x0 := int(math.Floor((cx - r) * sx))
	x1 := int(math.Ceil((cx + r) * sx))
	y0 := int(math.Floor((cy - r) * sy))
	y1 := int(math.Ceil((cy + r) * sy))
	hit := false
	for py := max(y0, 0); py < min(y1, s.height*2); py++ {
		ly := (float64(py)+0.5)/sy - cy
		for px := max(x0, 0); px < min(x1, s.width); px++ {
			lx := (float64(px)+0.5)/sx - cx
			if lx*lx+ly*ly <= r*r {
				s.plot(px, py)
				hit = true
			}
		}
	}
	if !hit {
		s.plot(int(math.Floor(cx*sx)), int(math.Floor(cy*sy)))
	}
}

// FillPolygon fills a simple polygon using the even-odd rule on pixel centers.
func (s *Screen) FillPolygon(xs, ys []float64) {
	n := min(len(xs), len(ys))
	if n < 3 {
		return
	}
	sx, sy := s.scale()
	minX, maxX, minY, maxY := xs[0], xs[0], ys[0], ys[0]
	for i := 1; i < n; i++ {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	hit := false
	for py := max(int(math.Floor(minY*sy)), 0); py < min(int(math.Ceil(maxY*sy)), s.height*2); py++ {
		ly := (float64(py) + 0.5) / sy
		for px := max(int(math.Floor(minX*sx)), 0); px < min(int(math.Ceil(maxX*sx)), s.width); px++ {
			lx := (float64(px) + 0.5) / sx
			if pointInPolygon(lx, ly, xs[:n], ys[:n]) {
				s.plot(px, py)
				hit = true
			}
		}
	}
	if !hit {
		s.plot(int(math.Floor((minX+maxX)/2*sx)), int(math.Floor((minY+maxY)/2*sy)))
	}
}

func pointInPolygon(x, y float64, xs, ys []float64) bool {
	inside := false
	j := len(xs) - 1
	for i := range xs {
		if (ys[i] > y) != (ys[j] > y) &&
			x < (xs[j]-xs[i])*(y-ys[i])/(ys[j]-ys[i])+xs[i] {
			inside = !inside
		}
		j = i
	}
	return inside
}

// DrawText writes text starting at the cell containing logical point (x, y).
// Characters beyond the screen edge are clipped.
func (s *Screen) DrawText(x, y float64, text string) {
	sx, sy := s.scale()
	col := int(math.Floor(x * sx))
	row := int(math.Floor(y * sy / 2))
	s.PutText(col, row, text, s.pen)
}

// DrawTextCentered draws text horizontally centered on the given logical y.
func (s *Screen) DrawTextCentered(y float64, text string) {
	_, sy := s.scale()
	row := int(math.Floor(y * sy / 2))
	col := (s.width - len([]rune(text))) / 2
	s.PutText(col, row, text, s.pen)
}

// PutText writes text at cell coordinates with the given color.
func (s *Screen) PutText(col, row int, text string, fg Color) {
	if row < 0 || row >= s.height {
		return
	}
	i := 0
	for _, r := range text {
		x := col + i
		i++
		if x < 0 || x >= s.width {
			continue
		}
		s.text[row*s.width+x] = r
		s.textFG[row*s.width+x] = fg
	}
}

// Pixel returns the pixel color at pixel coordinates.
// Out-of-bounds coordinates return the background.
func (s *Screen) Pixel(px, py int) Color {
	if px < 0 || px >= s.width || py < 0 || py >= s.height*2 {
		return s.background
	}
	return s.pixels[py*s.width+px]
}

// GetCell returns the composed cell at (x, y).
// Text cells keep the averaged pixel color as background.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' ', FG: ColorWhite, BG: s.background}
	}
	top := s.pixels[(y*2)*s.width+x]
	bottom := s.pixels[(y*2+1)*s.width+x]
	if r := s.text[y*s.width+x]; r != 0 {
		return Cell{Rune: r, FG: s.textFG[y*s.width+x], BG: top.Mix(bottom, 0.5)}
	}
	return Cell{Rune: HalfBlock, FG: top, BG: bottom}
}

// Row returns the text layer of row y, with spaces where no text was drawn.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for x := 0; x < s.width; x++ {
		if r := s.text[y*s.width+x]; r != 0 {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

// String returns the text layer of the whole screen, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
