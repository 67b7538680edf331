package jaimp

import (
	"fmt"
	"math"

	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/player"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

var (
	skyTop    = core.RGB(5, 8, 25)
	skyBottom = core.RGB(60, 40, 80)

	playerBody = core.RGB(70, 70, 220)
	eyeWhite   = core.ColorWhite
	eyePupil   = core.ColorBlack

	hudColor   = core.ColorWhite
	titleColor = core.RGBA(255, 223, 0, 230)
)

const skyBands = 40

type platformPalette struct {
	body, top, bottom, side core.Color
}

var platformPalettes = map[world.PlatformKind]platformPalette{
	world.Solid:  {core.RGB(50, 60, 80), core.RGB(100, 115, 140), core.RGB(30, 40, 60), core.RGB(75, 85, 105)},
	world.Hazard: {core.RGB(200, 20, 20), core.RGB(255, 60, 60), core.RGB(160, 10, 10), core.RGB(230, 40, 40)},
	world.Goal:   {core.RGB(30, 170, 30), core.RGB(70, 230, 70), core.RGB(20, 130, 20), core.RGB(50, 200, 50)},
	world.Bounce: {core.RGB(40, 160, 200), core.RGB(90, 200, 240), core.RGB(30, 130, 170), core.RGB(60, 180, 220)},
}

// shieldColor returns the outline colour of a shield layer.
func shieldColor(layer int) core.Color {
	switch {
	case layer >= 3:
		return core.RGBA(150, 150, 255, 210)
	case layer == 2:
		return core.RGBA(180, 180, 255, 180)
	default:
		return core.RGBA(220, 220, 255, 150)
	}
}

// textCenterer is implemented by canvases that can centre a line of text.
type textCenterer interface {
	DrawTextCentered(y float64, text string)
}

func drawCentered(dst core.Canvas, y float64, text string) {
	if c, ok := dst.(textCenterer); ok {
		c.DrawTextCentered(y, text)
		return
	}
	w, _ := dst.Size()
	dst.DrawText(w/2-float64(len(text))*4, y, text)
}

// Render draws the current frame. It does not modify the session.
func (g *Game) Render(dst core.Canvas) {
	g.drawSky(dst)

	if g.phase == PhaseTitle {
		dst.SetColor(titleColor)
		drawCentered(dst, g.cfg.Viewport.Height*0.5, "JAIMP")
		dst.SetColor(hudColor)
		drawCentered(dst, g.cfg.Viewport.Height*0.6, "Press any key to start")
		return
	}

	g.drawChunks(dst)
	for i := range g.fireballs {
		drawFireball(dst, &g.fireballs[i], g.cameraX)
	}
	g.particles.Render(dst, g.cameraX)
	g.drawPlayer(dst)
	g.drawHUD(dst)

	if g.phase == PhaseGameOver {
		dst.SetColor(core.ColorCream)
		drawCentered(dst, g.cfg.Viewport.Height*0.4, fmt.Sprintf("Chunks Passed: %d", g.stream.Completed()))
		dst.SetColor(hudColor)
		drawCentered(dst, g.cfg.Viewport.Height*0.6, "Press any key to restart")
	}
	if g.paused {
		dst.SetColor(hudColor)
		drawCentered(dst, g.cfg.Viewport.Height*0.5, "PAUSED")
	}
}

func (g *Game) drawSky(dst core.Canvas) {
	w, h := g.cfg.Viewport.Width, g.cfg.Viewport.Height
	band := h / skyBands
	for i := 0; i < skyBands; i++ {
		dst.SetColor(skyTop.Mix(skyBottom, float64(i)/(skyBands-1)))
		dst.FillRect(0, float64(i)*band, w, band+1)
	}
}

func (g *Game) drawChunks(dst core.Canvas) {
	w := g.cfg.Viewport.Width
	for _, c := range g.stream.Chunks() {
		if c.StartX >= g.cameraX+w+0.5*c.Width || c.End() <= g.cameraX-0.5*c.Width {
			continue
		}
		for i := range c.Platforms {
			p := &c.Platforms[i]
			x := c.StartX + p.X - g.cameraX
			if x+p.W < 0 || x > w {
				continue
			}
			drawPlatform(dst, x, p.Y, p.W, p.H, p.Kind)
		}
		for _, pu := range c.ActivePowerUps() {
			g.drawPowerUp(dst, pu, c.StartX+pu.X-g.cameraX)
		}
	}
}

func drawPlatform(dst core.Canvas, x, y, w, h float64, kind world.PlatformKind) {
	pal := platformPalettes[kind]

	if kind == world.Hazard {
		strip := math.Min(h*0.3, 8)
		if h < 8 {
			strip = h
		}
		dst.SetColor(pal.top)
		dst.FillRect(x, y, w, strip)

		rest := h - strip
		dst.SetColor(pal.body)
		switch {
		case rest > 4:
			n := max(1, int(w/12))
			sw := w / float64(n)
			for i := 0; i < n; i++ {
				x0 := x + float64(i)*sw
				dst.FillPolygon(
					[]float64{x0, x0 + sw, x0 + sw/2},
					[]float64{y + strip, y + strip, y + h},
				)
			}
		case rest > 0:
			dst.FillRect(x, y+strip, w, rest)
		}
		return
	}

	detail := math.Min(h*0.2, 5)
	bottom := math.Min(h*0.15, 4)

	dst.SetColor(pal.body)
	dst.FillRect(x, y, w, h)
	if h > detail {
		dst.SetColor(pal.top)
		dst.FillRect(x, y, w, detail)
	}
	if h > detail+bottom+1 {
		dst.SetColor(pal.bottom)
		dst.FillRect(x, y+h-bottom, w, bottom)
	}
	if w > detail && h > detail {
		if sh := h - detail - bottom; sh > 0 {
			dst.SetColor(pal.side)
			dst.FillRect(x, y+detail, detail/2, sh)
		}
	}
}

// drawPowerUp draws the pulsing shield pickup. The pulse phase is offset
// per pickup so neighbours do not beat in unison.
func (g *Game) drawPowerUp(dst core.Canvas, pu *world.PowerUp, x float64) {
	phase := g.elapsed + pu.X*0.01
	cx := x + pu.Size/2
	cy := pu.Y + pu.Size/2

	outer := pu.Size * 1.25 * (1 + 0.1*math.Sin(phase*2.1))
	outerAlpha := 60 + 40*math.Sin(phase*2.1+math.Pi)
	dst.SetColor(core.RGBA(255, 200, 0, uint8(outerAlpha)))
	dst.FillCircle(cx, cy, outer/2)

	mid := pu.Size * 0.85 * (1 + 0.08*math.Sin(phase*2.8))
	midAlpha := 100 + 50*math.Sin(phase*2.8+math.Pi/2)
	dst.SetColor(core.RGBA(255, 223, 0, uint8(midAlpha)))
	dst.FillCircle(cx, cy, mid/2)

	dst.SetColor(core.RGB(255, 255, 180))
	dst.FillCircle(cx, cy, pu.Size*0.55/2)
}

func drawFireball(dst core.Canvas, f *world.Fireball, cameraX float64) {
	x := f.X - cameraX
	dst.SetColor(core.RGBA(200, 80, 0, 100))
	dst.FillCircle(x, f.Y, f.Radius)
	dst.SetColor(core.RGBA(255, 140, 0, 200))
	dst.FillCircle(x, f.Y, f.Radius*0.75)
	dst.SetColor(core.RGB(255, 220, 150))
	dst.FillCircle(x, f.Y, f.Radius*0.4)
}

func (g *Game) drawPlayer(dst core.Canvas) {
	const (
		eyeW        = 8.0
		eyeH        = 10.0
		eyeLevel    = 0.33
		frontOffset = 7.0
	)

	p := g.player
	v := p.Visual()
	vx := p.X + (p.Width()-v.W)/2 - g.cameraX
	vy := p.Y + p.Height() - v.H

	if s := p.Shield(); s > 0 {
		off := 2 + float64(min(s, 3)-1)*2.5
		dst.SetColor(shieldColor(s))
		dst.FillRect(vx-off, vy-off, v.W+2*off, v.H+2*off)
	}

	dst.SetColor(playerBody)
	dst.FillRect(vx, vy, v.W, v.H)

	eye := func(cx, cy, scale float64) {
		h := eyeH * scale
		dst.SetColor(eyeWhite)
		dst.FillRect(cx-eyeW/2, cy-h/2, eyeW, h)
		dst.SetColor(eyePupil)
		dst.FillRect(cx-eyeW/4, cy-h/4, eyeW/2, h/2)
	}

	cx := vx + v.W/2
	ey := vy + v.H*eyeLevel
	switch v.Facing {
	case player.FacingLeft:
		eye(cx-v.W*0.25, ey, v.EyeScale(0))
	case player.FacingRight:
		eye(cx+v.W*0.25, ey, v.EyeScale(1))
	default:
		eye(cx-frontOffset, ey, v.EyeScale(0))
		eye(cx+frontOffset, ey, v.EyeScale(1))
	}
}

func (g *Game) drawHUD(dst core.Canvas) {
	p := g.player
	dst.SetColor(hudColor)
	dst.DrawText(10, 25, fmt.Sprintf("Chunks: %d", g.stream.Completed()))
	dst.DrawText(10, 50, fmt.Sprintf("Jumps: %d/%d", p.Jumps(), g.cfg.Player.MaxJumps))
	if p.Shield() > 0 {
		dst.DrawText(10, 75, fmt.Sprintf("Shield: %d/%d", p.Shield(), g.cfg.Player.MaxShield))
	}
	if g.best > 0 {
		dst.DrawText(10, 100, fmt.Sprintf("Best: %d", g.best))
	}
	if p.Crouching() {
		dst.DrawText(g.cfg.Viewport.Width-100, 25, "CROUCHING")
	}
}
