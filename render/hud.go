package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	heartSize    = 24
	heartSpacing = 28
	hudMargin    = 16
	lineHeight   = 18
)

// HUD draws the status line, banners and the full-screen state messages.
type HUD struct {
	lib      *assets.Library
	face     text.Face
	overlays Overlays
	best     int
}

func NewHUD(lib *assets.Library) *HUD {
	return &HUD{
		lib:  lib,
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

// Observe feeds one tick's events to the banners.
func (h *HUD) Observe(events []obj.Event, s *obj.Session) {
	h.overlays.Observe(events, func(level int) bool {
		def, ok := s.Levels().Catalog().Get(level)
		return ok && def.Boss
	})
	for _, ev := range events {
		if ev.Kind == obj.EventScore && s.Score() > h.best {
			h.best = s.Score()
		}
	}
}

func (h *HUD) Update(dt float64) { h.overlays.Update(dt) }

// SetBest seeds the best score shown next to the current one.
func (h *HUD) SetBest(score int) { h.best = score }

func (h *HUD) Best() int { return h.best }

// Draw renders the HUD for the session's current state. Menus and their
// buttons are drawn by the frame driver on top of it.
func (h *HUD) Draw(screen *ebiten.Image, s *obj.Session) {
	switch s.State() {
	case obj.StateMenu:
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.Black, false)
		return
	case obj.StateLoading:
		h.DrawLoading(screen)
		return
	}

	h.drawStatus(screen, s)
	y := float64(common.BaseHeight)/2 - 40
	for _, b := range h.overlays.Banners() {
		h.drawCentered(screen, b, y, colornames.Gold)
		y += lineHeight * 2
	}

	switch s.State() {
	case obj.StateGameOver, obj.StateVictory:
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: 0xc0}, false)
	}
}

// DrawLoading covers the screen while assets are still being decoded.
func (h *HUD) DrawLoading(screen *ebiten.Image) {
	h.drawScreen(screen, color.Black, "Loading...")
}

func (h *HUD) drawStatus(screen *ebiten.Image, s *obj.Session) {
	p := s.Player()
	for i := 0; i < p.MaxHealth(); i++ {
		h.drawHeart(screen, float64(hudMargin+i*heartSpacing), hudMargin, i < p.Health())
	}

	x := float64(common.BaseWidth - 220)
	h.drawText(screen, fmt.Sprintf("Score: %d", s.Score()), x, hudMargin, color.White)
	h.drawText(screen, fmt.Sprintf("Best:  %d", max(h.best, s.Score())), x, hudMargin+lineHeight, color.White)
	h.drawText(screen, fmt.Sprintf("Lives: %d", s.Lives()), x, hudMargin+2*lineHeight, color.White)

	if lvl := s.Level(); lvl != nil {
		h.drawText(screen, fmt.Sprintf("Level %d: %s", lvl.ID(), lvl.Name()), hudMargin, hudMargin+heartSize+8, color.White)
	}
}

func (h *HUD) drawHeart(screen *ebiten.Image, x, y float64, full bool) {
	name := "no_hearts_hud"
	fallback := color.Color(colornames.Dimgray)
	if full {
		name = "hearts_hud"
		fallback = colornames.Crimson
	}
	if h.lib != nil {
		if img, ok := h.lib.Image(name); ok {
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(heartSize/float64(b.Dx()), heartSize/float64(b.Dy()))
			op.GeoM.Translate(x, y)
			screen.DrawImage(img, op)
			return
		}
	}
	vector.FillRect(screen, float32(x), float32(y), heartSize, heartSize, fallback, false)
}

// drawScreen dims the whole screen and centers lines of text on it.
func (h *HUD) drawScreen(screen *ebiten.Image, bg color.Color, lines ...string) {
	vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, bg, false)
	y := float64(common.BaseHeight)/2 - float64(len(lines)*lineHeight)
	for _, l := range lines {
		h.drawCentered(screen, l, y, color.White)
		y += lineHeight * 2
	}
}

func (h *HUD) drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	w, _ := text.Measure(s, h.face, 0)
	h.drawText(screen, s, (common.BaseWidth-w)/2, y, clr)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}
