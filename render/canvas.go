package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
)

const gradientStep = 4

// ScreenCanvas draws onto an ebiten image through the camera, resolving
// sprites from the asset library.
type ScreenCanvas struct {
	screen *ebiten.Image
	lib    *assets.Library
	camX   float64
	camY   float64
}

var _ obj.Canvas = (*ScreenCanvas)(nil)

func NewScreenCanvas(screen *ebiten.Image, lib *assets.Library, cam *Camera) *ScreenCanvas {
	c := &ScreenCanvas{screen: screen, lib: lib}
	if cam != nil {
		c.camX, c.camY = cam.ViewTopLeft()
	}
	return c
}

func (c *ScreenCanvas) Ready() bool {
	return c.lib != nil && c.lib.Ready()
}

func (c *ScreenCanvas) DrawClip(clip string, frame int, dst common.Rect, flipX bool, alpha float64) bool {
	if c.lib == nil {
		return false
	}
	img, ok := c.lib.Frame(clip, frame)
	if !ok {
		return false
	}
	c.drawScaled(img, dst, flipX, alpha)
	return true
}

func (c *ScreenCanvas) DrawImage(name string, dst common.Rect) bool {
	if c.lib == nil || name == "" {
		return false
	}
	img, ok := c.lib.Image(name)
	if !ok {
		return false
	}
	c.drawScaled(img, dst, false, 1)
	return true
}

func (c *ScreenCanvas) DrawTile(sheet string, src, dst common.Rect) bool {
	if c.lib == nil {
		return false
	}
	img, ok := c.lib.Image(sheet)
	if !ok {
		return false
	}
	r := image.Rect(int(src.X), int(src.Y), int(src.Right()), int(src.Bottom()))
	if !r.In(img.Bounds()) {
		return false
	}
	c.drawScaled(img.SubImage(r).(*ebiten.Image), dst, false, 1)
	return true
}

// drawScaled stretches img over dst, optionally mirrored.
func (c *ScreenCanvas) drawScaled(img *ebiten.Image, dst common.Rect, flipX bool, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	sx := dst.Width / float64(b.Dx())
	sy := dst.Height / float64(b.Dy())
	if flipX {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(dst.Width, 0)
	} else {
		op.GeoM.Scale(sx, sy)
	}
	op.GeoM.Translate(dst.X-c.camX, dst.Y-c.camY)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	c.screen.DrawImage(img, op)
}

func (c *ScreenCanvas) FillRect(dst common.Rect, clr color.Color) {
	vector.FillRect(c.screen, float32(dst.X-c.camX), float32(dst.Y-c.camY), float32(dst.Width), float32(dst.Height), clr, false)
}

func (c *ScreenCanvas) StrokeRect(dst common.Rect, clr color.Color) {
	vector.StrokeRect(c.screen, float32(dst.X-c.camX), float32(dst.Y-c.camY), float32(dst.Width), float32(dst.Height), 2, clr, false)
}

// FillGradient fills dst with horizontal bands blending top to bottom.
func (c *ScreenCanvas) FillGradient(dst common.Rect, top, bottom color.Color) {
	for y := 0.0; y < dst.Height; y += gradientStep {
		h := float64(gradientStep)
		if y+h > dst.Height {
			h = dst.Height - y
		}
		band := common.NewRect(dst.X, dst.Y+y, dst.Width, h)
		c.FillRect(band, blend(top, bottom, y/dst.Height))
	}
}

func (c *ScreenCanvas) Color(key string, def color.Color) color.Color {
	if c.lib == nil {
		return def
	}
	return c.lib.Color(key, def)
}

// blend linearly interpolates two colours in non-premultiplied space.
func blend(a, b color.Color, t float64) color.NRGBA {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(common.Clamp(common.Lerp(float64(x), float64(y), t)+0.5, 0, 255))
	}
	return color.NRGBA{R: mix(ca.R, cb.R), G: mix(ca.G, cb.G), B: mix(ca.B, cb.B), A: mix(ca.A, cb.A)}
}
