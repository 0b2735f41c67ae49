package obj

import (
	"image/color"

	"github.com/milk9111/platformer/common"
)

// Canvas is the drawing surface of the render pass. Draw methods report
// false when the named asset is absent so callers can fall back.
type Canvas interface {
	// Ready reports whether asset loading has finished. Until then a
	// missing asset draws nothing instead of a fallback shape.
	Ready() bool
	DrawClip(clip string, frame int, dst common.Rect, flipX bool, alpha float64) bool
	DrawImage(name string, dst common.Rect) bool
	DrawTile(sheet string, src, dst common.Rect) bool
	FillRect(dst common.Rect, c color.Color)
	StrokeRect(dst common.Rect, c color.Color)
	FillGradient(dst common.Rect, top, bottom color.Color)
	// Color returns the palette override for key, or def.
	Color(key string, def color.Color) color.Color
}
