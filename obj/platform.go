package obj

import (
	"image/color"
	"math"

	"github.com/milk9111/platformer/common"
	"golang.org/x/image/colornames"
)

// PlatformKind is cosmetic. It only selects the tile and fallback colour.
type PlatformKind string

const (
	PlatformGround PlatformKind = "ground"
	PlatformStone  PlatformKind = "stone"
	PlatformWood   PlatformKind = "wood"
)

const tilesetSheet = "tileset_32"

var platformStyles = map[PlatformKind]struct {
	tileX    float64
	fallback color.Color
}{
	PlatformGround: {0, color.NRGBA{R: 0x65, G: 0x43, B: 0x21, A: 0xff}},
	PlatformStone:  {32, colornames.Dimgray},
	PlatformWood:   {64, colornames.Saddlebrown},
}

// Platform is static level geometry. It never changes after level load.
type Platform struct {
	rect common.Rect
	Kind PlatformKind
}

func NewPlatform(x, y, w, h float64, kind PlatformKind) *Platform {
	return &Platform{rect: common.NewRect(x, y, w, h), Kind: kind}
}

func (p *Platform) Bounds() common.Rect { return p.rect }

func (p *Platform) Render(c Canvas) {
	style, ok := platformStyles[p.Kind]
	if !ok {
		style = platformStyles[PlatformGround]
	}
	if p.renderTiled(c, style.tileX) || !c.Ready() {
		return
	}
	c.FillRect(p.rect, c.Color(string(p.Kind), style.fallback))
}

func (p *Platform) renderTiled(c Canvas, tileX float64) bool {
	const ts = common.TileSize
	cols := int(math.Ceil(p.rect.Width / ts))
	rows := int(math.Ceil(p.rect.Height / ts))
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			w := math.Min(ts, p.rect.Width-float64(col)*ts)
			h := math.Min(ts, p.rect.Height-float64(row)*ts)
			src := common.NewRect(tileX, 0, w, h)
			dst := common.NewRect(p.rect.X+float64(col)*ts, p.rect.Y+float64(row)*ts, w, h)
			if !c.DrawTile(tilesetSheet, src, dst) {
				return false
			}
		}
	}
	return true
}
