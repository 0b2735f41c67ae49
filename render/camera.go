package render

import (
	"math"

	"github.com/milk9111/platformer/common"
)

// Camera follows a world point and keeps the view inside the world.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera for a logical screen of w x h pixels.
func NewCamera(w, h int) *Camera {
	return &Camera{
		PosX:    float64(w) / 2,
		PosY:    float64(h) / 2,
		screenW: float64(w),
		screenH: float64(h),
		smooth:  0.15,
	}
}

// SetWorldBounds sets the world size used for clamping.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Update moves the camera toward the target world point.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX, c.PosY = targetX, targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.settle()
}

// SnapTo places the camera immediately, e.g. after a level load.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.settle()
}

// settle rounds to whole pixels and clamps to the world.
func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
	c.PosX = clampAxis(c.PosX, c.screenW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, c.screenH/2, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		// world smaller than view: center on world
		return world / 2
	}
	return common.Clamp(pos, half, world-half)
}

// ViewTopLeft returns the world-space top-left of the view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - c.screenW/2, c.PosY - c.screenH/2
}
