package obj

import (
	"image/color"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
)

const tick = 1.0 / 64

// fakeClips serves every clip with four frames of 0.125 s.
type fakeClips struct{}

func (fakeClips) Clip(name string) (component.Clip, bool) {
	if name == "" {
		return component.Clip{}, false
	}
	return component.Clip{Name: name, FrameCount: 4, FrameW: 32, FrameH: 32, FrameDuration: 0.125}, true
}

type drawCall struct {
	op    string
	name  string
	dst   common.Rect
	alpha float64
	color color.Color
}

// recordingCanvas has no assets; every draw falls back.
type recordingCanvas struct {
	ready bool
	calls []drawCall
}

func (c *recordingCanvas) Ready() bool { return c.ready }

func (c *recordingCanvas) DrawClip(clip string, frame int, dst common.Rect, flipX bool, alpha float64) bool {
	c.calls = append(c.calls, drawCall{op: "clip", name: clip, dst: dst, alpha: alpha})
	return false
}

func (c *recordingCanvas) DrawImage(name string, dst common.Rect) bool {
	c.calls = append(c.calls, drawCall{op: "image", name: name, dst: dst})
	return false
}

func (c *recordingCanvas) DrawTile(sheet string, src, dst common.Rect) bool {
	return false
}

func (c *recordingCanvas) FillRect(dst common.Rect, col color.Color) {
	c.calls = append(c.calls, drawCall{op: "fill", dst: dst, color: col})
}

func (c *recordingCanvas) StrokeRect(dst common.Rect, col color.Color) {
	c.calls = append(c.calls, drawCall{op: "stroke", dst: dst, color: col})
}

func (c *recordingCanvas) FillGradient(dst common.Rect, top, bottom color.Color) {
	c.calls = append(c.calls, drawCall{op: "gradient", dst: dst, color: top})
}

func (c *recordingCanvas) Color(key string, def color.Color) color.Color { return def }

func (c *recordingCanvas) count(op string) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op {
			n++
		}
	}
	return n
}

// flatDef is an 800x600 level with a ground strip at y=500 and the spawn
// resting on it.
func flatDef(id int) levels.Definition {
	return levels.Definition{
		ID:     id,
		Name:   "Flat",
		Width:  800,
		Height: 600,
		Spawn:  levels.Point{X: 100, Y: 468},
		Goal:   levels.Box{X: 700, Y: 400, Width: 50, Height: 100},
		Platforms: []levels.Tile{
			{Box: levels.Box{X: 0, Y: 500, Width: 800, Height: 32}, Type: "ground"},
		},
	}
}

func mustLevel(t interface{ Fatalf(string, ...any) }, def levels.Definition) *Level {
	lvl, err := NewLevel(def, WithClips(fakeClips{}))
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	return lvl
}

func newTestPlayer(x, y float64) *Player {
	return NewPlayer(x, y, DefaultPlayerTuning(), fakeClips{})
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
