package assets

import (
	"image"
	"image/color"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

type clipEntry struct {
	clip   component.Clip
	frames []*ebiten.Image
}

// Library holds the decoded images and clips named by animations.yaml.
// Missing files are tolerated: the name is simply absent and callers draw
// a fallback. It is safe for the render pass to read while a load runs.
type Library struct {
	fsys   fs.FS
	logger *log.Logger

	mu      sync.RWMutex
	images  map[string]*ebiten.Image
	clips   map[string]clipEntry
	palette map[string]color.Color
	ready   atomic.Bool

	// newImage is swapped out in tests.
	newImage func(image.Image) *ebiten.Image
}

func NewLibrary(logger *log.Logger) *Library {
	return newLibrary(FS(), logger)
}

func newLibrary(fsys fs.FS, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		fsys:     fsys,
		logger:   logger,
		images:   map[string]*ebiten.Image{},
		clips:    map[string]clipEntry{},
		palette:  map[string]color.Color{},
		newImage: ebiten.NewImageFromImage,
	}
}

// Load decodes every image in spec and cuts its clips. The library is
// marked ready once the first load finishes, whatever was missing.
func (l *Library) Load(spec *prefabs.AnimationSetSpec) {
	images := make(map[string]*ebiten.Image, len(spec.Images))
	missing := 0
	for _, is := range spec.Images {
		img, err := decodeImage(l.fsys, is.Path)
		if err != nil {
			missing++
			if IsNotExist(err) {
				l.logger.Debug("image missing", "name", is.Name, "path", is.Path)
			} else {
				l.logger.Warn("image unreadable", "name", is.Name, "path", is.Path, "error", err)
			}
			continue
		}
		images[is.Name] = l.newImage(img)
	}

	clips := make(map[string]clipEntry, len(spec.Clips))
	for _, def := range spec.Clips {
		sheet, ok := images[def.Sheet]
		if !ok {
			continue
		}
		entry, ok := cutClip(def, sheet)
		if !ok {
			l.logger.Warn("clip does not fit its sheet", "clip", def.Name, "sheet", def.Sheet)
			continue
		}
		clips[def.Name] = entry
	}

	palette := make(map[string]color.Color, len(spec.Fallbacks))
	for k, c := range spec.Fallbacks {
		if c.Color != nil {
			palette[k] = c.Color
		}
	}

	l.mu.Lock()
	l.images, l.clips, l.palette = images, clips, palette
	l.mu.Unlock()
	l.ready.Store(true)

	l.logger.Info("assets loaded", "images", len(images), "clips", len(clips), "missing", missing)
}

// LoadAsync runs Load on its own goroutine. done is closed when it finishes.
func (l *Library) LoadAsync(spec *prefabs.AnimationSetSpec) (done <-chan struct{}) {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		l.Load(spec)
	}()
	return ch
}

// cutClip slices a horizontal strip into frames.
func cutClip(def prefabs.AnimationDefSpec, sheet *ebiten.Image) (clipEntry, bool) {
	b := sheet.Bounds()
	if def.FrameW*def.FrameCount > b.Dx() || def.FrameH > b.Dy() {
		return clipEntry{}, false
	}
	frames := make([]*ebiten.Image, def.FrameCount)
	for i := range frames {
		x := b.Min.X + i*def.FrameW
		frames[i] = sheet.SubImage(image.Rect(x, b.Min.Y, x+def.FrameW, b.Min.Y+def.FrameH)).(*ebiten.Image)
	}
	return clipEntry{clip: clipFromDef(def), frames: frames}, true
}

func clipFromDef(def prefabs.AnimationDefSpec) component.Clip {
	return component.Clip{
		Name:          def.Name,
		FrameCount:    def.FrameCount,
		FrameW:        def.FrameW,
		FrameH:        def.FrameH,
		FrameDuration: float64(def.DurationMS) / 1000,
	}
}

func (l *Library) Ready() bool { return l.ready.Load() }

// Clip implements component.ClipSource.
func (l *Library) Clip(name string) (component.Clip, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.clips[name]
	return e.clip, ok
}

// Frame returns frame i of a clip, wrapping out-of-range indices to 0.
func (l *Library) Frame(name string, i int) (*ebiten.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.clips[name]
	if !ok || len(e.frames) == 0 {
		return nil, false
	}
	if i < 0 || i >= len(e.frames) {
		i = 0
	}
	return e.frames[i], true
}

func (l *Library) Image(name string) (*ebiten.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[name]
	return img, ok
}

// Color returns the configured fallback colour for key, or def.
func (l *Library) Color(key string, def color.Color) color.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if c, ok := l.palette[key]; ok {
		return c
	}
	return def
}
