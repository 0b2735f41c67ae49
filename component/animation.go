package component

// Clip describes a named animation as far as the simulation needs it.
// Frame images live with the asset provider.
type Clip struct {
	Name          string
	FrameCount    int
	FrameW        int
	FrameH        int
	FrameDuration float64 // seconds per frame
}

// ClipSource resolves clip names. ok is false while the clip is not loaded
// or does not exist.
type ClipSource interface {
	Clip(name string) (Clip, bool)
}

// Animation is an entity's cursor into a clip. It is a plain value owned by
// one entity and replaced wholesale on state changes.
type Animation struct {
	Clip    string
	Elapsed float64
	Frame   int
}

// NewAnimation returns a cursor at the first frame of clip.
func NewAnimation(clip string) Animation {
	return Animation{Clip: clip}
}

// Play switches to clip from its first frame. Playing the clip that is
// already active keeps the current position.
func (a *Animation) Play(clip string) {
	if a == nil || a.Clip == clip {
		return
	}
	*a = NewAnimation(clip)
}

// Update advances at most one frame per call once the clip's per-frame
// duration has elapsed. Unknown clips leave the cursor untouched.
func (a *Animation) Update(dt float64, src ClipSource) {
	if a == nil || src == nil || a.Clip == "" {
		return
	}
	clip, ok := src.Clip(a.Clip)
	if !ok || clip.FrameCount <= 0 {
		return
	}
	a.Elapsed += dt
	if a.Elapsed >= clip.FrameDuration {
		a.Elapsed = 0
		a.Frame = (a.Frame + 1) % clip.FrameCount
	}
}

// FrameIndex returns the frame to draw for a clip with count frames.
func (a Animation) FrameIndex(count int) int {
	if count <= 0 || a.Frame < 0 || a.Frame >= count {
		return 0
	}
	return a.Frame
}
