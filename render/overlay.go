package render

import "github.com/milk9111/platformer/obj"

const (
	levelCompleteTime = 2.0
	bossWarningTime   = 3.0
)

const (
	bannerLevelComplete = "LEVEL COMPLETE!"
	bannerBoss          = "BOSS LEVEL!"
)

// Overlays tracks the timed banners raised by session events.
type Overlays struct {
	completeTimer float64
	bossTimer     float64
}

// Observe starts banners for the events of one tick. isBoss reports
// whether a started level is a boss arena.
func (o *Overlays) Observe(events []obj.Event, isBoss func(level int) bool) {
	for _, ev := range events {
		switch ev.Kind {
		case obj.EventLevelComplete:
			o.completeTimer = levelCompleteTime
		case obj.EventLevelStarted:
			if isBoss != nil && isBoss(ev.Level) {
				o.bossTimer = bossWarningTime
			}
		case obj.EventGameOver, obj.EventGameComplete:
			o.Clear()
		}
	}
}

func (o *Overlays) Update(dt float64) {
	o.completeTimer = max(0, o.completeTimer-dt)
	o.bossTimer = max(0, o.bossTimer-dt)
}

func (o *Overlays) Clear() {
	o.completeTimer = 0
	o.bossTimer = 0
}

// Banners returns the active banners, most recent kind first.
func (o *Overlays) Banners() []string {
	var out []string
	if o.completeTimer > 0 {
		out = append(out, bannerLevelComplete)
	}
	if o.bossTimer > 0 {
		out = append(out, bannerBoss)
	}
	return out
}
