package obj

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
	"golang.org/x/image/colornames"
)

type enemySpawn struct {
	species Species
	x, y    float64
}

type itemSpawn struct {
	kind CollectibleKind
	x, y float64
}

// LevelOption configures how a Level instantiates its entities.
type LevelOption func(*Level)

// WithClips sets the clip source used by enemies and collectibles.
func WithClips(clips component.ClipSource) LevelOption {
	return func(l *Level) { l.clips = clips }
}

// WithRand sets the random source for species with randomised behaviour.
func WithRand(rng *rand.Rand) LevelOption {
	return func(l *Level) { l.rng = rng }
}

// Level is one live instance of a level definition. It owns its
// platforms, enemies and collectibles exclusively.
type Level struct {
	def   levels.Definition
	goal  common.Rect
	clips component.ClipSource
	rng   *rand.Rand

	enemySpawns []enemySpawn
	itemSpawns  []itemSpawn

	platforms    []*Platform
	enemies      []*Enemy
	collectibles []*Collectible
	completed    bool
}

// NewLevel instantiates def. Unknown enemy or collectible tags fail here,
// so a constructed level can always be reset.
func NewLevel(def levels.Definition, opts ...LevelOption) (*Level, error) {
	l := &Level{
		def:  def,
		goal: common.NewRect(def.Goal.X, def.Goal.Y, def.Goal.Width, def.Goal.Height),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewPCG(uint64(def.ID), 0x9e3779b97f4a7c15))
	}
	for i, e := range def.Enemies {
		s, err := ParseSpecies(e.Type)
		if err != nil {
			return nil, fmt.Errorf("level %d enemy %d: %w", def.ID, i, err)
		}
		l.enemySpawns = append(l.enemySpawns, enemySpawn{species: s, x: e.X, y: e.Y})
	}
	for i, c := range def.Collectibles {
		k, err := ParseCollectibleKind(c.Type)
		if err != nil {
			return nil, fmt.Errorf("level %d collectible %d: %w", def.ID, i, err)
		}
		l.itemSpawns = append(l.itemSpawns, itemSpawn{kind: k, x: c.X, y: c.Y})
	}
	l.populate()
	return l, nil
}

// populate rebuilds every live entity from the definition.
func (l *Level) populate() {
	l.platforms = make([]*Platform, 0, len(l.def.Platforms))
	for _, t := range l.def.Platforms {
		l.platforms = append(l.platforms, NewPlatform(t.X, t.Y, t.Width, t.Height, PlatformKind(t.Type)))
	}
	l.enemies = make([]*Enemy, 0, len(l.enemySpawns))
	for _, s := range l.enemySpawns {
		e, _ := NewEnemy(s.species, s.x, s.y, l.clips, l.rng)
		l.enemies = append(l.enemies, e)
	}
	l.collectibles = make([]*Collectible, 0, len(l.itemSpawns))
	for _, s := range l.itemSpawns {
		c, _ := NewCollectible(s.kind, s.x, s.y, l.clips)
		l.collectibles = append(l.collectibles, c)
	}
}

// Update drops enemies that died on an earlier tick, advances the rest,
// then advances every collectible.
func (l *Level) Update(dt float64) {
	alive := l.enemies[:0]
	for _, e := range l.enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(l.enemies); i++ {
		l.enemies[i] = nil
	}
	l.enemies = alive

	for _, e := range l.enemies {
		e.Update(dt, l)
	}
	for _, c := range l.collectibles {
		c.Update(dt)
	}
}

// CheckGoalReached marks the level completed if body touches the goal zone.
// Completion is sticky; the result reports whether the level is completed.
func (l *Level) CheckGoalReached(body common.Rect) bool {
	if l.goal.Intersects(body) {
		l.completed = true
	}
	return l.completed
}

// CollectItem collects the first uncollected item overlapping body. At most
// one item is collected per call.
func (l *Level) CollectItem(body common.Rect) *Collectible {
	for _, c := range l.collectibles {
		if !c.IsCollected() && c.Bounds().Intersects(body) {
			c.Collect()
			return c
		}
	}
	return nil
}

// EnemyContacts returns the live enemies overlapping body.
func (l *Level) EnemyContacts(body common.Rect) []*Enemy {
	return l.enemiesIn(body)
}

// AttackHits returns the live enemies overlapping an attack box.
func (l *Level) AttackHits(box common.Rect) []*Enemy {
	return l.enemiesIn(box)
}

func (l *Level) enemiesIn(r common.Rect) []*Enemy {
	var out []*Enemy
	for _, e := range l.enemies {
		if e.IsAlive() && e.Intersects(r) {
			out = append(out, e)
		}
	}
	return out
}

// Reset rebuilds all entities and clears completion.
func (l *Level) Reset() {
	l.completed = false
	l.populate()
}

func (l *Level) ID() int                      { return l.def.ID }
func (l *Level) Name() string                 { return l.def.Name }
func (l *Level) Background() string           { return l.def.Background }
func (l *Level) IsBoss() bool                 { return l.def.Boss }
func (l *Level) Width() float64               { return l.def.Width }
func (l *Level) Height() float64              { return l.def.Height }
func (l *Level) Goal() common.Rect            { return l.goal }
func (l *Level) IsCompleted() bool            { return l.completed }
func (l *Level) Platforms() []*Platform       { return l.platforms }
func (l *Level) Enemies() []*Enemy            { return l.enemies }
func (l *Level) Collectibles() []*Collectible { return l.collectibles }

func (l *Level) SpawnPoint() (float64, float64) {
	return l.def.Spawn.X, l.def.Spawn.Y
}

// AliveEnemies counts enemies that are still alive, including those not
// yet dropped from the live set.
func (l *Level) AliveEnemies() int {
	n := 0
	for _, e := range l.enemies {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// RenderBackground draws the background image, or a sky gradient.
func (l *Level) RenderBackground(c Canvas) {
	bounds := common.NewRect(0, 0, l.def.Width, l.def.Height)
	if c.DrawImage(l.def.Background, bounds) || !c.Ready() {
		return
	}
	c.FillGradient(bounds, c.Color("sky_top", colornames.Skyblue), c.Color("sky_bottom", colornames.Palegreen))
}

// Render draws platforms, collectibles and enemies. showGoal outlines the
// goal zone.
func (l *Level) Render(c Canvas, showGoal bool) {
	for _, p := range l.platforms {
		p.Render(c)
	}
	for _, col := range l.collectibles {
		col.Render(c)
	}
	for _, e := range l.enemies {
		e.Render(c)
	}
	if showGoal {
		c.StrokeRect(l.goal, c.Color("goal", colornames.Gold))
	}
}
