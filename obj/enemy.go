package obj

import (
	"math/rand/v2"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"golang.org/x/image/colornames"
)

type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyMoving
	EnemyAttacking
	EnemyDead
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyMoving:
		return "moving"
	case EnemyAttacking:
		return "attacking"
	case EnemyDead:
		return "dead"
	}
	return "unknown"
}

// Enemy is the shared base for every species: integration, animation,
// damage and rendering. Behaviour comes from the species table.
type Enemy struct {
	common.Rect
	VX, VY  float64
	Species Species

	state       EnemyState
	facingRight bool
	health      *component.Health
	anim        component.Animation
	clips       component.ClipSource
	rng         *rand.Rand

	ai          aiFunc
	aiTimer     float64
	period      float64
	attackTimer float64
}

// NewEnemy builds an enemy of species s at (x, y). rng drives species that
// randomise their behaviour and may be nil for the others.
func NewEnemy(s Species, x, y float64, clips component.ClipSource, rng *rand.Rand) (*Enemy, error) {
	info, ok := speciesTable[s]
	if !ok {
		return nil, ErrUnknownSpecies
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(int64(x)), uint64(int64(y))))
	}
	return &Enemy{
		Rect:        common.NewRect(x, y, info.width, info.height),
		VX:          info.speed,
		Species:     s,
		state:       EnemyMoving,
		facingRight: true,
		health:      component.NewHealth(info.health),
		anim:        component.NewAnimation(info.clip),
		clips:       clips,
		rng:         rng,
		ai:          info.ai,
		period:      info.period,
	}, nil
}

// Update runs the species AI, integrates velocity and advances the
// animation and AI timer. Dead enemies do nothing.
func (e *Enemy) Update(dt float64, lvl *Level) {
	if !e.IsAlive() {
		return
	}
	e.ai(e, dt, lvl)
	e.X += e.VX * dt
	e.Y += e.VY * dt
	e.anim.Update(dt, e.clips)
	e.aiTimer += dt
}

// reverseIfDue flips direction and facing once the AI timer reaches the
// reversal period. Reports whether it flipped.
func (e *Enemy) reverseIfDue() bool {
	if e.aiTimer < e.period {
		return false
	}
	e.VX = -e.VX
	e.facingRight = e.VX > 0
	e.aiTimer = 0
	return true
}

// TakeDamage applies n damage. It returns true only on the hit that kills.
func (e *Enemy) TakeDamage(n int) bool {
	if !e.IsAlive() {
		return false
	}
	if !e.health.ApplyDamage(n) {
		return false
	}
	if e.health.Dead {
		e.state = EnemyDead
		return true
	}
	return false
}

func (e *Enemy) IsAlive() bool                  { return e.state != EnemyDead }
func (e *Enemy) State() EnemyState              { return e.state }
func (e *Enemy) Health() int                    { return e.health.Current }
func (e *Enemy) FacingRight() bool              { return e.facingRight }
func (e *Enemy) Bounds() common.Rect            { return e.Rect }
func (e *Enemy) Period() float64                { return e.period }
func (e *Enemy) Animation() component.Animation { return e.anim }

func (e *Enemy) Render(c Canvas) {
	if !e.IsAlive() {
		return
	}
	if c.DrawClip(e.anim.Clip, e.anim.Frame, e.Rect, !e.facingRight, 1) {
		return
	}
	if !c.Ready() {
		return
	}
	c.FillRect(e.Rect, c.Color("enemy", colornames.Red))
}
