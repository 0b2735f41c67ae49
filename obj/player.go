package obj

import (
	"image/color"
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

// restEpsilon is how close a player's feet must be to a platform top to
// count as standing on it.
const restEpsilon = 1e-6

var (
	playerColor             = color.NRGBA{R: 0x00, G: 0xaa, B: 0x00, A: 0xff}
	playerInvulnerableColor = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x80}
)

// PlayerTuning holds the player's movement and combat constants. Speeds are
// px/s, accelerations px/s², times seconds.
type PlayerTuning struct {
	Width, Height    float64
	MoveSpeed        float64
	JumpPower        float64
	Gravity          float64
	TerminalVelocity float64
	MaxHealth        int
	InvulnerableTime float64
	HitTime          float64
	HitControl       float64
	AttackDuration   float64
	AttackWidth      float64
	AttackHeight     float64
	KnockbackX       float64
	KnockbackY       float64
	FallMargin       float64
}

func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		Width:            32,
		Height:           32,
		MoveSpeed:        200,
		JumpPower:        400,
		Gravity:          1200,
		TerminalVelocity: 600,
		MaxHealth:        3,
		InvulnerableTime: 1.5,
		HitTime:          0.3,
		HitControl:       0.3,
		AttackDuration:   0.4,
		AttackWidth:      40,
		AttackHeight:     32,
		KnockbackX:       80,
		KnockbackY:       150,
		FallMargin:       100,
	}
}

// TuningFromSpec overlays a prefab spec on the defaults. Zero fields keep
// the default value.
func TuningFromSpec(s *prefabs.PlayerSpec) PlayerTuning {
	t := DefaultPlayerTuning()
	if s == nil {
		return t
	}
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&t.Width, s.Width)
	set(&t.Height, s.Height)
	set(&t.MoveSpeed, s.MoveSpeed)
	set(&t.JumpPower, s.JumpPower)
	set(&t.Gravity, s.Gravity)
	set(&t.TerminalVelocity, s.TerminalVelocity)
	set(&t.InvulnerableTime, s.InvulnerableTime)
	set(&t.HitTime, s.HitTime)
	set(&t.HitControl, s.HitControl)
	set(&t.AttackDuration, s.AttackDuration)
	set(&t.AttackWidth, s.AttackBox.Width)
	set(&t.AttackHeight, s.AttackBox.Height)
	set(&t.KnockbackX, s.Knockback.X)
	set(&t.KnockbackY, s.Knockback.Y)
	set(&t.FallMargin, s.FallMargin)
	if s.MaxHealth > 0 {
		t.MaxHealth = s.MaxHealth
	}
	return t
}

// Player is the controllable hero. It is never removed; death is the
// terminal Dead state until Reset or Respawn.
type Player struct {
	common.Rect
	VX, VY float64

	SpawnX, SpawnY float64

	tuning      PlayerTuning
	state       playerState
	grounded    bool
	facingRight bool
	health      *component.Health
	anim        component.Animation
	clips       component.ClipSource

	attackTimer float64
	hitTimer    float64

	events eventQueue
}

func NewPlayer(x, y float64, tuning PlayerTuning, clips component.ClipSource) *Player {
	p := &Player{
		tuning: tuning,
		health: component.NewHealth(tuning.MaxHealth),
		clips:  clips,
	}
	p.Reset(x, y)
	return p
}

// setState helper switches states and calls Exit/Enter. Switching to the
// current state is a no-op.
func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	if p.state != nil {
		p.state.Exit(p)
	}
	p.state = s
	p.anim.Play(s.Clip())
	s.Enter(p)
}

// Update advances the player by dt against the level's platforms:
// timers, input, gravity, integration, collision, animation, then the
// out-of-world check.
func (p *Player) Update(dt float64, in Input, lvl *Level) {
	if p.state == stateDead {
		return
	}

	p.health.Tick(dt)
	p.state.Tick(p, dt)
	p.state.HandleInput(p, in)
	p.applyPhysics(dt)

	p.X += p.VX * dt
	p.Y += p.VY * dt

	if lvl != nil {
		p.resolveCollisions(lvl.Platforms())
	}
	p.anim.Update(dt, p.clips)

	if lvl != nil && p.Y > lvl.Height()+p.tuning.FallMargin {
		p.Kill()
	}
}

// move applies horizontal input scaled by control. When changeState is
// false the current state is kept and releasing input keeps velocity.
func (p *Player) move(in Input, control float64, changeState bool) {
	switch {
	case in.Left:
		p.VX = -p.tuning.MoveSpeed * control
		p.facingRight = false
		if p.grounded && changeState {
			p.setState(stateRunning)
		}
	case in.Right:
		p.VX = p.tuning.MoveSpeed * control
		p.facingRight = true
		if p.grounded && changeState {
			p.setState(stateRunning)
		}
	default:
		if changeState {
			p.VX = 0
			if p.grounded {
				p.setState(stateIdle)
			}
		}
	}
}

func (p *Player) tryJump(in Input) {
	if !in.Jump || !p.grounded {
		return
	}
	p.VY = -p.tuning.JumpPower
	p.grounded = false
	p.setState(stateJumping)
	p.events.emit(Event{Kind: EventPlayerJump})
}

func (p *Player) tryAttack(in Input) {
	if !in.Attack || !p.grounded {
		return
	}
	p.setState(stateAttacking)
}

func (p *Player) applyPhysics(dt float64) {
	if !p.grounded {
		p.VY += p.tuning.Gravity * dt
		p.state.OnPhysics(p)
	}
	if p.VY > p.tuning.TerminalVelocity {
		p.VY = p.tuning.TerminalVelocity
	}
}

// resolveCollisions pushes the player out of every platform it overlaps.
// When the vertical overlap is larger the push is horizontal, otherwise
// vertical.
func (p *Player) resolveCollisions(platforms []*Platform) {
	p.grounded = false
	for _, pl := range platforms {
		b := pl.Bounds()
		if !p.Intersects(b) {
			continue
		}
		ox, oy := p.Overlap(b)
		if oy > ox {
			if p.X < b.X {
				p.X = b.X - p.Width
			} else {
				p.X = b.Right()
			}
			p.VX = 0
			continue
		}
		if p.Y < b.Y {
			p.Y = b.Y - p.Height
			p.VY = 0
			p.land()
		} else {
			p.Y = b.Bottom()
			p.VY = 0
		}
	}
	if !p.grounded && p.VY >= 0 && p.restingOn(platforms) {
		p.grounded = true
	}
}

func (p *Player) land() {
	p.grounded = true
	if p.state == stateFalling || p.state == stateJumping {
		p.setState(stateIdle)
		p.events.emit(Event{Kind: EventPlayerLand})
	}
}

// restingOn reports whether the player's feet touch the top of a platform
// it horizontally overlaps. Edge contact is not an intersection, so a
// standing player would otherwise lose support every other tick.
func (p *Player) restingOn(platforms []*Platform) bool {
	for _, pl := range platforms {
		b := pl.Bounds()
		if math.Abs(p.Bottom()-b.Y) < restEpsilon && p.X < b.Right() && p.Right() > b.X {
			return true
		}
	}
	return false
}

// TakeDamage applies n damage unless dead or invulnerable. Non-lethal
// damage starts the hit stun with knockback away from the facing
// direction. Returns true if health changed.
func (p *Player) TakeDamage(n int) bool {
	if p.state == stateDead || p.health.IsInvulnerable() {
		return false
	}
	if !p.health.ApplyDamage(n) {
		return false
	}
	if p.health.Dead {
		p.setState(stateDead)
		return true
	}
	p.setState(stateHit)
	// setState skips Enter when already stunned.
	p.hitTimer = p.tuning.HitTime
	p.health.StartInvulnerability(p.tuning.InvulnerableTime)
	p.VY = -p.tuning.KnockbackY
	if p.facingRight {
		p.VX = -p.tuning.KnockbackX
	} else {
		p.VX = p.tuning.KnockbackX
	}
	p.events.emit(Event{Kind: EventPlayerHurt, Value: p.health.Current})
	return true
}

// Kill drops health to zero regardless of invulnerability.
func (p *Player) Kill() {
	if p.health.Kill() {
		p.setState(stateDead)
	}
}

func (p *Player) Heal(n int) {
	p.health.Heal(n)
}

// Reset places the player at (x, y), which also becomes the respawn point,
// with full health, no velocity, facing right and idle.
func (p *Player) Reset(x, y float64) {
	p.Rect = common.NewRect(x, y, p.tuning.Width, p.tuning.Height)
	p.SpawnX, p.SpawnY = x, y
	p.VX, p.VY = 0, 0
	p.health.Reset()
	p.grounded = false
	p.facingRight = true
	p.attackTimer = 0
	p.hitTimer = 0
	p.state = stateIdle
	p.anim = component.NewAnimation(stateIdle.Clip())
}

// Respawn resets the player at the last spawn point.
func (p *Player) Respawn() {
	p.Reset(p.SpawnX, p.SpawnY)
}

// SetTuning swaps the tuning between ticks. Current health is clamped to
// the new maximum.
func (p *Player) SetTuning(t PlayerTuning) {
	p.tuning = t
	p.Width, p.Height = t.Width, t.Height
	p.health.Max = t.MaxHealth
	if p.health.Current > p.health.Max {
		p.health.Current = p.health.Max
	}
}

// AttackBounds is the hit box in front of the player.
func (p *Player) AttackBounds() common.Rect {
	x := p.X - p.tuning.AttackWidth
	if p.facingRight {
		x = p.Right()
	}
	return common.NewRect(x, p.Y, p.tuning.AttackWidth, p.tuning.AttackHeight)
}

// DrainEvents returns and clears the events raised since the last drain.
func (p *Player) DrainEvents() []Event { return p.events.drain() }

func (p *Player) State() PlayerState             { return p.state.ID() }
func (p *Player) IsDead() bool                   { return p.state == stateDead }
func (p *Player) IsAttacking() bool              { return p.state == stateAttacking }
func (p *Player) IsInvulnerable() bool           { return p.health.IsInvulnerable() }
func (p *Player) IsGrounded() bool               { return p.grounded }
func (p *Player) FacingRight() bool              { return p.facingRight }
func (p *Player) Health() int                    { return p.health.Current }
func (p *Player) MaxHealth() int                 { return p.health.Max }
func (p *Player) Bounds() common.Rect            { return p.Rect }
func (p *Player) Tuning() PlayerTuning           { return p.tuning }
func (p *Player) Animation() component.Animation { return p.anim }

func (p *Player) Render(c Canvas) {
	alpha := 1.0
	if p.health.IsInvulnerable() && math.Sin(p.health.Invulnerable*10) <= 0 {
		alpha = 0.3
	}
	if c.DrawClip(p.anim.Clip, p.anim.Frame, p.Rect, !p.facingRight, alpha) {
		return
	}
	if !c.Ready() {
		return
	}
	if p.health.IsInvulnerable() {
		c.FillRect(p.Rect, c.Color("player_invulnerable", playerInvulnerableColor))
		return
	}
	c.FillRect(p.Rect, c.Color("player", playerColor))
}
