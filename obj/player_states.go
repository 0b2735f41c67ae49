package obj

// PlayerState is the player's behavioural state.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerRunning
	PlayerJumping
	PlayerFalling
	PlayerAttacking
	PlayerHit
	PlayerDead
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerRunning:
		return "running"
	case PlayerJumping:
		return "jumping"
	case PlayerFalling:
		return "falling"
	case PlayerAttacking:
		return "attacking"
	case PlayerHit:
		return "hit"
	case PlayerDead:
		return "dead"
	}
	return "unknown"
}

// playerState is the interface each concrete player state implements.
type playerState interface {
	ID() PlayerState
	Clip() string
	Enter(p *Player)
	Exit(p *Player)
	// Tick runs the state's own timers before input is read.
	Tick(p *Player, dt float64)
	HandleInput(p *Player, in Input)
	// OnPhysics runs after gravity has been applied.
	OnPhysics(p *Player)
}

// baseState provides no-op hooks.
type baseState struct{}

func (baseState) Enter(p *Player)                 {}
func (baseState) Exit(p *Player)                  {}
func (baseState) Tick(p *Player, dt float64)      {}
func (baseState) HandleInput(p *Player, in Input) {}
func (baseState) OnPhysics(p *Player)             {}

// groundedControl is the full-control input handling shared by idle,
// running, jumping and falling.
type groundedControl struct{ baseState }

func (groundedControl) HandleInput(p *Player, in Input) {
	p.move(in, 1, true)
	p.tryJump(in)
	p.tryAttack(in)
}

type idleState struct{ groundedControl }

func (idleState) ID() PlayerState { return PlayerIdle }
func (idleState) Clip() string    { return "hero_idle" }

type runningState struct{ groundedControl }

func (runningState) ID() PlayerState { return PlayerRunning }
func (runningState) Clip() string    { return "hero_run" }

type jumpingState struct{ groundedControl }

func (jumpingState) ID() PlayerState { return PlayerJumping }
func (jumpingState) Clip() string    { return "hero_jump_up" }

// OnPhysics turns the jump into a fall once the apex is passed.
func (jumpingState) OnPhysics(p *Player) {
	if p.VY > 0 {
		p.setState(stateFalling)
	}
}

type fallingState struct{ groundedControl }

func (fallingState) ID() PlayerState { return PlayerFalling }
func (fallingState) Clip() string    { return "hero_jump_down" }

type attackingState struct{ baseState }

func (attackingState) ID() PlayerState { return PlayerAttacking }
func (attackingState) Clip() string    { return "hero_attack" }
func (attackingState) Enter(p *Player) {
	p.attackTimer = p.tuning.AttackDuration
	p.events.emit(Event{Kind: EventPlayerAttack})
}
func (attackingState) Exit(p *Player) { p.attackTimer = 0 }
func (attackingState) Tick(p *Player, dt float64) {
	p.attackTimer -= dt
	if p.attackTimer <= 0 {
		p.setState(stateIdle)
	}
}

// HandleInput ignores input for the whole swing; velocity carries over.
func (attackingState) HandleInput(p *Player, in Input) {}

type hitState struct{ baseState }

func (hitState) ID() PlayerState { return PlayerHit }
func (hitState) Clip() string    { return "hero_hit" }
func (hitState) Enter(p *Player) {
	p.hitTimer = p.tuning.HitTime
}
func (hitState) Exit(p *Player) { p.hitTimer = 0 }
func (hitState) Tick(p *Player, dt float64) {
	p.hitTimer -= dt
	if p.hitTimer <= 0 {
		p.setState(stateIdle)
	}
}

// HandleInput allows reduced steering and a recovery jump, but no attack.
// Releasing the keys keeps the knockback velocity.
func (hitState) HandleInput(p *Player, in Input) {
	p.move(in, p.tuning.HitControl, false)
	p.tryJump(in)
}

type deadState struct{ baseState }

func (deadState) ID() PlayerState { return PlayerDead }
func (deadState) Clip() string    { return "hero_death" }
func (deadState) Enter(p *Player) {
	p.VX = 0
}

var (
	stateIdle      playerState = &idleState{}
	stateRunning   playerState = &runningState{}
	stateJumping   playerState = &jumpingState{}
	stateFalling   playerState = &fallingState{}
	stateAttacking playerState = &attackingState{}
	stateHit       playerState = &hitState{}
	stateDead      playerState = &deadState{}
)
