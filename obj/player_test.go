package obj

import (
	"testing"

	"github.com/milk9111/platformer/common"
)

func TestPlayerLandsOnPlatform(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 300)
	for i := 0; i < 120 && !p.IsGrounded(); i++ {
		p.Update(tick, Input{}, lvl)
	}
	if !p.IsGrounded() {
		t.Fatalf("player never landed, y=%v vy=%v", p.Y, p.VY)
	}
	if p.Y != 468 || p.VY != 0 {
		t.Fatalf("got y=%v vy=%v, want 468/0", p.Y, p.VY)
	}
	if p.Intersects(lvl.Platforms()[0].Bounds()) {
		t.Fatalf("player still overlaps the ground after landing")
	}
}

func TestPlayerStaysGroundedWhileResting(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)
	for i := 0; i < 10; i++ {
		p.Update(tick, Input{}, lvl)
		if !p.IsGrounded() {
			t.Fatalf("tick %d: player lost ground support", i)
		}
		if p.Y != 468 {
			t.Fatalf("tick %d: y=%v, want 468", i, p.Y)
		}
	}
	if p.State() != PlayerIdle {
		t.Fatalf("state %v, want idle", p.State())
	}
}

func TestPlayerJumpAndFall(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)
	p.Update(tick, Input{}, lvl)
	p.DrainEvents()

	p.Update(tick, Input{Jump: true}, lvl)
	if p.State() != PlayerJumping {
		t.Fatalf("state %v, want jumping", p.State())
	}
	if !hasEvent(p.DrainEvents(), EventPlayerJump) {
		t.Fatalf("jump event missing")
	}
	if p.Y >= 468 {
		t.Fatalf("player did not leave the ground, y=%v", p.Y)
	}

	sawFalling := false
	for i := 0; i < 200 && !p.IsGrounded(); i++ {
		p.Update(tick, Input{}, lvl)
		if p.State() == PlayerFalling {
			sawFalling = true
		}
	}
	if !sawFalling {
		t.Fatalf("jump never turned into a fall")
	}
	if p.State() != PlayerIdle || !hasEvent(p.DrainEvents(), EventPlayerLand) {
		t.Fatalf("landing should return to idle with a land event, state %v", p.State())
	}
}

func TestPlayerCannotJumpInAir(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 200)
	p.Update(tick, Input{Jump: true}, lvl)
	if p.VY < 0 {
		t.Fatalf("airborne jump applied, vy=%v", p.VY)
	}
}

func TestPlayerRunAndFacing(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)
	p.Update(tick, Input{}, lvl)

	p.Update(tick, Input{Left: true}, lvl)
	if p.State() != PlayerRunning || p.FacingRight() || p.VX != -200 {
		t.Fatalf("left: state=%v facingRight=%v vx=%v", p.State(), p.FacingRight(), p.VX)
	}
	p.Update(tick, Input{Right: true}, lvl)
	if !p.FacingRight() || p.VX != 200 {
		t.Fatalf("right: facingRight=%v vx=%v", p.FacingRight(), p.VX)
	}
	p.Update(tick, Input{}, lvl)
	if p.State() != PlayerIdle || p.VX != 0 {
		t.Fatalf("release: state=%v vx=%v", p.State(), p.VX)
	}
}

func TestPlayerAttack(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)
	p.Update(tick, Input{}, lvl)

	p.Update(tick, Input{Attack: true}, lvl)
	if !p.IsAttacking() {
		t.Fatalf("state %v, want attacking", p.State())
	}
	box := p.AttackBounds()
	want := common.NewRect(p.Right(), p.Y, 40, 32)
	if box != want {
		t.Fatalf("attack box %+v, want %+v", box, want)
	}
	// Input is ignored for the whole swing.
	p.Update(tick, Input{Jump: true}, lvl)
	if !p.IsAttacking() {
		t.Fatalf("jump interrupted the attack")
	}
	for i := 0; i < 30; i++ {
		p.Update(tick, Input{}, lvl)
	}
	if p.State() != PlayerIdle {
		t.Fatalf("state %v after attack, want idle", p.State())
	}
}

func TestPlayerAttackBoundsFacingLeft(t *testing.T) {
	p := newTestPlayer(100, 100)
	p.facingRight = false
	got := p.AttackBounds()
	want := common.NewRect(60, 100, 40, 32)
	if got != want {
		t.Fatalf("attack box %+v, want %+v", got, want)
	}
}

func TestPlayerDamageSequence(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)

	// Wait out the hit stun and the invulnerability window.
	waitOut := func() {
		for i := 0; i < 100; i++ {
			p.Update(tick, Input{}, lvl)
		}
	}

	if !p.TakeDamage(1) {
		t.Fatalf("first hit ignored")
	}
	if p.Health() != 2 || p.State() != PlayerHit || !p.IsInvulnerable() {
		t.Fatalf("after first hit: health=%d state=%v inv=%v", p.Health(), p.State(), p.IsInvulnerable())
	}
	if p.VX != -80 || p.VY != -150 {
		t.Fatalf("knockback vx=%v vy=%v, want -80/-150", p.VX, p.VY)
	}
	if p.TakeDamage(1) {
		t.Fatalf("damage applied while invulnerable")
	}

	waitOut()
	if p.IsInvulnerable() || p.State() == PlayerHit {
		t.Fatalf("still recovering: inv=%v state=%v", p.IsInvulnerable(), p.State())
	}
	p.TakeDamage(1)
	waitOut()
	if p.Health() != 1 {
		t.Fatalf("health %d, want 1", p.Health())
	}

	p.TakeDamage(1)
	if !p.IsDead() || p.Health() != 0 || p.State() != PlayerDead {
		t.Fatalf("lethal hit: dead=%v health=%d state=%v", p.IsDead(), p.Health(), p.State())
	}
	if p.IsInvulnerable() {
		t.Fatalf("lethal hit should not start invulnerability")
	}

	// Dead is terminal until reset.
	y := p.Y
	p.Update(tick, Input{Jump: true, Right: true}, lvl)
	p.Heal(3)
	if !p.IsDead() || p.Y != y || p.Health() != 0 {
		t.Fatalf("dead player changed: dead=%v y=%v health=%d", p.IsDead(), p.Y, p.Health())
	}
	if p.TakeDamage(1) {
		t.Fatalf("dead player took damage")
	}
}

func TestPlayerHitStunInput(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		wantVX func(PlayerTuning) float64
	}{
		{"release keeps knockback", Input{}, func(tu PlayerTuning) float64 { return -tu.KnockbackX }},
		{"right steers at reduced control", Input{Right: true}, func(tu PlayerTuning) float64 { return tu.MoveSpeed * tu.HitControl }},
		{"left steers at reduced control", Input{Left: true}, func(tu PlayerTuning) float64 { return -tu.MoveSpeed * tu.HitControl }},
		{"attack does not start", Input{Attack: true}, func(tu PlayerTuning) float64 { return -tu.KnockbackX }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := mustLevel(t, flatDef(1))
			p := newTestPlayer(100, 468)
			p.Update(tick, Input{}, lvl)
			if tu := p.Tuning(); tu.HitControl != 0.3 {
				t.Fatalf("hit control %v, want 0.3", tu.HitControl)
			}

			p.TakeDamage(1)
			for i := 0; i < 3; i++ {
				p.Update(tick, tc.in, lvl)
				if p.State() != PlayerHit {
					t.Fatalf("tick %d: state %v, want hit", i, p.State())
				}
				if want := tc.wantVX(p.Tuning()); p.VX != want {
					t.Fatalf("tick %d: vx=%v, want %v", i, p.VX, want)
				}
			}
		})
	}
}

func TestPlayerRehitRestartsStun(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(100, 468)
	p.TakeDamage(1)
	for i := 0; i < 10; i++ {
		p.Update(tick, Input{}, lvl)
	}
	if p.State() != PlayerHit || p.hitTimer >= p.tuning.HitTime {
		t.Fatalf("stun not counting down: state=%v timer=%v", p.State(), p.hitTimer)
	}

	p.health.Invulnerable = 0
	if !p.TakeDamage(1) {
		t.Fatalf("second hit ignored")
	}
	if p.State() != PlayerHit || p.hitTimer != p.tuning.HitTime {
		t.Fatalf("second hit: state=%v timer=%v, want hit/%v", p.State(), p.hitTimer, p.tuning.HitTime)
	}
}

func TestPlayerFallOutKillsThroughInvulnerability(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	p := newTestPlayer(1000, 400)
	p.TakeDamage(1)
	p.Y = 800
	p.Update(tick, Input{}, lvl)
	if !p.IsDead() {
		t.Fatalf("player below the world should die")
	}
}

func TestPlayerHealClampsToMax(t *testing.T) {
	p := newTestPlayer(0, 0)
	p.TakeDamage(1)
	p.Heal(5)
	if p.Health() != p.MaxHealth() {
		t.Fatalf("health %d, want %d", p.Health(), p.MaxHealth())
	}
}

func TestPlayerResetRestoresSpawn(t *testing.T) {
	p := newTestPlayer(10, 20)
	p.TakeDamage(1)
	p.X, p.Y = 500, 500
	p.Respawn()
	if p.X != 10 || p.Y != 20 || p.Health() != 3 || p.State() != PlayerIdle || p.IsInvulnerable() {
		t.Fatalf("respawn: pos=(%v,%v) health=%d state=%v", p.X, p.Y, p.Health(), p.State())
	}
	p.Reset(300, 40)
	if p.SpawnX != 300 || p.SpawnY != 40 {
		t.Fatalf("reset did not move the spawn point")
	}
}

func TestResolveCollisions(t *testing.T) {
	platform := NewPlatform(100, 100, 100, 20, PlatformStone)
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
		grounded     bool
	}{
		{"from above", 120, 90, 120, 68, true},
		{"from below", 120, 110, 120, 120, false},
		{"from the left", 80, 95, 68, 95, false},
		{"from the right", 190, 95, 200, 95, false},
		{"equal overlap pushes vertically", 88, 88, 88, 68, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(tt.x, tt.y)
			p.VY = 50
			p.resolveCollisions([]*Platform{platform})
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Fatalf("got (%v,%v), want (%v,%v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
			if p.Intersects(platform.Bounds()) {
				t.Fatalf("still intersecting")
			}
			if p.IsGrounded() != tt.grounded {
				t.Fatalf("grounded=%v, want %v", p.IsGrounded(), tt.grounded)
			}

			p.resolveCollisions([]*Platform{platform})
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Fatalf("second pass moved the player to (%v,%v)", p.X, p.Y)
			}
		})
	}
}

func TestPlayerRenderFallbacks(t *testing.T) {
	p := newTestPlayer(0, 0)

	loading := &recordingCanvas{}
	p.Render(loading)
	if loading.count("fill") != 0 {
		t.Fatalf("fallback drawn while loading")
	}

	ready := &recordingCanvas{ready: true}
	p.Render(ready)
	if ready.count("fill") != 1 || ready.calls[len(ready.calls)-1].color != playerColor {
		t.Fatalf("expected one green fallback, got %+v", ready.calls)
	}

	p.TakeDamage(1)
	ready.calls = nil
	p.Render(ready)
	last := ready.calls[len(ready.calls)-1]
	if last.color != playerInvulnerableColor {
		t.Fatalf("invulnerable fallback color %v", last.color)
	}
}
