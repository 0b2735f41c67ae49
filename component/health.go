package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	Dead    bool

	// Invulnerable is the remaining invulnerability window in seconds.
	Invulnerable float64
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// IsInvulnerable reports whether damage is currently ignored.
func (h *Health) IsInvulnerable() bool {
	return h != nil && h.Invulnerable > 0
}

// ApplyDamage applies damage unless dead or invulnerable, clamping at 0.
// Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.Dead || h.Invulnerable > 0 || amount <= 0 {
		return false
	}
	return h.apply(amount)
}

// Kill drops health to 0 regardless of invulnerability. Returns false if
// already dead.
func (h *Health) Kill() bool {
	if h == nil || h.Dead {
		return false
	}
	return h.apply(h.Current)
}

func (h *Health) apply(amount int) bool {
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// StartInvulnerability opens an invulnerability window of d seconds.
func (h *Health) StartInvulnerability(d float64) {
	if h == nil || d <= 0 {
		return
	}
	h.Invulnerable = d
}

// Tick advances the invulnerability timer.
func (h *Health) Tick(dt float64) {
	if h == nil || h.Invulnerable <= 0 {
		return
	}
	h.Invulnerable -= dt
	if h.Invulnerable < 0 {
		h.Invulnerable = 0
	}
}

// Reset restores full health and clears invulnerability.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Dead = false
	h.Invulnerable = 0
}
