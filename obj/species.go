package obj

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownSpecies = errors.New("unknown enemy species")

// Species identifies an enemy kind. The zero value is not a species.
type Species int

const (
	SpeciesSlime Species = iota + 1
	SpeciesGoblin
	SpeciesFlyBlue
	SpeciesFlyOrange
	SpeciesMushroom
	SpeciesWorm
	SpeciesBomberGoblin
)

const (
	flyBobAmplitude = 40.0
	flyBobFrequency = 3.0

	wormPeriodMin  = 1.0
	wormPeriodSpan = 2.0

	bomberAttackCooldown = 3.0
)

// aiFunc is a species' per-tick behaviour. It runs before the base
// integrates velocity and advances the AI timer.
type aiFunc func(e *Enemy, dt float64, lvl *Level)

type speciesInfo struct {
	tag    string
	health int
	speed  float64
	period float64
	width  float64
	height float64
	clip   string
	ai     aiFunc
}

var speciesTable = map[Species]speciesInfo{
	SpeciesSlime:        {tag: "slime", health: 1, speed: 30, period: 2.0, width: 32, height: 32, clip: "slime_walk", ai: patrolAI},
	SpeciesGoblin:       {tag: "goblin", health: 2, speed: 60, period: 3.0, width: 32, height: 32, clip: "goblin_run", ai: patrolAI},
	SpeciesFlyBlue:      {tag: "fly_blue", health: 1, speed: 40, period: 2.5, width: 32, height: 32, clip: "blue_fly_flying", ai: flyAI},
	SpeciesFlyOrange:    {tag: "fly_orange", health: 1, speed: 40, period: 2.5, width: 32, height: 32, clip: "orange_fly_flying", ai: flyAI},
	SpeciesMushroom:     {tag: "mushroom", health: 3, speed: 20, period: 4.0, width: 32, height: 32, clip: "mushroom_walk", ai: patrolAI},
	SpeciesWorm:         {tag: "worm", health: 1, speed: 80, period: 1.5, width: 32, height: 32, clip: "worm_walk", ai: wormAI},
	SpeciesBomberGoblin: {tag: "bomber_goblin", health: 5, speed: 40, period: 2.0, width: 40, height: 40, clip: "bomber_goblin_walk", ai: bomberAI},
}

var speciesByTag = func() map[string]Species {
	m := make(map[string]Species, len(speciesTable))
	for s, info := range speciesTable {
		m[info.tag] = s
	}
	return m
}()

// ParseSpecies maps a level file tag to a species. Unknown tags are an
// error, never a default.
func ParseSpecies(tag string) (Species, error) {
	s, ok := speciesByTag[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, tag)
	}
	return s, nil
}

func (s Species) String() string {
	if info, ok := speciesTable[s]; ok {
		return info.tag
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// MaxHealth is the species' starting health.
func (s Species) MaxHealth() int { return speciesTable[s].health }

// IsBoss reports whether the species is a boss.
func (s Species) IsBoss() bool { return s == SpeciesBomberGoblin }

// patrolAI walks at constant speed and turns around every reversal period.
func patrolAI(e *Enemy, dt float64, lvl *Level) {
	e.reverseIfDue()
}

// flyAI patrols and superimposes a sine bob on the vertical velocity.
func flyAI(e *Enemy, dt float64, lvl *Level) {
	e.reverseIfDue()
	e.VY = math.Sin(e.aiTimer*flyBobFrequency) * flyBobAmplitude
}

// wormAI patrols with a period re-rolled into [1,3) after every turn.
func wormAI(e *Enemy, dt float64, lvl *Level) {
	if e.reverseIfDue() {
		e.period = wormPeriodMin + e.rng.Float64()*wormPeriodSpan
	}
}

// bomberAI patrols and counts down an attack cooldown. The attack itself
// does nothing yet.
func bomberAI(e *Enemy, dt float64, lvl *Level) {
	e.reverseIfDue()
	e.attackTimer += dt
	if e.attackTimer >= bomberAttackCooldown {
		e.attackTimer = 0
	}
}
