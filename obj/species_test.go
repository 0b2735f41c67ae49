package obj

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/platformer/levels"
)

func TestSpeciesTable(t *testing.T) {
	tests := []struct {
		species       Species
		health        int
		speed, period float64
		width, height float64
	}{
		{SpeciesSlime, 1, 30, 2.0, 32, 32},
		{SpeciesGoblin, 2, 60, 3.0, 32, 32},
		{SpeciesFlyBlue, 1, 40, 2.5, 32, 32},
		{SpeciesFlyOrange, 1, 40, 2.5, 32, 32},
		{SpeciesMushroom, 3, 20, 4.0, 32, 32},
		{SpeciesWorm, 1, 80, 1.5, 32, 32},
		{SpeciesBomberGoblin, 5, 40, 2.0, 40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.species.String(), func(t *testing.T) {
			e, err := NewEnemy(tt.species, 0, 0, nil, nil)
			if err != nil {
				t.Fatalf("NewEnemy: %v", err)
			}
			if e.Health() != tt.health || e.Period() != tt.period {
				t.Fatalf("health=%d period=%v, want %d/%v", e.Health(), e.Period(), tt.health, tt.period)
			}
			if e.VX != tt.speed || !e.FacingRight() {
				t.Fatalf("vx=%v facingRight=%v, want %v to the right", e.VX, e.FacingRight(), tt.speed)
			}
			if e.Width != tt.width || e.Height != tt.height {
				t.Fatalf("size %vx%v, want %vx%v", e.Width, e.Height, tt.width, tt.height)
			}
		})
	}
}

func TestBomberAttacksOncePerCooldown(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    int
	}{
		{"before first cooldown", 2, 0},
		{"one window", 3, 1},
		{"three windows", 9, 3},
		{"partial fourth window", 11, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := NewEnemy(SpeciesBomberGoblin, 0, 0, nil, nil)
			attacks := 0
			for i := 0; i < 64*tt.seconds; i++ {
				before := e.attackTimer
				e.Update(tick, nil)
				if e.attackTimer < before {
					attacks++
				}
				if e.attackTimer >= bomberAttackCooldown {
					t.Fatalf("tick %d: cooldown %v not wrapped", i, e.attackTimer)
				}
			}
			if attacks != tt.want {
				t.Fatalf("%d attacks in %d s, want %d", attacks, tt.seconds, tt.want)
			}
		})
	}
}

func TestWithRandMakesWormsDeterministic(t *testing.T) {
	def := flatDef(1)
	def.Enemies = []levels.Entity{
		{X: 100, Y: 468, Type: "worm"},
		{X: 500, Y: 468, Type: "worm"},
	}
	periods := func() []float64 {
		lvl, err := NewLevel(def, WithClips(fakeClips{}), WithRand(rand.New(rand.NewPCG(7, 11))))
		if err != nil {
			t.Fatalf("NewLevel: %v", err)
		}
		var got []float64
		for i := 0; i < 64*10; i++ {
			lvl.Update(tick)
			if i%64 == 0 {
				for _, e := range lvl.Enemies() {
					got = append(got, e.Period())
				}
			}
		}
		return got
	}

	first, second := periods(), periods()
	if len(first) != len(second) {
		t.Fatalf("sample counts differ: %d vs %d", len(first), len(second))
	}
	rerolled := false
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d: %v vs %v with the same seed", i, first[i], second[i])
		}
		if first[i] != 1.5 {
			rerolled = true
		}
	}
	if !rerolled {
		t.Fatalf("worm periods never rerolled")
	}
}
