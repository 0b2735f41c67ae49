package obj

import (
	"errors"
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
)

func populatedDef(id int) levels.Definition {
	def := flatDef(id)
	def.Enemies = []levels.Entity{
		{X: 300, Y: 468, Type: "slime"},
		{X: 400, Y: 468, Type: "goblin"},
	}
	def.Collectibles = []levels.Entity{
		{X: 200, Y: 450, Type: "coin"},
		{X: 205, Y: 450, Type: "orb"},
		{X: 600, Y: 450, Type: "health_potion"},
	}
	return def
}

func TestNewLevelRejectsUnknownTags(t *testing.T) {
	badEnemy := flatDef(1)
	badEnemy.Enemies = []levels.Entity{{X: 0, Y: 0, Type: "dragon"}}
	if _, err := NewLevel(badEnemy); !errors.Is(err, ErrUnknownSpecies) {
		t.Fatalf("enemy tag: got %v", err)
	}

	badItem := flatDef(1)
	badItem.Collectibles = []levels.Entity{{X: 0, Y: 0, Type: "gem"}}
	if _, err := NewLevel(badItem); !errors.Is(err, ErrUnknownCollectible) {
		t.Fatalf("collectible tag: got %v", err)
	}
}

func TestGoalIsSticky(t *testing.T) {
	lvl := mustLevel(t, flatDef(1))
	if lvl.CheckGoalReached(common.NewRect(0, 0, 10, 10)) {
		t.Fatalf("goal reached from outside")
	}
	if !lvl.CheckGoalReached(common.NewRect(710, 450, 32, 32)) {
		t.Fatalf("goal not reached from inside")
	}
	if !lvl.CheckGoalReached(common.NewRect(0, 0, 10, 10)) || !lvl.IsCompleted() {
		t.Fatalf("completion did not stick")
	}
}

func TestCollectItemTakesOnePerCall(t *testing.T) {
	lvl := mustLevel(t, populatedDef(1))
	body := common.NewRect(195, 445, 32, 32)

	first := lvl.CollectItem(body)
	if first == nil || first.Kind != Coin {
		t.Fatalf("first pickup %+v, want coin", first)
	}
	second := lvl.CollectItem(body)
	if second == nil || second.Kind != Orb {
		t.Fatalf("second pickup %+v, want orb", second)
	}
	if third := lvl.CollectItem(body); third != nil {
		t.Fatalf("third pickup %+v, want none", third)
	}
}

func TestDeadEnemiesDroppedNextTick(t *testing.T) {
	lvl := mustLevel(t, populatedDef(1))
	slime := lvl.Enemies()[0]
	slime.TakeDamage(1)

	if len(lvl.Enemies()) != 2 || lvl.AliveEnemies() != 1 {
		t.Fatalf("enemies=%d alive=%d before update", len(lvl.Enemies()), lvl.AliveEnemies())
	}
	if hits := lvl.AttackHits(slime.Bounds()); len(hits) != 0 {
		t.Fatalf("dead enemy still hittable")
	}
	lvl.Update(tick)
	if len(lvl.Enemies()) != 1 || lvl.Enemies()[0].Species != SpeciesGoblin {
		t.Fatalf("dead enemy not removed: %d left", len(lvl.Enemies()))
	}
}

func TestLevelReset(t *testing.T) {
	lvl := mustLevel(t, populatedDef(1))
	lvl.CheckGoalReached(lvl.Goal())
	lvl.CollectItem(common.NewRect(195, 445, 32, 32))
	lvl.Enemies()[0].TakeDamage(1)
	lvl.Enemies()[1].TakeDamage(1)
	for i := 0; i < 10; i++ {
		lvl.Update(tick)
	}
	if goblin := lvl.Enemies()[0]; goblin.Health() != 1 {
		t.Fatalf("goblin health %d before reset, want 1", goblin.Health())
	}

	lvl.Reset()
	if lvl.IsCompleted() {
		t.Fatalf("completion survived reset")
	}
	if len(lvl.Enemies()) != 2 || lvl.AliveEnemies() != 2 {
		t.Fatalf("enemies not restored: %d", len(lvl.Enemies()))
	}
	if lvl.Enemies()[0].X != 300 {
		t.Fatalf("enemy not back at spawn: x=%v", lvl.Enemies()[0].X)
	}
	for _, e := range lvl.Enemies() {
		if e.Health() != e.Species.MaxHealth() || !e.IsAlive() {
			t.Fatalf("%s health %d after reset, want %d", e.Species, e.Health(), e.Species.MaxHealth())
		}
	}
	for _, c := range lvl.Collectibles() {
		if c.IsCollected() {
			t.Fatalf("%s still collected after reset", c.Kind)
		}
	}
}

func TestLevelRenderFallbacks(t *testing.T) {
	lvl := mustLevel(t, populatedDef(1))

	loading := &recordingCanvas{}
	lvl.RenderBackground(loading)
	lvl.Render(loading, false)
	if loading.count("fill") != 0 || loading.count("gradient") != 0 {
		t.Fatalf("fallbacks drawn while loading: %+v", loading.calls)
	}

	cv := &recordingCanvas{ready: true}
	lvl.RenderBackground(cv)
	lvl.Render(cv, true)
	if cv.count("gradient") != 1 {
		t.Fatalf("background gradient missing")
	}
	// 1 platform, 3 items and 2 enemies.
	if got := cv.count("fill"); got != 6 {
		t.Fatalf("fills %d, want 6", got)
	}
	if cv.count("stroke") != 1 {
		t.Fatalf("goal outline missing")
	}
}
