package obj

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/platformer/levels"
)

var ErrUnknownLevel = errors.New("unknown level")

const (
	contactDamage = 1
	attackDamage  = 1
)

// Catalog is the read-only set of level definitions keyed by id.
type Catalog struct {
	defs map[int]levels.Definition
	ids  []int
}

// NewCatalog indexes defs. Every definition is instantiated once so that
// bad tags are reported here rather than on first load.
func NewCatalog(defs []levels.Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[int]levels.Definition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", levels.ErrInvalidDefinition, d.ID)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, err := NewLevel(d); err != nil {
			return nil, err
		}
		c.defs[d.ID] = d
		c.ids = append(c.ids, d.ID)
	}
	sort.Ints(c.ids)
	return c, nil
}

func (c *Catalog) Get(id int) (levels.Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// IDs returns the level ids in ascending order.
func (c *Catalog) IDs() []int {
	return append([]int(nil), c.ids...)
}

func (c *Catalog) Len() int { return len(c.ids) }

// First returns the lowest level id.
func (c *Catalog) First() (int, bool) {
	if len(c.ids) == 0 {
		return 0, false
	}
	return c.ids[0], true
}

// Next returns the id that follows id in play order.
func (c *Catalog) Next(id int) (int, bool) {
	i := sort.SearchInts(c.ids, id+1)
	if i >= len(c.ids) {
		return 0, false
	}
	return c.ids[i], true
}

// TickResult is what one LevelManager.Update resolved. Score is reported,
// not accumulated; the caller owns the score.
type TickResult struct {
	GoalReached bool
	Collected   *Collectible
	ScoreDelta  int
	Healed      int
	Contacts    int
	DamageTaken int
	EnemiesHit  []*Enemy
	Killed      []*Enemy
}

// LevelManager owns the catalog and the active level.
type LevelManager struct {
	catalog   *Catalog
	current   *Level
	currentID int
	opts      []LevelOption
}

func NewLevelManager(catalog *Catalog, opts ...LevelOption) *LevelManager {
	return &LevelManager{catalog: catalog, opts: opts}
}

// LoadLevel replaces the active level with a fresh instance of id. An
// unknown id fails and leaves the active level as it was.
func (m *LevelManager) LoadLevel(id int) error {
	def, ok := m.catalog.Get(id)
	if !ok {
		return fmt.Errorf("load level %d: %w", id, ErrUnknownLevel)
	}
	lvl, err := NewLevel(def, m.opts...)
	if err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	m.current = lvl
	m.currentID = id
	return nil
}

// ResetCurrentLevel restores every entity of the active level.
func (m *LevelManager) ResetCurrentLevel() {
	if m.current != nil {
		m.current.Reset()
	}
}

// Update runs one tick of level resolution, in this order:
//
//  1. advance the level (drop dead enemies, move enemies, bob collectibles)
//  2. goal zone against the player
//  3. first overlapping collectible is picked up; health items heal
//  4. enemy contact damages the player unless invulnerable
//  5. while attacking, every enemy in the attack box takes damage
//
// The player must already have been updated this tick.
func (m *LevelManager) Update(dt float64, p *Player) TickResult {
	var res TickResult
	lvl := m.current
	if lvl == nil || p == nil {
		return res
	}

	lvl.Update(dt)

	body := p.Bounds()
	res.GoalReached = lvl.CheckGoalReached(body)

	if item := lvl.CollectItem(body); item != nil {
		res.Collected = item
		res.ScoreDelta += item.ScoreValue()
		if heal := item.HealAmount(); heal > 0 {
			before := p.Health()
			p.Heal(heal)
			res.Healed = p.Health() - before
		}
	}

	contacts := lvl.EnemyContacts(body)
	res.Contacts = len(contacts)
	for range contacts {
		if p.IsInvulnerable() {
			continue
		}
		before := p.Health()
		if p.TakeDamage(contactDamage) {
			res.DamageTaken += before - p.Health()
		}
	}

	if p.IsAttacking() {
		for _, e := range lvl.AttackHits(p.AttackBounds()) {
			if !e.IsAlive() {
				continue
			}
			res.EnemiesHit = append(res.EnemiesHit, e)
			if e.TakeDamage(attackDamage) {
				res.Killed = append(res.Killed, e)
			}
		}
	}
	return res
}

func (m *LevelManager) Current() *Level   { return m.current }
func (m *LevelManager) CurrentID() int    { return m.currentID }
func (m *LevelManager) Catalog() *Catalog { return m.catalog }

func (m *LevelManager) IsLevelComplete() bool {
	return m.current != nil && m.current.IsCompleted()
}

// SpawnPoint is the active level's spawn, or a default before any load.
func (m *LevelManager) SpawnPoint() (float64, float64) {
	if m.current == nil {
		return 100, 400
	}
	return m.current.SpawnPoint()
}
