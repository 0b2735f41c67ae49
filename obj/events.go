package obj

import "fmt"

// EventKind identifies something the simulation reports to its sinks.
type EventKind int

const (
	EventScore EventKind = iota
	EventItemCollected
	EventLevelStarted
	EventLevelComplete
	EventPlayerHurt
	EventPlayerDeath
	EventPlayerJump
	EventPlayerLand
	EventPlayerAttack
	EventEnemyHit
	EventEnemyKilled
	EventGameOver
	EventGameComplete
	EventMusicChanged
)

var eventNames = [...]string{
	EventScore:         "score",
	EventItemCollected: "item_collected",
	EventLevelStarted:  "level_started",
	EventLevelComplete: "level_complete",
	EventPlayerHurt:    "player_hurt",
	EventPlayerDeath:   "player_death",
	EventPlayerJump:    "player_jump",
	EventPlayerLand:    "player_land",
	EventPlayerAttack:  "player_attack",
	EventEnemyHit:      "enemy_hit",
	EventEnemyKilled:   "enemy_killed",
	EventGameOver:      "game_over",
	EventGameComplete:  "game_complete",
	EventMusicChanged:  "music_changed",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Music tracks named by EventMusicChanged.
const (
	TrackBackground = "background"
	TrackBoss       = "boss"
)

// Event is a discrete simulation outcome. Only the fields relevant to Kind
// are set. Sinks may render, play or ignore events; the simulation never
// depends on what they do.
type Event struct {
	Kind    EventKind
	Value   int
	Level   int
	Item    CollectibleKind
	Species Species
	Track   string
}

// eventQueue buffers events raised between drains.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) emit(ev Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []Event {
	out := q.events
	q.events = nil
	return out
}
