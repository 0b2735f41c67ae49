package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/component"
)

var ErrNoLevels = errors.New("catalog has no levels")

const DefaultLives = 3

// GameState is the session's top-level mode.
type GameState int

const (
	StateMenu GameState = iota
	StateLoading
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLives sets the number of lives a run starts with.
func WithLives(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.startLives = n
		}
	}
}

// WithStartLevel starts runs at id instead of the first catalog level.
func WithStartLevel(id int) SessionOption {
	return func(s *Session) { s.startLevel = id }
}

// WithTuning sets the player's tuning.
func WithTuning(t PlayerTuning) SessionOption {
	return func(s *Session) { s.tuning = t }
}

// WithClipSource animates the player and every level entity from clips.
func WithClipSource(clips component.ClipSource) SessionOption {
	return func(s *Session) { s.clips = clips }
}

// WithLevelOptions is forwarded to every level the session loads.
func WithLevelOptions(opts ...LevelOption) SessionOption {
	return func(s *Session) { s.levelOpts = append(s.levelOpts, opts...) }
}

// Session is one run of the game: the player, lives, score and level
// progression. It is the only thing the frame driver ticks.
type Session struct {
	player *Player
	levels *LevelManager

	tuning     PlayerTuning
	clips      component.ClipSource
	levelOpts  []LevelOption
	startLives int
	startLevel int

	lives int
	score int
	state GameState
	track string

	events eventQueue
}

func NewSession(catalog *Catalog, opts ...SessionOption) (*Session, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrNoLevels
	}
	s := &Session{
		tuning:     DefaultPlayerTuning(),
		startLives: DefaultLives,
		state:      StateMenu,
	}
	s.startLevel, _ = catalog.First()
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := catalog.Get(s.startLevel); !ok {
		return nil, fmt.Errorf("start level %d: %w", s.startLevel, ErrUnknownLevel)
	}

	if s.clips != nil {
		s.levelOpts = append(s.levelOpts, WithClips(s.clips))
	}
	s.levels = NewLevelManager(catalog, s.levelOpts...)
	s.player = NewPlayer(100, 400, s.tuning, s.clips)
	return s, nil
}

// Start begins a fresh run: full lives, zero score, the start level.
func (s *Session) Start() error {
	s.state = StateLoading
	if err := s.loadLevel(s.startLevel); err != nil {
		s.state = StateMenu
		return err
	}
	s.lives = s.startLives
	s.score = 0
	s.track = ""
	s.cueMusic()
	s.state = StatePlaying
	return nil
}

func (s *Session) loadLevel(id int) error {
	if err := s.levels.LoadLevel(id); err != nil {
		return err
	}
	s.respawn()
	return nil
}

// respawn puts the player at the active level's spawn and announces the
// level start.
func (s *Session) respawn() {
	x, y := s.levels.SpawnPoint()
	s.player.Reset(x, y)
	s.player.DrainEvents()
	s.events.emit(Event{Kind: EventLevelStarted, Level: s.levels.CurrentID()})
}

func (s *Session) cueMusic() {
	track := TrackBackground
	if lvl := s.levels.Current(); lvl != nil && lvl.IsBoss() {
		track = TrackBoss
	}
	if track == s.track {
		return
	}
	s.track = track
	s.events.emit(Event{Kind: EventMusicChanged, Track: track, Level: s.levels.CurrentID()})
}

// Update advances one tick and returns the events it raised. It does
// nothing unless the session is playing.
func (s *Session) Update(dt float64, in Input) []Event {
	if s.state != StatePlaying {
		return s.events.drain()
	}

	lvl := s.levels.Current()
	s.player.Update(dt, in, lvl)
	res := s.levels.Update(dt, s.player)
	s.report(res)

	if s.player.IsDead() {
		s.lives--
		s.events.emit(Event{Kind: EventPlayerDeath, Value: s.lives, Level: s.levels.CurrentID()})
		if s.lives <= 0 {
			s.lives = 0
			s.state = StateGameOver
			s.events.emit(Event{Kind: EventGameOver, Value: s.score, Level: s.levels.CurrentID()})
			return s.events.drain()
		}
		s.player.Respawn()
		s.player.DrainEvents()
	}

	if s.levels.IsLevelComplete() {
		s.completeLevel()
	}
	return s.events.drain()
}

// report turns a tick's resolution into score and events.
func (s *Session) report(res TickResult) {
	s.events.events = append(s.events.events, s.player.DrainEvents()...)
	if item := res.Collected; item != nil {
		s.events.emit(Event{Kind: EventItemCollected, Item: item.Kind, Value: item.ScoreValue()})
	}
	if res.ScoreDelta != 0 {
		s.score += res.ScoreDelta
		s.events.emit(Event{Kind: EventScore, Value: res.ScoreDelta})
	}
	for _, e := range res.EnemiesHit {
		s.events.emit(Event{Kind: EventEnemyHit, Species: e.Species, Value: e.Health()})
	}
	for _, e := range res.Killed {
		s.events.emit(Event{Kind: EventEnemyKilled, Species: e.Species})
	}
}

func (s *Session) completeLevel() {
	id := s.levels.CurrentID()
	s.events.emit(Event{Kind: EventLevelComplete, Level: id, Value: s.score})
	next, ok := s.levels.Catalog().Next(id)
	if !ok {
		s.state = StateVictory
		s.events.emit(Event{Kind: EventGameComplete, Value: s.score, Level: id})
		return
	}
	if err := s.loadLevel(next); err != nil {
		// Catalog levels were validated at construction.
		s.state = StateVictory
		s.events.emit(Event{Kind: EventGameComplete, Value: s.score, Level: id})
		return
	}
	s.cueMusic()
}

// RestartLevel resets the current level in place and puts the player at its spawn.
// Lives and score are kept.
func (s *Session) RestartLevel() error {
	if s.state != StatePlaying && s.state != StatePaused {
		return nil
	}
	if s.levels.Current() == nil {
		if err := s.loadLevel(s.levels.CurrentID()); err != nil {
			return err
		}
	} else {
		s.levels.ResetCurrentLevel()
		s.respawn()
	}
	s.state = StatePlaying
	return nil
}

func (s *Session) Pause() {
	if s.state == StatePlaying {
		s.state = StatePaused
	}
}

func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StatePlaying
	}
}

func (s *Session) TogglePause() {
	switch s.state {
	case StatePlaying:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

// SetTuning applies new player tuning between ticks.
func (s *Session) SetTuning(t PlayerTuning) {
	s.tuning = t
	s.player.SetTuning(t)
}

// ReplaceCatalog swaps the level catalog. A level that is being played is
// rebuilt from its new definition, or the run restarts if it was removed.
func (s *Session) ReplaceCatalog(c *Catalog) error {
	if c == nil || c.Len() == 0 {
		return ErrNoLevels
	}
	id := s.levels.CurrentID()
	s.levels = NewLevelManager(c, s.levelOpts...)
	if _, ok := c.Get(s.startLevel); !ok {
		s.startLevel, _ = c.First()
	}
	if s.state != StatePlaying && s.state != StatePaused {
		return nil
	}
	if _, ok := c.Get(id); !ok {
		id = s.startLevel
	}
	return s.loadLevel(id)
}

func (s *Session) Player() *Player       { return s.player }
func (s *Session) Levels() *LevelManager { return s.levels }
func (s *Session) Level() *Level         { return s.levels.Current() }
func (s *Session) State() GameState      { return s.state }
func (s *Session) Lives() int            { return s.lives }
func (s *Session) Score() int            { return s.score }
func (s *Session) Track() string         { return s.track }
func (s *Session) IsPlaying() bool       { return s.state == StatePlaying }

// Render draws the level and the player. It is a pure read of the
// simulation and draws nothing before a level is loaded.
func (s *Session) Render(c Canvas, showGoal bool) {
	lvl := s.levels.Current()
	if lvl == nil {
		return
	}
	lvl.RenderBackground(c)
	lvl.Render(c, showGoal)
	s.player.Render(c)
}
