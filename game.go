package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/audio"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/storage"
)

// GameOptions are command line overrides of the config.
type GameOptions struct {
	StartLevel int
	Debug      bool
}

// Game drives the session from ebiten's frame loop and feeds its events to
// the HUD, the audio sink and the score store.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	session *obj.Session
	lib     *assets.Library
	hud     *render.HUD
	camera  *render.Camera
	sink    *audio.Sink
	store   *storage.Store
	watcher *prefabs.Watcher

	menu      *Menu
	menuState obj.GameState

	last  time.Time
	quit  bool
	debug bool
}

func NewGame(cfg config.Config, logger *log.Logger, opts GameOptions) (*Game, error) {
	defs, err := levels.Load()
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	catalog, err := obj.NewCatalog(defs)
	if err != nil {
		return nil, err
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		logger.Warn("player prefab unavailable, using defaults", "error", err)
	}

	lib := assets.NewLibrary(logger.WithPrefix("assets"))
	animSpec, err := prefabs.LoadAnimationSetSpec()
	if err != nil {
		logger.Warn("animation prefab unavailable, drawing fallbacks", "error", err)
		animSpec = &prefabs.AnimationSetSpec{}
	}
	lib.LoadAsync(animSpec)

	start := cfg.Game.StartLevel
	if opts.StartLevel != 0 {
		start = opts.StartLevel
	}
	if _, ok := catalog.Get(start); !ok {
		logger.Warn("start level not in catalog, using first", "level", start)
		start, _ = catalog.First()
	}

	session, err := obj.NewSession(catalog,
		obj.WithLives(cfg.Game.Lives),
		obj.WithStartLevel(start),
		obj.WithTuning(obj.TuningFromSpec(playerSpec)),
		obj.WithClipSource(lib),
	)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		session:   session,
		lib:       lib,
		hud:       render.NewHUD(lib),
		camera:    render.NewCamera(common.BaseWidth, common.BaseHeight),
		menuState: -1,
		debug:     opts.Debug,
	}
	g.sink = newSink(cfg, logger)
	g.openStore()
	if cfg.Dev.HotReload {
		g.watch()
	}
	return g, nil
}

func newSink(cfg config.Config, logger *log.Logger) *audio.Sink {
	vol := audio.Volumes{Master: cfg.Audio.Master, SFX: cfg.Audio.SFX, Music: cfg.Audio.Music}
	if !cfg.Audio.Enabled {
		return audio.NewSink(nil, nil, vol, logger.WithPrefix("audio"))
	}
	spec, err := prefabs.LoadAudioSetSpec()
	if err != nil {
		logger.Warn("audio prefab unavailable, playing silence", "error", err)
	}
	return audio.NewSink(eaudio.NewContext(audio.SampleRate), spec, vol, logger.WithPrefix("audio"))
}

func (g *Game) openStore() {
	store, err := storage.Open(g.cfg.Storage.DBPath)
	if err != nil {
		g.logger.Warn("could not open scores database", "path", g.cfg.Storage.DBPath, "error", err)
		// Continue without storage
		return
	}
	g.store = store
	if best, err := store.HighScore(storage.GameID); err == nil {
		g.hud.SetBest(best)
	}
}

func (g *Game) watch() {
	w, err := prefabs.NewWatcher(prefabs.Dir, levels.Dir)
	if err != nil {
		g.logger.Warn("hot reload disabled", "error", err)
		return
	}
	g.watcher = w
	g.logger.Info("watching for changes", "dirs", []string{prefabs.Dir, levels.Dir})
}

// Close releases the watcher, the audio players and the score store.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.sink.Close()
	if g.store != nil {
		_ = g.store.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	dt := g.cfg.Game.MaxDelta
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), g.cfg.Game.MaxDelta)
	}
	g.last = now

	g.applyReloads()

	keys := pollMenuKeys()
	if keys.Debug {
		g.debug = !g.debug
	}
	g.handleKeys(keys)

	events := g.session.Update(dt, pollInput())
	g.observe(events)
	g.hud.Update(dt)
	g.sink.SetPaused(g.session.State() == obj.StatePaused)

	g.syncMenu()
	if g.menu != nil && g.lib.Ready() {
		g.menu.UI.Update()
	}

	g.followCamera()
	return nil
}

func (g *Game) handleKeys(keys menuKeys) {
	switch g.session.State() {
	case obj.StatePlaying:
		if keys.Pause {
			g.session.Pause()
		}
	case obj.StatePaused:
		if keys.Pause {
			g.session.Resume()
		} else if keys.Confirm {
			g.menu.Confirm()
		}
	case obj.StateMenu, obj.StateGameOver, obj.StateVictory:
		if keys.Confirm && g.lib.Ready() {
			g.menu.Confirm()
		}
	}
}

func (g *Game) observe(events []obj.Event) {
	if len(events) == 0 {
		return
	}
	g.hud.Observe(events, g.session)
	g.sink.Handle(events)
	for _, ev := range events {
		switch ev.Kind {
		case obj.EventLevelStarted:
			g.logger.Info("level started", "level", ev.Level)
			if lvl := g.session.Level(); lvl != nil {
				g.camera.SetWorldBounds(lvl.Width(), lvl.Height())
				g.camera.SnapTo(g.session.Player().Bounds().Center())
			}
		case obj.EventLevelComplete:
			g.logger.Info("level complete", "level", ev.Level, "score", ev.Value)
		case obj.EventPlayerDeath:
			g.logger.Debug("player died", "lives", ev.Value)
		case obj.EventGameOver:
			g.recordRun(ev, storage.OutcomeGameOver)
		case obj.EventGameComplete:
			g.recordRun(ev, storage.OutcomeVictory)
		}
	}
}

func (g *Game) recordRun(ev obj.Event, outcome storage.Outcome) {
	g.logger.Info("run finished", "outcome", outcome, "score", ev.Value, "level", ev.Level)
	if g.store == nil {
		return
	}
	if _, err := g.store.SaveRun(storage.GameID, ev.Value, ev.Level, outcome); err != nil {
		g.logger.Warn("could not save score", "error", err)
		return
	}
	if best, err := g.store.HighScore(storage.GameID); err == nil {
		g.hud.SetBest(best)
	}
}

func (g *Game) start() {
	if err := g.session.Start(); err != nil {
		g.logger.Error("could not start run", "error", err)
	}
}

// syncMenu rebuilds the menu panel when the session changes state.
func (g *Game) syncMenu() {
	state := g.session.State()
	if state == g.menuState {
		return
	}
	g.menuState = state

	quit := g.menuItem("Quit", func() { g.quit = true })
	switch state {
	case obj.StateMenu:
		g.menu = NewMenuUI(g.cfg.Window.Title, []string{"Arrows/WASD move, Space jump, X attack"},
			g.menuItem("Start", g.start), quit)
	case obj.StatePaused:
		g.menu = NewMenuUI("Paused", nil,
			g.menuItem("Resume", g.session.Resume),
			g.menuItem("Restart level", func() {
				if err := g.session.RestartLevel(); err != nil {
					g.logger.Error("could not restart level", "error", err)
				}
			}),
			quit)
	case obj.StateGameOver:
		g.menu = NewMenuUI("GAME OVER", []string{fmt.Sprintf("Score: %d", g.session.Score())},
			g.menuItem("Restart", g.start), quit)
	case obj.StateVictory:
		g.menu = NewMenuUI("YOU WIN!", []string{fmt.Sprintf("Final score: %d", g.session.Score())},
			g.menuItem("Play again", g.start), quit)
	default:
		g.menu = nil
	}
}

// menuItem wraps act with the menu click sound.
func (g *Game) menuItem(label string, act func()) MenuItem {
	return MenuItem{Label: label, Action: func() {
		g.sink.Play("menu_select")
		act()
	}}
}

func (g *Game) followCamera() {
	if !g.session.IsPlaying() {
		return
	}
	g.camera.Update(g.session.Player().Bounds().Center())
}

// applyReloads applies changed prefab and level files between ticks.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, c := range g.watcher.Drain() {
		if c.Removed {
			g.logger.Debug("file removed, keeping loaded copy", "path", c.Path())
			continue
		}
		target := reloadTargetFor(c)
		if target == reloadNone {
			g.logger.Debug("ignoring change", "path", c.Path())
			continue
		}
		if err := g.reload(target); err != nil {
			g.logger.Warn("reload failed", "path", c.Path(), "error", err)
			continue
		}
		g.logger.Info("reloaded", "path", c.Path())
	}
}

type reloadTarget int

const (
	reloadNone reloadTarget = iota
	reloadPlayer
	reloadAnimations
	reloadAudio
	reloadLevels
)

// reloadTargetFor routes a change by the directory it came from, so a
// prefab name dropped into levels/ is not mistaken for a prefab.
func reloadTargetFor(c prefabs.Change) reloadTarget {
	switch filepath.Clean(c.Dir) {
	case prefabs.Dir:
		switch c.Name {
		case "player.yaml":
			return reloadPlayer
		case "animations.yaml":
			return reloadAnimations
		case "audio.yaml":
			return reloadAudio
		}
	case levels.Dir:
		if filepath.Ext(c.Name) == ".json" {
			return reloadLevels
		}
	}
	return reloadNone
}

func (g *Game) reload(target reloadTarget) error {
	switch target {
	case reloadPlayer:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		g.session.SetTuning(obj.TuningFromSpec(spec))
	case reloadAnimations:
		spec, err := prefabs.LoadAnimationSetSpec()
		if err != nil {
			return err
		}
		g.lib.Load(spec)
	case reloadAudio:
		if !g.cfg.Audio.Enabled {
			return nil
		}
		spec, err := prefabs.LoadAudioSetSpec()
		if err != nil {
			return err
		}
		g.sink.Reload(spec)
	case reloadLevels:
		defs, err := levels.Load()
		if err != nil {
			return err
		}
		catalog, err := obj.NewCatalog(defs)
		if err != nil {
			return err
		}
		if err := g.session.ReplaceCatalog(catalog); err != nil {
			return err
		}
		// The events raised by the reload are drained on the next tick.
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if !g.lib.Ready() {
		g.hud.DrawLoading(screen)
		return
	}

	canvas := render.NewScreenCanvas(screen, g.lib, g.camera)
	g.session.Render(canvas, g.cfg.Dev.ShowGoal || g.debug)
	g.hud.Draw(screen, g.session)
	if g.menu != nil {
		g.menu.UI.Draw(screen)
	}

	if g.debug {
		p := g.session.Player()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  state: %s  player: %s (%.0f, %.0f)",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.session.State(), p.State(), p.X, p.Y), 8, common.BaseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
