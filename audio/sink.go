package audio

import (
	"bytes"

	"github.com/charmbracelet/log"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
)

const SampleRate = 44100

// Volumes are linear gains in [0,1].
type Volumes struct {
	Master float64
	SFX    float64
	Music  float64
}

type sound struct {
	pcm    []byte
	volume float64
}

// Sink plays sounds for simulation events. Sounds whose files are missing
// are silent.
type Sink struct {
	ctx     *eaudio.Context
	logger  *log.Logger
	volumes Volumes

	sounds map[string]sound
	music  map[string]sound

	track   string
	playing *eaudio.Player
	muted   bool
}

// NewSink loads every sound named in spec. ctx may be shared with other
// users of the process-wide audio context.
func NewSink(ctx *eaudio.Context, spec *prefabs.AudioSetSpec, vol Volumes, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.Default()
	}
	s := &Sink{
		ctx:     ctx,
		logger:  logger,
		volumes: vol,
		sounds:  map[string]sound{},
		music:   map[string]sound{},
	}
	if spec != nil {
		s.load(spec)
	}
	return s
}

func (s *Sink) load(spec *prefabs.AudioSetSpec) {
	read := func(dst map[string]sound, list []prefabs.AudioSpec) {
		for _, a := range list {
			pcm, err := assets.LoadPCM(s.ctx, a.File)
			if err != nil {
				if assets.IsNotExist(err) {
					s.logger.Debug("sound missing", "name", a.Name, "file", a.File)
				} else {
					s.logger.Warn("sound unreadable", "name", a.Name, "file", a.File, "error", err)
				}
				continue
			}
			vol := a.Volume
			if vol <= 0 {
				vol = 1
			}
			dst[a.Name] = sound{pcm: pcm, volume: vol}
		}
	}
	read(s.sounds, spec.Sounds)
	read(s.music, spec.Music)
	s.logger.Info("audio loaded", "sounds", len(s.sounds), "music", len(s.music))
}

// Reload replaces the sound set. The current track stays selected and is
// restarted from the beginning with the new data, or goes silent if the
// new set lacks it.
func (s *Sink) Reload(spec *prefabs.AudioSetSpec) {
	s.sounds = map[string]sound{}
	s.music = map[string]sound{}
	if spec != nil {
		s.load(spec)
	}
	track := s.track
	s.stopMusic()
	if track != "" {
		s.PlayMusic(track)
	}
}

// Handle plays whatever the events of one tick call for.
func (s *Sink) Handle(events []obj.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case obj.EventMusicChanged:
			s.PlayMusic(ev.Track)
			continue
		case obj.EventGameOver:
			s.stopMusic()
		}
		if name, ok := SoundFor(ev); ok {
			s.Play(name)
		}
	}
}

// SoundFor maps an event to its sound effect name.
func SoundFor(ev obj.Event) (string, bool) {
	switch ev.Kind {
	case obj.EventPlayerJump:
		return "jump", true
	case obj.EventPlayerLand:
		return "land", true
	case obj.EventPlayerAttack:
		return "attack", true
	case obj.EventEnemyHit:
		return "hit_enemy", true
	case obj.EventEnemyKilled:
		return "enemy_death", true
	case obj.EventPlayerHurt:
		return "take_damage", true
	case obj.EventPlayerDeath:
		return "death", true
	case obj.EventLevelComplete:
		return "level_complete", true
	case obj.EventGameOver:
		return "game_over", true
	case obj.EventItemCollected:
		switch ev.Item {
		case obj.Coin:
			return "coin_collect", true
		case obj.Orb:
			return "orb_collect", true
		case obj.HealthPotion, obj.Apple, obj.Meat:
			return "potion_drink", true
		}
	}
	return "", false
}

// Play starts a one-shot sound effect.
func (s *Sink) Play(name string) {
	snd, ok := s.sounds[name]
	if !ok || s.muted || s.ctx == nil {
		return
	}
	p := s.ctx.NewPlayerFromBytes(snd.pcm)
	p.SetVolume(s.volumes.Master * s.volumes.SFX * snd.volume)
	p.Play()
}

// PlayMusic loops track, replacing whatever was playing. Asking for the
// current track is a no-op.
func (s *Sink) PlayMusic(track string) {
	if track == s.track && s.playing != nil {
		return
	}
	s.stopMusic()
	s.track = track
	snd, ok := s.music[track]
	if !ok || s.ctx == nil {
		return
	}
	loop := eaudio.NewInfiniteLoop(bytes.NewReader(snd.pcm), int64(len(snd.pcm)))
	p, err := s.ctx.NewPlayer(loop)
	if err != nil {
		s.logger.Warn("music player", "track", track, "error", err)
		return
	}
	p.SetVolume(s.musicVolume(snd))
	if !s.muted {
		p.Play()
	}
	s.playing = p
}

func (s *Sink) musicVolume(snd sound) float64 {
	return s.volumes.Master * s.volumes.Music * snd.volume
}

func (s *Sink) stopMusic() {
	if s.playing != nil {
		s.playing.Pause()
		_ = s.playing.Close()
		s.playing = nil
	}
	s.track = ""
}

// SetPaused pauses or resumes the music with the game.
func (s *Sink) SetPaused(paused bool) {
	s.muted = paused
	if s.playing == nil {
		return
	}
	if paused {
		s.playing.Pause()
	} else {
		s.playing.Play()
	}
}

func (s *Sink) Track() string { return s.track }

func (s *Sink) Close() {
	s.stopMusic()
}
