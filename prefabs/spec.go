package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the player's movement and combat tuning.
type PlayerSpec struct {
	Name             string     `yaml:"name"`
	Width            float64    `yaml:"width"`
	Height           float64    `yaml:"height"`
	MoveSpeed        float64    `yaml:"move_speed"`
	JumpPower        float64    `yaml:"jump_power"`
	Gravity          float64    `yaml:"gravity"`
	TerminalVelocity float64    `yaml:"terminal_velocity"`
	MaxHealth        int        `yaml:"max_health"`
	InvulnerableTime float64    `yaml:"invulnerable_time"`
	HitTime          float64    `yaml:"hit_time"`
	HitControl       float64    `yaml:"hit_control"`
	AttackDuration   float64    `yaml:"attack_duration"`
	AttackBox        SizeSpec   `yaml:"attack_box"`
	Knockback        VectorSpec `yaml:"knockback"`
	FallMargin       float64    `yaml:"fall_margin"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AnimationSetSpec is the asset catalogue: sheet images and the clips cut
// from them, plus the colours used when an asset is missing.
type AnimationSetSpec struct {
	Images    []ImageSpec          `yaml:"images"`
	Clips     []AnimationDefSpec   `yaml:"clips"`
	Fallbacks map[string]YAMLColor `yaml:"fallbacks"`
}

type ImageSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type AnimationDefSpec struct {
	Name       string `yaml:"name"`
	Sheet      string `yaml:"sheet"`
	FrameCount int    `yaml:"frame_count"`
	FrameW     int    `yaml:"frame_w"`
	FrameH     int    `yaml:"frame_h"`
	DurationMS int    `yaml:"duration_ms"`
}

func LoadAnimationSetSpec() (*AnimationSetSpec, error) {
	spec, err := LoadSpec[AnimationSetSpec]("animations.yaml")
	if err != nil {
		return nil, err
	}
	for i, c := range spec.Clips {
		if c.Name == "" || c.Sheet == "" {
			return nil, fmt.Errorf("prefabs: animations.yaml: clip %d missing name or sheet", i)
		}
		if c.FrameCount <= 0 || c.FrameW <= 0 || c.FrameH <= 0 || c.DurationMS <= 0 {
			return nil, fmt.Errorf("prefabs: animations.yaml: clip %q has non-positive dimensions", c.Name)
		}
	}
	return &spec, nil
}

// AudioSetSpec maps logical sound and music names to audio files.
type AudioSetSpec struct {
	Sounds []AudioSpec `yaml:"sounds"`
	Music  []AudioSpec `yaml:"music"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

func LoadAudioSetSpec() (*AudioSetSpec, error) {
	spec, err := LoadSpec[AudioSetSpec]("audio.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
