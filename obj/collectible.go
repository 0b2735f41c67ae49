package obj

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"golang.org/x/image/colornames"
)

var ErrUnknownCollectible = errors.New("unknown collectible type")

type CollectibleKind string

const (
	Coin         CollectibleKind = "coin"
	Orb          CollectibleKind = "orb"
	HealthPotion CollectibleKind = "health_potion"
	Apple        CollectibleKind = "apple"
	Meat         CollectibleKind = "meat"
)

const (
	floatSpeed = 2.0
	floatRange = 5.0
)

type collectibleInfo struct {
	size     float64
	clip     string // animated kinds
	image    string // static kinds
	score    int
	heal     int
	fallback color.Color
}

var collectibleTable = map[CollectibleKind]collectibleInfo{
	Coin:         {size: 16, clip: "coin_anim", score: 100, fallback: colornames.Gold},
	Orb:          {size: 16, clip: "orb_anim", score: 250, fallback: colornames.Deepskyblue},
	HealthPotion: {size: 20, image: "health_potion", score: 50, heal: 1, fallback: colornames.Deeppink},
	Apple:        {size: 20, image: "apple_item", score: 50, heal: 1, fallback: colornames.Red},
	Meat:         {size: 20, image: "meat_item", score: 50, heal: 1, fallback: colornames.Saddlebrown},
}

// ParseCollectibleKind maps a level file tag to a kind.
func ParseCollectibleKind(tag string) (CollectibleKind, error) {
	k := CollectibleKind(tag)
	if _, ok := collectibleTable[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollectible, tag)
	}
	return k, nil
}

// Collectible is a pickup that bobs around its spawn height until collected.
type Collectible struct {
	Kind CollectibleKind

	rect      common.Rect
	originY   float64
	phase     float64
	collected bool
	anim      component.Animation
	clips     component.ClipSource
	info      collectibleInfo
}

func NewCollectible(kind CollectibleKind, x, y float64, clips component.ClipSource) (*Collectible, error) {
	info, ok := collectibleTable[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollectible, kind)
	}
	return &Collectible{
		Kind:    kind,
		rect:    common.NewRect(x, y, info.size, info.size),
		originY: y,
		anim:    component.NewAnimation(info.clip),
		clips:   clips,
		info:    info,
	}, nil
}

// Update advances the bob and, for animated kinds, the frame cursor. The
// bob runs whether or not the item has been collected.
func (c *Collectible) Update(dt float64) {
	c.phase += floatSpeed * dt
	c.rect.Y = c.originY + math.Sin(c.phase)*floatRange
	if c.info.clip != "" {
		c.anim.Update(dt, c.clips)
	}
}

// Collect marks the item collected. It returns false if it already was.
func (c *Collectible) Collect() bool {
	if c.collected {
		return false
	}
	c.collected = true
	return true
}

func (c *Collectible) IsCollected() bool   { return c.collected }
func (c *Collectible) Bounds() common.Rect { return c.rect }
func (c *Collectible) ScoreValue() int     { return c.info.score }

// HealAmount is the health restored on pickup, 0 for non-healing items.
func (c *Collectible) HealAmount() int { return c.info.heal }

func (c *Collectible) IsAnimated() bool { return c.info.clip != "" }

func (c *Collectible) Animation() component.Animation { return c.anim }

func (c *Collectible) Render(cv Canvas) {
	if c.collected {
		return
	}
	if c.info.clip != "" {
		if cv.DrawClip(c.info.clip, c.anim.Frame, c.rect, false, 1) {
			return
		}
	} else if cv.DrawImage(c.info.image, c.rect) {
		return
	}
	if !cv.Ready() {
		return
	}
	cv.FillRect(c.rect, cv.Color(string(c.Kind), c.info.fallback))
}
