package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

//go:embed *.json
var LevelsFS embed.FS

// ErrInvalidDefinition is returned for level files that fail validation.
var ErrInvalidDefinition = errors.New("invalid level definition")

// Definition is the immutable layout of one level.
type Definition struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Background   string   `json:"background"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Boss         bool     `json:"boss,omitempty"`
	Spawn        Point    `json:"spawn"`
	Goal         Box      `json:"goal"`
	Platforms    []Tile   `json:"platforms"`
	Enemies      []Entity `json:"enemies"`
	Collectibles []Entity `json:"collectibles"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Tile is a static platform placement.
type Tile struct {
	Box
	Type string `json:"type"`
}

// Entity is an enemy or collectible spawn.
type Entity struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// Validate checks the structural invariants of a definition. Type tags are
// checked by the code that instantiates them.
func (d Definition) Validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidDefinition, d.ID)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: level %d has size %vx%v", ErrInvalidDefinition, d.ID, d.Width, d.Height)
	}
	if d.Goal.Width <= 0 || d.Goal.Height <= 0 {
		return fmt.Errorf("%w: level %d goal has no area", ErrInvalidDefinition, d.ID)
	}
	for i, p := range d.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: level %d platform %d has no area", ErrInvalidDefinition, d.ID, i)
		}
	}
	return nil
}

func loadDefinition(fsys fs.FS, name string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &def, nil
}

// LoadAll reads every *.json level in fsys, sorted by id. Duplicate ids are
// rejected.
func LoadAll(fsys fs.FS) ([]Definition, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defs := make([]Definition, 0, len(names))
	seen := make(map[int]string, len(names))
	for _, name := range names {
		def, err := loadDefinition(fsys, path.Clean(name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%w: id %d in both %s and %s", ErrInvalidDefinition, def.ID, prev, name)
		}
		seen[def.ID] = name
		defs = append(defs, *def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// Builtin returns the embedded level set.
func Builtin() ([]Definition, error) {
	return LoadAll(LevelsFS)
}

// Dir is the on-disk level directory. When it holds level files they
// replace the embedded set.
const Dir = "levels"

// Load returns the on-disk levels if there are any, else the embedded ones.
func Load() ([]Definition, error) {
	disk := os.DirFS(Dir)
	if names, err := fs.Glob(disk, "*.json"); err == nil && len(names) > 0 {
		return LoadAll(disk)
	}
	return Builtin()
}
