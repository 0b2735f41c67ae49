package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefab directory. Files there shadow the embedded
// defaults and are watched for hot reload.
const Dir = "prefabs"

//go:embed *.yaml
var builtin embed.FS

// Layers resolves prefab names against file systems in priority order.
type Layers []fs.FS

// DefaultLayers reads Dir under the working directory, then the copies
// compiled into the binary.
func DefaultLayers() Layers {
	return Layers{os.DirFS(Dir), builtin}
}

// ReadFile returns name from the first layer that has it. A layer that
// fails for any reason is skipped, so a broken working copy never hides
// the built-in file.
func (l Layers) ReadFile(name string) ([]byte, error) {
	name = prefabName(name)
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	var errs []error
	for _, fsys := range l {
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("prefab %s: %w", name, fs.ErrNotExist)
	}
	return nil, errors.Join(errs...)
}

// Load reads a prefab through DefaultLayers.
func Load(name string) ([]byte, error) {
	return DefaultLayers().ReadFile(name)
}

// prefabName accepts "player.yaml" or "prefabs/player.yaml".
func prefabName(p string) string {
	s := path.Clean(filepath.ToSlash(p))
	return strings.TrimPrefix(s, Dir+"/")
}
