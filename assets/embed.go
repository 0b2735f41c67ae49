package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed sprites tiles hud audio
var assetsFS embed.FS

// Dir is the on-disk asset directory. Files there shadow embedded ones so
// sprites and sounds can be dropped in without rebuilding.
const Dir = "assets"

// overlayFS serves the first layer that has the file.
type overlayFS []fs.FS

func (o overlayFS) Open(name string) (fs.File, error) {
	var first error
	for _, layer := range o {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return nil, first
}

// FS returns the asset tree: the disk directory over the embedded files.
func FS() fs.FS {
	return overlayFS{os.DirFS(Dir), assetsFS}
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return readFile(FS(), path)
}

func readFile(fsys fs.FS, path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path: %w", fs.ErrNotExist)
	}
	return fs.ReadFile(fsys, clean)
}

// LoadImage loads and decodes an image asset.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := decodeImage(FS(), path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	b, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadPCM loads an audio asset as PCM in ctx's format. WAV files are
// decoded; anything else is assumed to already be raw PCM.
func LoadPCM(ctx *audio.Context, path string) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("assets: nil audio context")
	}
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(cleanAssetPath(path)), ".wav") {
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return pcm, nil
}

// IsNotExist reports whether err means the asset is simply absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
