package assets

import (
	"image/color"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/prefabs"
)

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"sprites/coin.png", "sprites/coin.png"},
		{"assets/sprites/coin.png", "sprites/coin.png"},
		{"/home/me/game/assets/audio/jump.wav", "audio/jump.wav"},
		{"/tmp/coin.png", "coin.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanAssetPath(tt.in); got != tt.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOverlayFSPrefersFirstLayer(t *testing.T) {
	top := fstest.MapFS{"a.txt": {Data: []byte("top")}}
	bottom := fstest.MapFS{
		"a.txt": {Data: []byte("bottom")},
		"b.txt": {Data: []byte("only bottom")},
	}
	o := overlayFS{top, bottom}

	read := func(name string) string {
		f, err := o.Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		return string(b)
	}
	if got := read("a.txt"); got != "top" {
		t.Fatalf("a.txt = %q", got)
	}
	if got := read("b.txt"); got != "only bottom" {
		t.Fatalf("b.txt = %q", got)
	}
	if _, err := o.Open("c.txt"); !IsNotExist(err) {
		t.Fatalf("missing file: %v", err)
	}
	if _, err := fs.ReadFile(o, "b.txt"); err != nil {
		t.Fatalf("ReadFile through overlay: %v", err)
	}
}

func TestLibraryToleratesMissingAssets(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/broken.png": {Data: []byte("not a png")},
	}
	lib := newLibrary(fsys, log.New(io.Discard))
	if lib.Ready() {
		t.Fatalf("ready before load")
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	spec := &prefabs.AnimationSetSpec{
		Images: []prefabs.ImageSpec{
			{Name: "hero_idle", Path: "sprites/hero.png"},
			{Name: "broken", Path: "sprites/broken.png"},
		},
		Clips: []prefabs.AnimationDefSpec{
			{Name: "hero_idle", Sheet: "hero_idle", FrameCount: 4, FrameW: 32, FrameH: 32, DurationMS: 200},
		},
		Fallbacks: map[string]prefabs.YAMLColor{"enemy": {Color: red}},
	}
	<-lib.LoadAsync(spec)

	if !lib.Ready() {
		t.Fatalf("not ready after load")
	}
	if _, ok := lib.Clip("hero_idle"); ok {
		t.Fatalf("clip without a sheet reported as loaded")
	}
	if _, ok := lib.Image("broken"); ok {
		t.Fatalf("undecodable image reported as loaded")
	}
	if _, ok := lib.Frame("hero_idle", 0); ok {
		t.Fatalf("frame of a missing clip")
	}
	if got := lib.Color("enemy", color.White); got != red {
		t.Fatalf("palette override = %v", got)
	}
	if got := lib.Color("unknown", color.White); got != color.White {
		t.Fatalf("default colour = %v", got)
	}
}

func TestClipFromDef(t *testing.T) {
	c := clipFromDef(prefabs.AnimationDefSpec{Name: "coin_anim", Sheet: "coin_anim", FrameCount: 6, FrameW: 16, FrameH: 16, DurationMS: 125})
	if c.FrameDuration != 0.125 || c.FrameCount != 6 || c.Name != "coin_anim" {
		t.Fatalf("clip %+v", c)
	}
}

func TestEmbeddedSheetsCoverClips(t *testing.T) {
	spec, err := prefabs.LoadAnimationSetSpec()
	if err != nil {
		t.Fatalf("load animations: %v", err)
	}
	widths := map[string]int{}
	for _, is := range spec.Images {
		img, err := decodeImage(assetsFS, is.Path)
		if err != nil {
			t.Fatalf("image %s: %v", is.Name, err)
		}
		widths[is.Name] = img.Bounds().Dx()
	}
	for _, c := range spec.Clips {
		w, ok := widths[c.Sheet]
		if !ok {
			t.Fatalf("clip %s: sheet %s not declared", c.Name, c.Sheet)
		}
		if w < c.FrameCount*c.FrameW {
			t.Fatalf("clip %s: sheet is %dpx wide, need %d", c.Name, w, c.FrameCount*c.FrameW)
		}
	}
}
