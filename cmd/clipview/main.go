// clipview plays animation clips from prefabs/animations.yaml so sheets can
// be checked without running the game. Left/Right switch clips.
package main

import (
	"fmt"
	"image/color"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

const viewSize = 512

type viewer struct {
	lib   *assets.Library
	names []string
	index int
	anim  component.Animation
	scale float64
}

func (v *viewer) Update() error {
	if len(v.names) == 0 {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.index = (v.index + 1) % len(v.names)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.index = (v.index + len(v.names) - 1) % len(v.names)
	}
	v.anim.Play(v.names[v.index])
	v.anim.Update(1.0/float64(ebiten.TPS()), v.lib)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	if !v.lib.Ready() {
		ebitenutil.DebugPrint(screen, "loading...")
		return
	}
	if len(v.names) == 0 {
		ebitenutil.DebugPrint(screen, "no clips")
		return
	}

	name := v.names[v.index]
	clip, _ := v.lib.Clip(name)
	frame := v.anim.FrameIndex(clip.FrameCount)
	if img, ok := v.lib.Frame(name, frame); ok {
		fw := float64(img.Bounds().Dx()) * v.scale
		fh := float64(img.Bounds().Dy()) * v.scale
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.scale, v.scale)
		op.GeoM.Translate((viewSize-fw)/2, (viewSize-fh)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  %.0fms\n<- -> switch clip",
		name, frame+1, clip.FrameCount, clip.FrameDuration*1000))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func run(clip string, scale float64) error {
	spec, err := prefabs.LoadAnimationSetSpec()
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "clipview"})

	names := make([]string, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		names = append(names, c.Name)
	}
	slices.Sort(names)

	v := &viewer{lib: assets.NewLibrary(logger), names: names, scale: scale}
	if clip != "" {
		i := slices.Index(names, clip)
		if i < 0 {
			return fmt.Errorf("unknown clip %q", clip)
		}
		v.index = i
	}
	v.lib.LoadAsync(spec)

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("clipview")
	return ebiten.RunGame(v)
}

func main() {
	var (
		clip  string
		scale float64
	)
	cmd := &cobra.Command{
		Use:   "clipview",
		Short: "Preview animation clips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(clip, scale)
		},
	}
	cmd.Flags().StringVar(&clip, "clip", "", "Clip to show first")
	cmd.Flags().Float64Var(&scale, "scale", 2, "Zoom factor")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
