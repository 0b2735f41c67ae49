package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/common"
)

var (
	flagLevel int
	flagDebug bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Controls:
  A/D, Left/Right   - Move
  Space/W/Up        - Jump
  X/Z               - Attack
  Esc/P             - Pause
  Enter             - Confirm menu
  F3                - Toggle debug overlay

Examples:
  platformer play
  platformer play --level 5
  platformer play --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start from (default: config start_level)")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug overlay and goal areas")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)
	logger.Debug("config loaded", "source", cfg.Source)

	game, err := NewGame(cfg, logger, GameOptions{StartLevel: flagLevel, Debug: flagDebug})
	if err != nil {
		return err
	}
	defer game.Close()

	scale := cfg.Window.Scale
	ebiten.SetWindowSize(int(common.BaseWidth*scale), int(common.BaseHeight*scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}
