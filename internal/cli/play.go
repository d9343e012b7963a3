package cli

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/app"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/utils"
)

// settingsAppName gdata 存储目录名
const settingsAppName = "cougarbots"

type playOptions struct {
	skipIntro  bool
	fullscreen bool
	width      int
	height     int
}

func newPlayCommand(root *rootOptions, opts *playOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the window and play the intro over the team page",
		Long: `Opens the Ebitengine window, plays the intro and then shows the team page.

Controls:
  Esc/Space or the Skip button   skip the intro
  F11                            toggle fullscreen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(root, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.skipIntro, "skip-intro", false, "show the team page directly")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "start in fullscreen (saved setting otherwise)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "initial window width (saved setting otherwise)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "initial window height (saved setting otherwise)")
	return cmd
}

func runPlay(root *rootOptions, opts *playOptions) error {
	logger := root.logger
	utils.SetMobileEmulation(root.env.MobileEmulate)

	introCfg, err := root.loadIntro()
	if err != nil {
		return err
	}

	settings := game.OpenSettingsManager(settingsAppName, logger)
	s := settings.GetSettings()
	width, height := s.WindowWidth, s.WindowHeight
	if opts.width > 0 && opts.height > 0 {
		width, height = opts.width, opts.height
	}
	fullscreen := s.Fullscreen || opts.fullscreen

	a, err := app.NewApp(app.Config{
		Verbose:   root.verbose,
		Logger:    logger,
		Intro:     introCfg,
		SkipIntro: opts.skipIntro,
		SafeArea: utils.SafeArea{
			Top:    root.env.SafeAreaTop,
			Bottom: root.env.SafeAreaBottom,
		},
		Settings: settings,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowSizeLimits(config.MinWindowWidth, config.MinWindowHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)
	settings.SetFullscreen(fullscreen)

	logger.Info("starting window",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", fullscreen))

	runErr := ebiten.RunGame(a)
	a.Close()
	if runErr != nil {
		return fmt.Errorf("game loop: %w", runErr)
	}
	return nil
}
