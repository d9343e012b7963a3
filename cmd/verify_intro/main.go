// Package main provides an intro sequence verification tool for testing and debugging
// the montage timing without the team page underneath.
//
// Usage:
//
//	go run ./cmd/verify_intro [flags]
//
// Flags:
//
//	--config <path>     Intro config (default: data/intro.yaml)
//	--images <n>        Override the montage image count
//	--width/--height    Window size (use 375x812 to check the phone layout)
//	--safe-top/bottom   Safe-area insets for the phone layout
//	--speed <factor>    Playback speed multiplier (default: 1)
//	--verbose           Enable verbose logging
//
// Controls:
//
//	Space/ESC  - Skip intro
//	R          - Restart intro from beginning
//	Q          - Quit
//
// Purpose:
//   - Quickly check montage pacing and darkness ramp
//   - Verify the skip button hit area on phone and desktop layouts
//   - Adjust timing constants in the YAML and compare
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/cougarbots/site/internal/logging"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/scenes"
	"github.com/cougarbots/site/pkg/utils"
)

var (
	configFlag     = flag.String("config", config.DefaultIntroConfigPath, "Intro config path")
	imagesFlag     = flag.Int("images", 0, "Override montage image count")
	widthFlag      = flag.Int("width", config.WindowWidth, "Window width")
	heightFlag     = flag.Int("height", config.WindowHeight, "Window height")
	safeTopFlag    = flag.Int("safe-top", 0, "Top safe-area inset")
	safeBottomFlag = flag.Int("safe-bottom", 0, "Bottom safe-area inset")
	speedFlag      = flag.Float64("speed", 1, "Playback speed multiplier")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
)

var errQuit = errors.New("quit")

// IntroVerifyGame implements ebiten.Game interface for intro verification
type IntroVerifyGame struct {
	cfg      *config.IntroConfig
	rm       *game.ResourceManager
	viewport *intro.Viewport
	logger   *zap.Logger

	scene    *scenes.IntroScene
	finished int
}

// NewIntroVerifyGame creates a new intro verification game
func NewIntroVerifyGame(cfg *config.IntroConfig, logger *zap.Logger) (*IntroVerifyGame, error) {
	g := &IntroVerifyGame{
		cfg:      cfg,
		rm:       game.NewResourceManager(logger),
		viewport: intro.NewViewport(*widthFlag, *heightFlag),
		logger:   logger,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *IntroVerifyGame) restart() error {
	if g.scene != nil {
		g.scene.Close()
	}
	scene, err := scenes.NewIntroScene(scenes.IntroSceneOptions{
		Resources: g.rm,
		Config:    g.cfg,
		Viewport:  g.viewport,
		SafeArea:  utils.SafeArea{Top: *safeTopFlag, Bottom: *safeBottomFlag},
		Logger:    g.logger,
		OnDone: func() {
			g.finished++
			g.logger.Info("intro done", zap.Int("runs", g.finished))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create intro scene: %w", err)
	}
	g.scene = scene
	return nil
}

// Update updates the intro
func (g *IntroVerifyGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.logger.Info("restarting intro")
		if err := g.restart(); err != nil {
			g.logger.Warn("failed to restart", zap.Error(err))
		}
		return nil
	}

	dt := *speedFlag / float64(ebiten.TPS())
	g.scene.Update(dt)
	return nil
}

// Draw renders the intro and the debug overlay
func (g *IntroVerifyGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 40, G: 40, B: 40, A: 255})
	g.scene.Draw(screen)

	seq := g.scene.Sequence()
	status := "ESC/Space to skip | R to restart | Q to quit"
	if seq.Done() {
		status = "Intro completed! Press R to restart, Q to quit"
	}
	w, h := g.viewport.Size()
	debugText := fmt.Sprintf(
		"Intro Verifier (%s %dx%d)\n"+
			"Phase: %s | Image: %d/%d | Cadence: %.0fms\n"+
			"Darkness: %.2f | Caption: %s | Elapsed: %s\n"+
			"%s",
		intro.ClassifyViewport(w, h), w, h,
		seq.Phase(), seq.Index()+1, seq.ImageCount(), seq.Cadence(),
		seq.Darkness(), seq.Caption(), seq.Elapsed(),
		status,
	)
	ebitenutil.DebugPrintAt(screen, debugText, 8, h-64)
}

// Layout follows the window so the device class can change on resize
func (g *IntroVerifyGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.viewport.Resize(outsideWidth, outsideHeight)
	}
	return g.viewport.Size()
}

func main() {
	flag.Parse()

	logger, err := logging.New(*verboseFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadIntroConfig(*configFlag)
	if err != nil {
		logger.Fatal("failed to load intro config", zap.Error(err))
	}
	if *imagesFlag > 0 {
		cfg.ImageCount = *imagesFlag
	}

	g, err := NewIntroVerifyGame(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create verifier", zap.Error(err))
	}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Intro Verifier - " + config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		logger.Fatal("game error", zap.Error(err))
	}
	g.scene.Close()
	logger.Info("verifier closed")
}
