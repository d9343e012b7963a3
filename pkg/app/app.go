// Package app 提供站点应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 cobra 的 play 命令调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/scenes"
	"github.com/cougarbots/site/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Logger 为空时不输出日志
	Logger *zap.Logger
	// Intro 开场动画配置；为空时从 IntroConfigPath 加载
	Intro *config.IntroConfig
	// IntroConfigPath 开场动画配置路径，为空使用 data/intro.yaml
	IntroConfigPath string
	// SkipIntro 直接显示主页（用于调试主页排版）
	SkipIntro bool
	// SafeArea 手机安全区
	SafeArea utils.SafeArea
	// Settings 窗口设置持久化；为空时不保存
	Settings *game.SettingsManager
	// Width/Height 初始视口尺寸，为零时使用默认窗口尺寸
	Width, Height int
}

// App 是站点应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	resources    *game.ResourceManager
	settings     *game.SettingsManager
	viewport     *intro.Viewport
	logger       *zap.Logger
	verbose      bool

	introDone                bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	lastWidth, lastHeight    int  // 最近一次非零的外部尺寸
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时资源从工作目录读取。
func NewApp(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	introCfg := cfg.Intro
	if introCfg == nil {
		path := cfg.IntroConfigPath
		if path == "" {
			path = config.DefaultIntroConfigPath
		}
		loaded, err := config.LoadIntroConfig(path)
		if err != nil {
			return nil, fmt.Errorf("开场动画配置加载失败: %w", err)
		}
		introCfg = loaded
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = config.WindowWidth, config.WindowHeight
	}

	a := &App{
		resources:  game.NewResourceManager(logger),
		settings:   cfg.Settings,
		viewport:   intro.NewViewport(width, height),
		logger:     logger.Named("app"),
		verbose:    cfg.Verbose,
		lastWidth:  width,
		lastHeight: height,
	}
	a.sceneManager = game.NewSceneManager(logger)

	host := scenes.NewHostScene(a.resources, a.viewport, introCfg.LogoPath, logger)
	if cfg.SkipIntro {
		a.introDone = true
		a.sceneManager.SwitchTo(host)
		a.logger.Info("intro skipped by configuration")
		return a, nil
	}

	overlay, err := scenes.NewOverlayScene(host, scenes.IntroSceneOptions{
		Resources: a.resources,
		Config:    introCfg,
		Viewport:  a.viewport,
		SafeArea:  cfg.SafeArea,
		Logger:    logger,
		OnDone: func() {
			a.introDone = true
		},
	})
	if err != nil {
		return nil, fmt.Errorf("开场动画初始化失败: %w", err)
	}
	a.sceneManager.SwitchTo(overlay)
	a.logger.Debug("app ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("device", intro.ClassifyViewport(width, height)))
	return a, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.windowSize()
			ebiten.SetWindowSize(w, h)
			a.logger.Debug("delayed window resize", zap.Int("width", w), zap.Int("height", h))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	if a.settings != nil {
		a.settings.SetFullscreen(fullscreen)
	}
	a.logger.Debug("fullscreen toggled", zap.Bool("fullscreen", fullscreen))
}

func (a *App) windowSize() (int, int) {
	if a.settings != nil {
		s := a.settings.GetSettings()
		return s.WindowWidth, s.WindowHeight
	}
	return config.WindowWidth, config.WindowHeight
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 逻辑尺寸等于窗口尺寸，这里只负责黑底和线性滤波
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸直接跟随外部尺寸，尺寸变化（包括横竖屏切换）会通知视口，
// 开场动画据此重新判断设备类别。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.lastWidth, a.lastHeight
	}
	a.lastWidth, a.lastHeight = outsideWidth, outsideHeight
	a.viewport.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 关闭场景并保存窗口设置
func (a *App) Close() {
	a.sceneManager.Close()
	if a.settings == nil {
		return
	}
	if !a.settings.GetSettings().Fullscreen {
		a.settings.SetWindowSize(a.lastWidth, a.lastHeight)
	}
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save settings", zap.Error(err))
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Viewport 返回应用的视口
func (a *App) Viewport() *intro.Viewport {
	return a.viewport
}

// IntroDone 开场动画是否已结束
func (a *App) IntroDone() bool {
	return a.introDone
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
