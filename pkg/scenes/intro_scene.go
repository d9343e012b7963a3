package scenes

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/clock"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/utils"
)

// 过渡时长（秒），与站点 CSS 一致
const (
	flashFadeSeconds    = 0.075
	captionFadeSeconds  = 0.5
	overlayFadeSeconds  = 0.3
	titleFadeSeconds    = 0.5
	montageTiltSeconds  = 0.12
	settleTiltSeconds   = 0.3
	hiddenBlockOffsetPx = 8.0
	montageZoom         = 1.02
)

// IntroSceneOptions 创建开场场景的参数
type IntroSceneOptions struct {
	Resources *game.ResourceManager
	Config    *config.IntroConfig
	Viewport  *intro.Viewport
	SafeArea  utils.SafeArea
	Logger    *zap.Logger
	OnDone    func()
}

// IntroScene 用 ebiten 绘制 intro.Sequence 的快照
//
// 场景持有一个虚拟时钟，每帧按 deltaTime 推进；序列的所有计时器都在
// Update 中串行触发。Close 会卸载序列，之后 Update/Draw 均为空操作。
type IntroScene struct {
	rm       *game.ResourceManager
	cfg      *config.IntroConfig
	clock    *clock.Clock
	seq      *intro.Sequence
	viewport *intro.Viewport
	safe     utils.SafeArea
	logger   *zap.Logger

	layout     IntroLayout
	layoutSize [2]int
	layoutDev  bool

	canvas   *ebiten.Image // 整个覆盖层先画到这里，再整体上滑
	portrait *ebiten.Image
	pixel    *ebiten.Image

	// CSS 过渡的当前值
	flashFade    fader
	line1Fade    fader
	line2Fade    fader
	overlayFade  fader
	titleFade    fader
	subtitleFade fader
	tilt         float64
	zoom         float64

	closed bool
}

// NewIntroScene 挂载开场序列并创建场景
func NewIntroScene(opts IntroSceneOptions) (*IntroScene, error) {
	if opts.Resources == nil {
		return nil, fmt.Errorf("intro scene: resource manager is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &IntroScene{
		rm:           opts.Resources,
		cfg:          cfg,
		clock:        clock.New(),
		viewport:     opts.Viewport,
		safe:         opts.SafeArea,
		logger:       logger.Named("intro-scene"),
		flashFade:    fader{duration: flashFadeSeconds},
		line1Fade:    fader{duration: captionFadeSeconds},
		line2Fade:    fader{duration: captionFadeSeconds},
		overlayFade:  fader{duration: overlayFadeSeconds},
		titleFade:    fader{duration: titleFadeSeconds},
		subtitleFade: fader{duration: titleFadeSeconds},
		zoom:         montageZoom,
	}

	seq, err := intro.Mount(intro.Options{
		Images:    cfg.ImagePaths(),
		Timings:   cfg.Timings.ToIntro(),
		Scheduler: s.clock,
		Viewport:  opts.Viewport,
		Preloader: opts.Resources,
		Logger:    logger,
		OnDone:    opts.OnDone,
	})
	if err != nil {
		return nil, fmt.Errorf("mount intro: %w", err)
	}
	s.seq = seq
	s.line1Fade.value = 1
	s.tilt = seq.Tilt()

	// 队徽与图片一起在后台解码
	if cfg.LogoPath != "" {
		opts.Resources.Preload([]string{cfg.LogoPath})
	}
	return s, nil
}

// Name 实现 game.Named
func (s *IntroScene) Name() string { return "IntroScene" }

// Sequence 返回底层状态机
func (s *IntroScene) Sequence() *intro.Sequence { return s.seq }

// Clock 返回驱动序列的虚拟时钟
func (s *IntroScene) Clock() *clock.Clock { return s.clock }

// Layout 返回当前视口下的布局
func (s *IntroScene) Layout() IntroLayout {
	s.refreshLayout()
	return s.layout
}

// Update 处理输入并推进虚拟时钟
func (s *IntroScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.pollInput()
	s.Tick(deltaTime)
}

// Tick 推进时钟与过渡动画，不读取输入
func (s *IntroScene) Tick(deltaTime float64) {
	if s.closed {
		return
	}
	s.clock.AdvanceSeconds(deltaTime)
	s.stepTransitions(deltaTime)
}

func (s *IntroScene) pollInput() {
	if utils.IsSkipKeyJustPressed() {
		s.RequestSkip()
		return
	}
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.HandleTap(x, y)
	}
}

// HandleTap 点击落在 Skip 按钮上时跳过，返回是否命中
func (s *IntroScene) HandleTap(x, y int) bool {
	if s.closed || !s.seq.Interactive() {
		return false
	}
	if !s.Layout().HitSkip(x, y) {
		return false
	}
	s.RequestSkip()
	return true
}

// RequestSkip 跳到揭幕阶段，重复调用无副作用
func (s *IntroScene) RequestSkip() {
	if s.closed {
		return
	}
	if s.seq.Interactive() && s.seq.Phase() < intro.PhaseReveal {
		s.logger.Debug("skip requested", zap.Stringer("phase", s.seq.Phase()))
	}
	s.seq.Skip()
}

// Done 序列是否已结束
func (s *IntroScene) Done() bool {
	return s.closed || s.seq.Done()
}

// Close 卸载序列，取消所有挂起的计时器
func (s *IntroScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.seq.Unmount()
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}
	if s.portrait != nil {
		s.portrait.Deallocate()
		s.portrait = nil
	}
}

func (s *IntroScene) stepTransitions(dt float64) {
	st := s.seq.Snapshot()
	montage := st.Phase == intro.PhaseMontage

	s.flashFade.step(st.Flash, dt)
	s.line1Fade.step(montage && st.Caption == intro.CaptionLine1, dt)
	s.line2Fade.step(montage && st.Caption == intro.CaptionLine2, dt)
	s.overlayFade.step(st.ShowTitle || st.ShowSubtitle, dt)
	s.titleFade.step(st.ShowTitle, dt)
	s.subtitleFade.step(st.ShowSubtitle, dt)

	tiltTarget, zoomTarget, seconds := 0.0, 1.0, settleTiltSeconds
	if montage {
		tiltTarget, zoomTarget, seconds = st.Tilt, montageZoom, montageTiltSeconds
	}
	k := math.Min(1, dt/seconds)
	s.tilt += (tiltTarget - s.tilt) * k
	s.zoom += (zoomTarget - s.zoom) * k
}

// refreshLayout 视口或设备类别变化时重新计算布局
func (s *IntroScene) refreshLayout() {
	w, h := config.WindowWidth, config.WindowHeight
	if s.viewport != nil {
		w, h = s.viewport.Size()
	}
	phone := s.seq.IsPhone()
	if s.layoutSize == [2]int{w, h} && s.layoutDev == phone && s.layout.Width > 0 {
		return
	}
	s.layout = ComputeIntroLayout(w, h, phone, s.safe)
	s.layoutSize = [2]int{w, h}
	s.layoutDev = phone
}

// SlideOffset 覆盖层当前的纵向位移（像素，向上为负）
func (s *IntroScene) SlideOffset() float64 {
	s.refreshLayout()
	return -1.05 * float64(s.layout.Height) * utils.SlideUpCurve.Ease(s.seq.SlideProgress())
}

// fader 模拟 CSS opacity 过渡：以固定速率逼近目标值
type fader struct {
	value    float64
	duration float64
}

func (f *fader) step(visible bool, dt float64) {
	target := 0.0
	if visible {
		target = 1
	}
	if f.duration <= 0 {
		f.value = target
		return
	}
	delta := dt / f.duration
	if f.value < target {
		f.value = math.Min(target, f.value+delta)
	} else {
		f.value = math.Max(target, f.value-delta)
	}
}
