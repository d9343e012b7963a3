package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/game"
)

// OverlayScene 主页上方叠加开场动画
//
// 先画主页再画开场；开场结束（OnDone）后卸载序列，此后只更新和绘制主页。
type OverlayScene struct {
	host      Scene
	intro     *IntroScene
	introDone bool
	logger    *zap.Logger
	onDone    func()
}

// NewOverlayScene 创建叠加场景并挂载开场动画
//
// opts.OnDone 会被包装：先切换到只显示主页，再调用调用方的回调。
func NewOverlayScene(host Scene, opts IntroSceneOptions) (*OverlayScene, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &OverlayScene{
		host:   host,
		logger: logger.Named("overlay"),
		onDone: opts.OnDone,
	}
	opts.OnDone = o.handleIntroDone
	scene, err := NewIntroScene(opts)
	if err != nil {
		return nil, err
	}
	o.intro = scene
	return o, nil
}

// Name 实现 game.Named
func (o *OverlayScene) Name() string { return "OverlayScene" }

// Intro 返回开场场景；开场结束后仍可查询，但已卸载
func (o *OverlayScene) Intro() *IntroScene { return o.intro }

// IntroDone 开场是否已结束
func (o *OverlayScene) IntroDone() bool { return o.introDone }

func (o *OverlayScene) handleIntroDone() {
	if o.introDone {
		return
	}
	o.introDone = true
	o.logger.Info("intro finished", zap.Bool("skipped", o.intro.Sequence().Skipped()))
	o.intro.Close()
	if o.onDone != nil {
		o.onDone()
	}
}

// Update 更新主页与开场
func (o *OverlayScene) Update(deltaTime float64) {
	if o.host != nil {
		o.host.Update(deltaTime)
	}
	if !o.introDone {
		o.intro.Update(deltaTime)
	}
}

// Draw 先主页后开场
func (o *OverlayScene) Draw(screen *ebiten.Image) {
	if o.host != nil {
		o.host.Draw(screen)
	}
	if !o.introDone {
		o.intro.Draw(screen)
	}
}

// Close 卸载开场并关闭主页
func (o *OverlayScene) Close() {
	o.intro.Close()
	if c, ok := o.host.(game.Closer); ok {
		c.Close()
	}
}
