// Package intro 实现站点开场动画的时间状态机
//
// Sequence 只管理状态与计时：蒙太奇游标、节奏、暗度、文案切换、
// 标题编排、Skip 和卸载。渲染由宿主（ebiten 场景或终端预览）读取
// Snapshot 完成。所有计时器都通过 Scheduler 安排，在宿主主循环中串行触发。
package intro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoImages 没有提供蒙太奇图片
	ErrNoImages = errors.New("intro: no montage images")
	// ErrNoScheduler 没有提供调度器
	ErrNoScheduler = errors.New("intro: scheduler is required")
)

// Options 挂载参数
type Options struct {
	Images    []string    // 蒙太奇图片路径，按播放顺序
	Timings   Timings     // 零值表示 DefaultTimings()
	Scheduler Scheduler   // 必填
	Viewport  *Viewport   // 可选，nil 时按桌面处理
	Preloader Preloader   // 可选
	Logger    *zap.Logger // 可选
	OnDone    func()      // 完成回调，每次挂载恰好触发一次
}

// Sequence 开场动画控制器
//
// 控制器独占全部状态；宿主只通过 OnDone 得知 "intro is done"。
type Sequence struct {
	id      string
	images  []string
	timings Timings
	sched   Scheduler
	logger  *zap.Logger
	onDone  func()

	phase        Phase
	index        int
	cadence      float64 // 当前推进间隔（毫秒），跨 tick 持续衰减
	darkness     float64
	caption      CaptionLine
	flash        bool
	showTitle    bool
	showSubtitle bool
	slideUp      bool
	slideStart   time.Duration
	skipped      bool
	isPhone      bool

	timers      map[timerKind]Timer
	unsubscribe func()
	doneFired   bool
	unmounted   bool
}

// Mount 创建并启动开场动画
//
// 挂载时预加载全部图片、同步计算设备类型并订阅视口变化，
// 然后进入 montage 阶段。
func Mount(opts Options) (*Sequence, error) {
	if len(opts.Images) == 0 {
		return nil, ErrNoImages
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if err := opts.Timings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intro timings: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Sequence{
		id:      uuid.NewString(),
		images:  append([]string(nil), opts.Images...),
		timings: opts.Timings,
		sched:   opts.Scheduler,
		onDone:  opts.OnDone,
		timers:  make(map[timerKind]Timer),
	}
	s.logger = logger.Named("intro").With(zap.String("sequence", s.id))

	if opts.Preloader != nil {
		opts.Preloader.Preload(append([]string(nil), s.images...))
	}

	if opts.Viewport != nil {
		s.isPhone = IsPhone(opts.Viewport.Size())
		s.unsubscribe = opts.Viewport.Subscribe(s.onResize)
	}

	s.logger.Debug("mounted",
		zap.Int("images", len(s.images)),
		zap.Bool("phone", s.isPhone))

	s.enterMontage()
	return s, nil
}

// ID 返回本次挂载的唯一标识（用于日志关联）
func (s *Sequence) ID() string {
	return s.id
}

// Skip 立即跳到 reveal → done 的压缩路径
//
// 已处于 reveal/done 或已卸载时什么也不做，因此重复调用只会触发一次完成回调。
func (s *Sequence) Skip() {
	if s.unmounted || s.phase >= PhaseReveal {
		return
	}
	s.cancelAll()
	s.skipped = true
	s.setPhase(PhaseReveal)
	s.flash = false
	s.showTitle = false
	s.showSubtitle = false
	s.darkness = s.timings.RevealDarkness
	s.startSlide()
	s.arm(timerFinish, s.timings.SkipDelay, s.finish)
}

// Unmount 释放全部计时器与视口订阅，之后不会再有任何回调
func (s *Sequence) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.cancelAll()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.logger.Debug("unmounted", zap.Stringer("phase", s.phase))
}

// --- 阶段转换 ---

func (s *Sequence) enterMontage() {
	s.setPhase(PhaseMontage)
	s.index = 0
	s.cadence = durationMillis(s.timings.InitialDelay)
	s.darkness = s.timings.InitialDarkness
	s.caption = CaptionLine1

	s.arm(timerCaption, s.timings.CaptionDelay, func() {
		s.caption = CaptionLine2
	})
	s.arm(timerTick, s.cadenceDuration(), s.advance)
}

// advance 蒙太奇推进一步
//
// 游标、节奏、暗度全部提交之后才安排下一次 tick。
func (s *Sequence) advance() {
	if s.phase != PhaseMontage {
		return
	}
	next := s.index + 1

	s.flash = true
	s.arm(timerFlash, s.timings.FlashLength, func() {
		s.flash = false
	})

	s.cadence = math.Max(durationMillis(s.timings.MinDelay), s.cadence*s.timings.DecayFactor)
	s.darkness = math.Min(s.timings.MontageCeiling, s.darkness+s.timings.DarknessStep)

	if next >= len(s.images) {
		s.index = len(s.images) - 1
		s.darkness = s.timings.EndDarkness
		s.arm(timerTitle, s.timings.TitleDelay, s.enterTitle)
		return
	}

	s.index = next
	s.arm(timerTick, s.cadenceDuration(), s.advance)
}

func (s *Sequence) enterTitle() {
	s.cancel(montageTimers...)
	s.setPhase(PhaseTitle)
	s.flash = false
	s.showTitle = true
	s.showSubtitle = false
	s.darkness = s.timings.TitleDarkness
	s.arm(timerDwell, s.timings.TitleDwell, s.enterSubtitle)
}

func (s *Sequence) enterSubtitle() {
	s.setPhase(PhaseSubtitle)
	s.showTitle = false
	s.showSubtitle = true
	s.darkness = s.timings.SubtitleDark
	s.arm(timerDwell, s.timings.SubtitleDwell, s.enterReveal)
}

func (s *Sequence) enterReveal() {
	s.setPhase(PhaseReveal)
	s.showSubtitle = false
	s.darkness = s.timings.RevealDarkness
	s.arm(timerSlideUp, s.timings.SlideUpDelay, s.startSlide)
	s.arm(timerFinish, s.timings.RevealDuration, s.finish)
}

func (s *Sequence) startSlide() {
	if s.slideUp {
		return
	}
	s.slideUp = true
	s.slideStart = s.sched.Now()
}

// finish 进入终止状态并触发完成回调（至多一次）
func (s *Sequence) finish() {
	if s.doneFired {
		return
	}
	s.doneFired = true
	s.cancelAll()
	s.setPhase(PhaseDone)
	s.logger.Debug("completed", zap.Bool("skipped", s.skipped))
	if s.onDone != nil {
		s.onDone()
	}
}

func (s *Sequence) setPhase(p Phase) {
	if s.phase != p {
		s.logger.Debug("phase changed",
			zap.Stringer("from", s.phase),
			zap.Stringer("to", p),
			zap.Duration("at", s.sched.Now()))
	}
	s.phase = p
}

func (s *Sequence) onResize(width, height int) {
	phone := IsPhone(width, height)
	if phone != s.isPhone {
		s.logger.Debug("device class changed",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Bool("phone", phone))
	}
	s.isPhone = phone
}

// --- 计时器管理 ---

// arm 先取消同类计时器再安排新的回调
func (s *Sequence) arm(kind timerKind, d time.Duration, fn func()) {
	s.cancel(kind)
	var t Timer
	t = s.sched.AfterFunc(d, func() {
		// 被替换或已取消的计时器即使迟到也不能生效
		if cur, ok := s.timers[kind]; !ok || cur != t {
			return
		}
		delete(s.timers, kind)
		if s.unmounted {
			return
		}
		fn()
	})
	s.timers[kind] = t
}

func (s *Sequence) cancel(kinds ...timerKind) {
	for _, kind := range kinds {
		if t, ok := s.timers[kind]; ok {
			t.Stop()
			delete(s.timers, kind)
		}
	}
}

func (s *Sequence) cancelAll() {
	for kind, t := range s.timers {
		t.Stop()
		delete(s.timers, kind)
	}
}

func (s *Sequence) cadenceDuration() time.Duration {
	return millisDuration(s.cadence)
}
