package intro

import (
	"math"
	"time"
)

// backdropGradientSpread 背景渐变底部相对顶部增加的暗度
const (
	backdropGradientSpread = 0.14
	backdropMaxDarkness    = 0.98
)

// State 渲染所需的只读快照
type State struct {
	Phase          Phase
	Index          int
	Image          string
	Darkness       float64
	BackdropBottom float64
	Caption        CaptionLine
	CaptionVisible bool
	Flash          bool
	ShowTitle      bool
	ShowSubtitle   bool
	SlideUp        bool
	SlideProgress  float64
	Tilt           float64
	IsPhone        bool
	Interactive    bool
}

// Phase 当前阶段
func (s *Sequence) Phase() Phase { return s.phase }

// Index 当前蒙太奇游标，范围 [0, imageCount-1]
func (s *Sequence) Index() int { return s.index }

// ImageCount 蒙太奇图片数量
func (s *Sequence) ImageCount() int { return len(s.images) }

// CurrentImage 当前游标对应的图片路径
func (s *Sequence) CurrentImage() string { return s.images[s.index] }

// Cadence 当前推进间隔（毫秒）
func (s *Sequence) Cadence() float64 { return s.cadence }

// Darkness 当前遮罩暗度 [0, 1]
func (s *Sequence) Darkness() float64 { return s.darkness }

// Caption 当前文案选择器，仅在 montage 阶段有意义
func (s *Sequence) Caption() CaptionLine { return s.caption }

// CaptionVisible 文案是否可见
func (s *Sequence) CaptionVisible() bool { return s.phase == PhaseMontage }

// Flash 闪白脉冲是否可见（只在 montage 阶段显示）
func (s *Sequence) Flash() bool { return s.flash && s.phase == PhaseMontage }

// ShowTitle 标题块是否可见
func (s *Sequence) ShowTitle() bool { return s.showTitle }

// ShowSubtitle 副标题块是否可见
func (s *Sequence) ShowSubtitle() bool { return s.showSubtitle }

// IsPhone 当前视口是否为手机
func (s *Sequence) IsPhone() bool { return s.isPhone }

// Done 是否已进入终止状态
func (s *Sequence) Done() bool { return s.phase == PhaseDone }

// Skipped 是否通过 Skip 结束
func (s *Sequence) Skipped() bool { return s.skipped }

// Interactive 遮罩是否仍拦截输入；done 之后完全移出屏幕，不再拦截
func (s *Sequence) Interactive() bool { return s.phase != PhaseDone && !s.unmounted }

// PendingTimers 当前未触发的计时器数量
func (s *Sequence) PendingTimers() int { return len(s.timers) }

// BackdropBottom 背景渐变底部的暗度
func (s *Sequence) BackdropBottom() float64 {
	return math.Min(backdropMaxDarkness, s.darkness+backdropGradientSpread)
}

// Tilt 当前图片的倾斜角度，离开 montage 后回正
func (s *Sequence) Tilt() float64 {
	if s.phase != PhaseMontage {
		return 0
	}
	return TiltDegrees(s.index)
}

// SlideProgress 上滑动画的线性进度 [0, 1]
//
// 缓动曲线由渲染层决定。done 之后恒为 1。
func (s *Sequence) SlideProgress() float64 {
	if s.phase == PhaseDone {
		return 1
	}
	if !s.slideUp {
		return 0
	}
	if s.timings.SlideDuration <= 0 {
		return 1
	}
	elapsed := s.sched.Now() - s.slideStart
	return clamp01(float64(elapsed) / float64(s.timings.SlideDuration))
}

// Timings 返回本次挂载使用的时间常量
func (s *Sequence) Timings() Timings { return s.timings }

// Elapsed 返回调度器时间（用于调试显示）
func (s *Sequence) Elapsed() time.Duration { return s.sched.Now() }

// Snapshot 返回当前渲染快照
func (s *Sequence) Snapshot() State {
	return State{
		Phase:          s.phase,
		Index:          s.index,
		Image:          s.CurrentImage(),
		Darkness:       s.darkness,
		BackdropBottom: s.BackdropBottom(),
		Caption:        s.caption,
		CaptionVisible: s.CaptionVisible(),
		Flash:          s.Flash(),
		ShowTitle:      s.showTitle,
		ShowSubtitle:   s.showSubtitle,
		SlideUp:        s.slideUp,
		SlideProgress:  s.SlideProgress(),
		Tilt:           s.Tilt(),
		IsPhone:        s.isPhone,
		Interactive:    s.Interactive(),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
