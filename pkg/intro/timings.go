package intro

import (
	"fmt"
	"math"
	"time"
)

// Timings 开场动画的全部时间与亮度常量
//
// 数值属于表现层调优，可通过 YAML 配置覆盖；Validate 保证单调衰减和
// 暗度平台的先后顺序不被破坏。
type Timings struct {
	// 蒙太奇节奏
	InitialDelay time.Duration // 第一次推进前的间隔
	DecayFactor  float64       // 每次推进后间隔乘以该系数（< 1）
	MinDelay     time.Duration // 间隔下限
	FlashLength  time.Duration // 闪白脉冲持续时间
	CaptionDelay time.Duration // 文案从 line1 切换到 line2 的延迟

	// 暗度
	InitialDarkness float64 // 蒙太奇开始时的暗度
	DarknessStep    float64 // 每次推进增加的暗度
	MontageCeiling  float64 // 蒙太奇期间暗度上限
	EndDarkness     float64 // 最后一张图片后的暗度
	TitleDarkness   float64 // title 平台
	SubtitleDark    float64 // subtitle 平台
	RevealDarkness  float64 // reveal 平台

	// 阶段编排
	TitleDelay     time.Duration // 最后一次推进到进入 title 的延迟
	TitleDwell     time.Duration // title 停留时长
	SubtitleDwell  time.Duration // subtitle 停留时长
	SlideUpDelay   time.Duration // 进入 reveal 后开始上滑的延迟
	RevealDuration time.Duration // 进入 reveal 到 done 的延迟
	SkipDelay      time.Duration // Skip 后到 done 的延迟
	SlideDuration  time.Duration // 上滑动画时长
}

// DefaultTimings 返回站点上线版本使用的数值
func DefaultTimings() Timings {
	return Timings{
		InitialDelay: 500 * time.Millisecond,
		DecayFactor:  0.86,
		MinDelay:     60 * time.Millisecond,
		FlashLength:  45 * time.Millisecond,
		CaptionDelay: 1700 * time.Millisecond,

		InitialDarkness: 0.25,
		DarknessStep:    0.03,
		MontageCeiling:  0.88,
		EndDarkness:     0.96,
		TitleDarkness:   0.92,
		SubtitleDark:    0.93,
		RevealDarkness:  0.70,

		TitleDelay:     160 * time.Millisecond,
		TitleDwell:     1100 * time.Millisecond,
		SubtitleDwell:  950 * time.Millisecond,
		SlideUpDelay:   140 * time.Millisecond,
		RevealDuration: 1050 * time.Millisecond,
		SkipDelay:      600 * time.Millisecond,
		SlideDuration:  1000 * time.Millisecond,
	}
}

// Validate 检查数值是否满足状态机的不变量
func (t Timings) Validate() error {
	if t.DecayFactor <= 0 || t.DecayFactor >= 1 {
		return fmt.Errorf("decay factor must be in (0, 1), got %v", t.DecayFactor)
	}
	if t.MinDelay <= 0 {
		return fmt.Errorf("min delay must be positive, got %v", t.MinDelay)
	}
	if t.InitialDelay < t.MinDelay {
		return fmt.Errorf("initial delay %v is below min delay %v", t.InitialDelay, t.MinDelay)
	}

	darkness := map[string]float64{
		"initial":  t.InitialDarkness,
		"step":     t.DarknessStep,
		"ceiling":  t.MontageCeiling,
		"end":      t.EndDarkness,
		"title":    t.TitleDarkness,
		"subtitle": t.SubtitleDark,
		"reveal":   t.RevealDarkness,
	}
	for name, v := range darkness {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s darkness must be in [0, 1], got %v", name, v)
		}
	}
	if t.InitialDarkness > t.MontageCeiling {
		return fmt.Errorf("initial darkness %v exceeds montage ceiling %v", t.InitialDarkness, t.MontageCeiling)
	}
	if t.MontageCeiling >= t.TitleDarkness {
		return fmt.Errorf("montage ceiling %v must stay below title darkness %v", t.MontageCeiling, t.TitleDarkness)
	}
	if t.TitleDarkness > t.SubtitleDark {
		return fmt.Errorf("title darkness %v exceeds subtitle darkness %v", t.TitleDarkness, t.SubtitleDark)
	}
	if t.RevealDarkness >= t.TitleDarkness {
		return fmt.Errorf("reveal darkness %v must stay below title darkness %v", t.RevealDarkness, t.TitleDarkness)
	}

	durations := map[string]time.Duration{
		"flash":       t.FlashLength,
		"caption":     t.CaptionDelay,
		"title delay": t.TitleDelay,
		"title dwell": t.TitleDwell,
		"subtitle":    t.SubtitleDwell,
		"slide-up":    t.SlideUpDelay,
		"reveal":      t.RevealDuration,
		"skip":        t.SkipDelay,
		"slide":       t.SlideDuration,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s duration must not be negative, got %v", name, d)
		}
	}
	if t.SlideUpDelay >= t.RevealDuration {
		return fmt.Errorf("slide-up delay %v must fire before reveal ends at %v", t.SlideUpDelay, t.RevealDuration)
	}
	return nil
}

// CadenceAfter 返回推进 n 次后的间隔（毫秒）：max(floor, initial·decay^n)
func (t Timings) CadenceAfter(n int) float64 {
	initial := durationMillis(t.InitialDelay)
	floor := durationMillis(t.MinDelay)
	return math.Max(floor, initial*math.Pow(t.DecayFactor, float64(n)))
}

// MontageDuration 返回从蒙太奇开始到最后一次推进的总时长（闭式几何求和）
//
// 第 k 次推进（k 从 1 开始）在 Σ_{n=0}^{k-1} cadence(n) 时触发，
// 共 imageCount 次推进，最后一次推进把游标夹到末尾并安排进入 title。
func (t Timings) MontageDuration(imageCount int) time.Duration {
	var total float64
	for n := 0; n < imageCount; n++ {
		total += t.CadenceAfter(n)
	}
	return millisDuration(total)
}

// TitleAt 返回从挂载开始到进入 title 阶段的时间
func (t Timings) TitleAt(imageCount int) time.Duration {
	return t.MontageDuration(imageCount) + t.TitleDelay
}

// DoneAt 返回不跳过时从挂载开始到 done 的总时长
func (t Timings) DoneAt(imageCount int) time.Duration {
	return t.TitleAt(imageCount) + t.TitleDwell + t.SubtitleDwell + t.RevealDuration
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func millisDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
