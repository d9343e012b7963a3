package intro

// Phase 开场动画状态机的阶段
//
// 阶段严格向前推进：montage → title → subtitle → reveal → done。
// Skip 可以从任意阶段直接跳到 reveal → done。
type Phase int

const (
	// PhaseMontage 加速照片蒙太奇
	PhaseMontage Phase = iota
	// PhaseTitle 队名标题
	PhaseTitle
	// PhaseSubtitle 赛季副标题
	PhaseSubtitle
	// PhaseReveal 遮罩上滑，露出宿主页面
	PhaseReveal
	// PhaseDone 终止状态
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseMontage:
		return "montage"
	case PhaseTitle:
		return "title"
	case PhaseSubtitle:
		return "subtitle"
	case PhaseReveal:
		return "reveal"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// CaptionLine 蒙太奇阶段顶部文案选择器
type CaptionLine int

const (
	CaptionLine1 CaptionLine = iota
	CaptionLine2
)

func (c CaptionLine) String() string {
	if c == CaptionLine2 {
		return "line2"
	}
	return "line1"
}

// timerKind 标识状态机持有的每一类计时器。
// 同类计时器同一时刻最多只有一个。
type timerKind int

const (
	timerTick timerKind = iota
	timerFlash
	timerCaption
	timerTitle
	timerDwell
	timerSlideUp
	timerFinish
)

// montageTimers 在离开 montage 阶段时必须全部取消
var montageTimers = []timerKind{timerTick, timerFlash, timerCaption}
