package utils

// SafeArea 手机刘海与底部横条占用的像素
//
// 桌面端恒为零；手机端由宿主（ebitenmobile 或环境变量）提供。
type SafeArea struct {
	Top    int
	Bottom int
}

// Vertical 上下安全区之和
func (a SafeArea) Vertical() int {
	return a.Top + a.Bottom
}

// Clamp 负值按 0 处理
func (a SafeArea) Clamp() SafeArea {
	return SafeArea{Top: max(a.Top, 0), Bottom: max(a.Bottom, 0)}
}
