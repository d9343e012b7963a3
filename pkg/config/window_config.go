package config

// 窗口配置
//
// 逻辑尺寸与窗口尺寸一致（App.Layout 直接返回外部尺寸），
// 开场动画的设备分类因此直接使用真实视口。
const (
	// WindowWidth 默认窗口宽度
	WindowWidth = 1280
	// WindowHeight 默认窗口高度
	WindowHeight = 800
	// WindowTitle 窗口标题
	WindowTitle = "Canterbury Cougarbots"
	// MinWindowWidth / MinWindowHeight 可调整窗口的最小尺寸
	MinWindowWidth  = 320
	MinWindowHeight = 480
)
