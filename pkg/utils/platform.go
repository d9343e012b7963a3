//go:build !mobile

package utils

// mobileEmulated 由 SetMobileEmulation 设置（COUGARBOTS_MOBILE_EMULATE）
var mobileEmulated bool

// SetMobileEmulation 在桌面端模拟移动模式，用于本地调试触摸和安全区
func SetMobileEmulation(enabled bool) {
	mobileEmulated = enabled
}

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回是否启用了模拟
func IsMobile() bool {
	return mobileEmulated
}
