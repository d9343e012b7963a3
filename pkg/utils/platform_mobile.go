//go:build mobile

package utils

// SetMobileEmulation 移动端无需模拟
func SetMobileEmulation(bool) {}

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}
