package intro

// 设备分类阈值
const (
	// PhoneMaxWidth 视口宽度不超过该值视为手机（常见的 sm 断点）
	PhoneMaxWidth = 640
	// PhoneMaxHeight 视口高度不超过该值视为手机（矮屏，卡片容易被裁切）
	PhoneMaxHeight = 720
	// PhoneMinAspect 高宽比不小于该值视为手机（竖屏）
	PhoneMinAspect = 1.35
)

// IsPhone 根据视口尺寸判断是否为手机类设备
//
// 满足任一条件即为手机：
//   - width <= PhoneMaxWidth
//   - height <= PhoneMaxHeight
//   - height/width >= PhoneMinAspect
//
// 设备分类只影响布局和安全区留白，不影响状态机计时。
func IsPhone(width, height int) bool {
	aspect := 0.0
	if height > 0 && width > 0 {
		aspect = float64(height) / float64(width)
	}
	return width <= PhoneMaxWidth ||
		height <= PhoneMaxHeight ||
		aspect >= PhoneMinAspect
}

// DeviceClass 视口的设备类别
type DeviceClass int

const (
	DeviceDesktop DeviceClass = iota
	DevicePhone
)

func (c DeviceClass) String() string {
	if c == DevicePhone {
		return "phone"
	}
	return "desktop"
}

// ClassifyViewport 返回视口的设备类别
func ClassifyViewport(width, height int) DeviceClass {
	if IsPhone(width, height) {
		return DevicePhone
	}
	return DeviceDesktop
}
