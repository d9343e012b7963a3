package intro

// Viewport 视口尺寸的可订阅观察者
//
// 宿主在窗口尺寸变化（含横竖屏切换）时调用 Resize，订阅者同步收到新尺寸。
// Viewport 不是并发安全的，与游戏主循环在同一 goroutine 中使用。
type Viewport struct {
	width, height int
	subscribers   map[int]func(width, height int)
	nextID        int
}

// NewViewport 创建初始尺寸为 width×height 的视口
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:       width,
		height:      height,
		subscribers: make(map[int]func(width, height int)),
	}
}

// Size 返回当前视口尺寸
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Resize 更新视口尺寸并通知订阅者；尺寸未变化时不通知
func (v *Viewport) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height

	// 回调内可能取消订阅，先复制一份
	fns := make([]func(int, int), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(width, height)
	}
}

// Subscribe 注册尺寸变化回调，返回的函数用于取消订阅（可重复调用）
func (v *Viewport) Subscribe(fn func(width, height int)) (unsubscribe func()) {
	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn
	return func() {
		delete(v.subscribers, id)
	}
}

// Subscribers 返回当前订阅者数量
func (v *Viewport) Subscribers() int {
	return len(v.subscribers)
}
