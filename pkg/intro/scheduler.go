package intro

import "time"

// Timer 已安排的延迟回调
type Timer interface {
	// Stop 取消回调；回调已触发或已取消时返回 false
	Stop() bool
}

// Scheduler 单线程协作式计时器
//
// 所有回调都在宿主主循环中串行执行，Sequence 不做任何加锁。
type Scheduler interface {
	// AfterFunc 在 d 之后执行 f
	AfterFunc(d time.Duration, f func()) Timer
	// Now 返回调度器的单调时间
	Now() time.Duration
}

// Preloader 预热图片缓存
//
// Preload 是 fire-and-forget：加载失败不是错误，蒙太奇照常推进，
// 缺失的图片只会渲染为空白。
type Preloader interface {
	Preload(paths []string)
}
