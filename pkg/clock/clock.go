// Package clock 提供由游戏主循环驱动的虚拟时钟
//
// ebiten 的 Update 每帧调用 Advance(deltaTime)，到期的回调在同一
// goroutine 中按到期时间依次执行，不创建任何 goroutine，也不需要加锁。
// 测试中可以精确推进时间，结果完全确定。
package clock

import (
	"container/heap"
	"time"

	"github.com/cougarbots/site/pkg/intro"
)

// Clock 虚拟单调时钟，实现 intro.Scheduler
type Clock struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

var _ intro.Scheduler = (*Clock)(nil)

// New 创建时间为 0 的时钟
func New() *Clock {
	return &Clock{}
}

// Now 返回当前虚拟时间
func (c *Clock) Now() time.Duration {
	return c.now
}

// AfterFunc 安排 f 在 d 之后执行；d <= 0 时在下一次 Advance 中执行
func (c *Clock) AfterFunc(d time.Duration, f func()) intro.Timer {
	if d < 0 {
		d = 0
	}
	t := &Timer{
		clock: c,
		due:   c.now + d,
		seq:   c.seq,
		fn:    f,
		index: -1,
	}
	c.seq++
	heap.Push(&c.queue, t)
	return t
}

// Advance 将时间推进 d，并按 (到期时间, 安排顺序) 执行所有到期回调
//
// 回调内安排的计时器如果在本次推进窗口内到期，也会在本次调用中执行。
// 每个回调执行时 Now() 等于它的到期时间。
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := c.now + d
	for c.queue.Len() > 0 {
		next := c.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&c.queue)
		if next.due > c.now {
			c.now = next.due
		}
		next.fired = true
		next.fn()
	}
	c.now = target
}

// AdvanceSeconds 以秒为单位推进，匹配 Scene.Update(deltaTime float64)
func (c *Clock) AdvanceSeconds(deltaTime float64) {
	c.Advance(time.Duration(deltaTime * float64(time.Second)))
}

// Pending 返回尚未触发且未取消的计时器数量
func (c *Clock) Pending() int {
	return c.queue.Len()
}

// NextDue 返回最早的未触发计时器的到期时间；没有计时器时 ok 为 false
func (c *Clock) NextDue() (due time.Duration, ok bool) {
	if c.queue.Len() == 0 {
		return 0, false
	}
	return c.queue[0].due, true
}

// Timer 时钟上的一个回调
type Timer struct {
	clock   *Clock
	due     time.Duration
	seq     uint64
	fn      func()
	index   int
	fired   bool
	stopped bool
}

// Stop 取消回调；已触发或已取消时返回 false
func (t *Timer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	if t.index >= 0 {
		heap.Remove(&t.clock.queue, t.index)
	}
	return true
}

// Due 返回计时器的到期时间
func (t *Timer) Due() time.Duration {
	return t.due
}

// timerQueue 按到期时间排序的最小堆
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
