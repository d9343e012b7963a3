package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdvanceFiresInDueOrder 验证回调按到期时间执行，同一时刻按安排顺序执行
func TestAdvanceFiresInDueOrder(t *testing.T) {
	c := New()
	var got []string

	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 25*time.Millisecond, c.Now())
	assert.Equal(t, 1, c.Pending())

	c.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, c.Pending())
}

// TestNowInsideCallback 验证回调执行时 Now() 等于到期时间
func TestNowInsideCallback(t *testing.T) {
	c := New()
	var seen time.Duration
	c.AfterFunc(40*time.Millisecond, func() { seen = c.Now() })

	c.Advance(time.Second)
	assert.Equal(t, 40*time.Millisecond, seen)
	assert.Equal(t, time.Second, c.Now())
}

// TestChainedTimersWithinWindow 验证回调内安排的计时器在同一窗口内继续执行
func TestChainedTimersWithinWindow(t *testing.T) {
	c := New()
	var fired []time.Duration
	var tick func()
	tick = func() {
		fired = append(fired, c.Now())
		if len(fired) < 4 {
			c.AfterFunc(100*time.Millisecond, tick)
		}
	}
	c.AfterFunc(100*time.Millisecond, tick)

	c.Advance(350 * time.Millisecond)
	require.Len(t, fired, 3)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, fired)

	c.Advance(50 * time.Millisecond)
	assert.Len(t, fired, 4)
	assert.Equal(t, 0, c.Pending())
}

// TestStop 验证取消语义
func TestStop(t *testing.T) {
	c := New()
	called := false
	timer := c.AfterFunc(10*time.Millisecond, func() { called = true })

	assert.True(t, timer.Stop(), "first Stop should report cancellation")
	assert.False(t, timer.Stop(), "second Stop should be a no-op")
	assert.Equal(t, 0, c.Pending())

	c.Advance(time.Second)
	assert.False(t, called)

	fired := c.AfterFunc(0, func() {})
	c.Advance(0)
	assert.False(t, fired.Stop(), "Stop after firing should return false")
}

// TestStopFromInsideCallback 验证回调中取消另一个同刻计时器
func TestStopFromInsideCallback(t *testing.T) {
	c := New()
	secondCalled := false
	var second interface{ Stop() bool }
	c.AfterFunc(10*time.Millisecond, func() { second.Stop() })
	second = c.AfterFunc(10*time.Millisecond, func() { secondCalled = true })

	c.Advance(10 * time.Millisecond)
	assert.False(t, secondCalled)
}

// TestAdvanceSeconds 验证按帧推进
func TestAdvanceSeconds(t *testing.T) {
	c := New()
	for i := 0; i < 60; i++ {
		c.AdvanceSeconds(1.0 / 60.0)
	}
	assert.InDelta(t, float64(time.Second), float64(c.Now()), float64(time.Microsecond))
}

// TestNegativeDurations 验证负值被当作 0
func TestNegativeDurations(t *testing.T) {
	c := New()
	called := false
	c.AfterFunc(-time.Second, func() { called = true })
	c.Advance(-time.Second)
	assert.True(t, called)
	assert.Equal(t, time.Duration(0), c.Now())
}

// TestNextDue 验证最早到期时间随取消和触发更新
func TestNextDue(t *testing.T) {
	c := New()
	_, ok := c.NextDue()
	assert.False(t, ok)

	late := c.AfterFunc(30*time.Millisecond, func() {})
	early := c.AfterFunc(10*time.Millisecond, func() {})
	due, ok := c.NextDue()
	assert.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, due)

	early.Stop()
	due, _ = c.NextDue()
	assert.Equal(t, 30*time.Millisecond, due)
	assert.Equal(t, late.(*Timer).Due(), due)

	c.Advance(due)
	_, ok = c.NextDue()
	assert.False(t, ok)
}
