// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// skipKeys 可以跳过开场动画的按键
var skipKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeySpace}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 检查触摸按下
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标按下
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsSkipKeyJustPressed Esc 或空格刚刚按下
func IsSkipKeyJustPressed() bool {
	for _, k := range skipKeys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsSkipKey 判断按键是否属于跳过键（供键盘事件回调使用）
func IsSkipKey(k ebiten.Key) bool {
	for _, s := range skipKeys {
		if s == k {
			return true
		}
	}
	return false
}
