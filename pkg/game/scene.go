package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a full-screen scene (host page, intro overlay, ...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换或应用退出时调用 Close()
//
// 持有计时器、视口订阅等资源的场景必须实现它，保证卸载后不再有回调。
type Closer interface {
	Close()
}
