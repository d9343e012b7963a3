// Package scenes 包含站点的 ebiten 场景：团队主页、开场动画以及两者的叠加
package scenes

import (
	"github.com/cougarbots/site/pkg/game"
)

// Scene is a type alias for game.Scene so callers can stay within this package.
type Scene = game.Scene
