package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/intro"
)

func TestHostSceneParallaxTarget(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY float64
		hovering     bool
	}{
		{"居中无位移", 640, 400, 0, 0, true},
		{"左上角", 0, 0, -8, -6, true},
		{"右下角附近", 1279, 799, 16*(1279.0/1280-0.5), 12*(799.0/800-0.5), true},
		{"视口外回到中心", -10, 400, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHostScene(nil, intro.NewViewport(1280, 800), "", nil)
			h.SetPointer(tt.x, tt.y)

			gx, gy := h.ParallaxTarget()
			assert.InDelta(t, tt.wantX, gx, 1e-9)
			assert.InDelta(t, tt.wantY, gy, 1e-9)
			assert.Equal(t, tt.hovering, h.hovering)
		})
	}
}

func TestHostSceneTickApproachesTarget(t *testing.T) {
	h := NewHostScene(nil, intro.NewViewport(1280, 800), "", nil)
	h.SetPointer(0, 0)

	h.Tick(parallaxHoverSec / 2)
	x, y := h.ParallaxOffset()
	assert.InDelta(t, -4, x, 1e-9, "悬停时 80ms 过渡，半程走一半")
	assert.InDelta(t, -3, y, 1e-9)

	h.Tick(1)
	x, y = h.ParallaxOffset()
	assert.InDelta(t, -8, x, 1e-9)
	assert.InDelta(t, -6, y, 1e-9)
}

func TestHostSceneWithoutViewportIgnoresPointer(t *testing.T) {
	h := NewHostScene(nil, nil, "", nil)
	h.SetPointer(0, 0)
	x, y := h.ParallaxTarget()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestHostSceneDraw(t *testing.T) {
	cfg := config.DefaultIntroConfig()
	rm := newTestResources(t, cfg)
	screen := ebiten.NewImage(1280, 800)

	for _, size := range [][2]int{{1280, 800}, {390, 844}} {
		h := NewHostScene(rm, intro.NewViewport(size[0], size[1]), cfg.LogoPath, nil)
		assert.NotPanics(t, func() { h.Draw(screen) })
	}
}
