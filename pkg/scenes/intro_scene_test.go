package scenes

import (
	"bytes"
	"image"
	"image/png"
	"io/fs"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/utils"
)

const frame = 1.0 / 60

// newTestResources 返回从内存读取图片的 ResourceManager
func newTestResources(t *testing.T, cfg *config.IntroConfig) *game.ResourceManager {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 8))))
	data := buf.Bytes()

	files := map[string][]byte{cfg.LogoPath: data}
	for _, p := range cfg.ImagePaths() {
		files[p] = data
	}
	rm := game.NewResourceManager(nil)
	rm.SetReader(func(path string) ([]byte, error) {
		if b, ok := files[path]; ok {
			return b, nil
		}
		return nil, fs.ErrNotExist
	})
	t.Cleanup(rm.WaitPreload)
	return rm
}

type introHarness struct {
	scene    *IntroScene
	viewport *intro.Viewport
	cfg      *config.IntroConfig
	done     int
}

func newIntroHarness(t *testing.T, w, h int, safe utils.SafeArea) *introHarness {
	t.Helper()
	hs := &introHarness{
		cfg:      config.DefaultIntroConfig(),
		viewport: intro.NewViewport(w, h),
	}
	scene, err := NewIntroScene(IntroSceneOptions{
		Resources: newTestResources(t, hs.cfg),
		Config:    hs.cfg,
		Viewport:  hs.viewport,
		SafeArea:  safe,
		OnDone:    func() { hs.done++ },
	})
	require.NoError(t, err)
	t.Cleanup(scene.Close)
	hs.scene = scene
	return hs
}

func skipCenter(l IntroLayout) (int, int) {
	return (l.Skip.Min.X + l.Skip.Max.X) / 2, (l.Skip.Min.Y + l.Skip.Max.Y) / 2
}

func TestNewIntroSceneRequiresResources(t *testing.T) {
	_, err := NewIntroScene(IntroSceneOptions{})
	assert.Error(t, err)
}

func TestNewIntroSceneRejectsEmptyMontage(t *testing.T) {
	cfg := config.DefaultIntroConfig()
	rm := newTestResources(t, cfg)
	cfg.ImageCount = 0

	_, err := NewIntroScene(IntroSceneOptions{Resources: rm, Config: cfg})
	assert.ErrorIs(t, err, intro.ErrNoImages)
}

func TestIntroSceneStartsInMontage(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	seq := hs.scene.Sequence()

	assert.Equal(t, intro.PhaseMontage, seq.Phase())
	assert.Equal(t, 0, seq.Index())
	assert.Equal(t, hs.cfg.ImageCount, seq.ImageCount())
	assert.False(t, seq.IsPhone())
	assert.False(t, hs.scene.Done())
}

func TestIntroSceneTickDrivesTimeline(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	seq := hs.scene.Sequence()

	hs.scene.Tick(0.5)
	assert.Equal(t, 1, seq.Index(), "第一次推进在 500ms")

	for i := 0; i < 10*60 && hs.done == 0; i++ {
		hs.scene.Tick(frame)
	}
	assert.Equal(t, 1, hs.done)
	assert.True(t, hs.scene.Done())
	assert.False(t, seq.Skipped())
}

func TestIntroSceneSkipButton(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	seq := hs.scene.Sequence()
	x, y := skipCenter(hs.scene.Layout())

	require.True(t, hs.scene.HandleTap(x, y))
	assert.Equal(t, intro.PhaseReveal, seq.Phase())
	assert.True(t, seq.Skipped())

	// 揭幕期间再次点击不会重新安排完成
	hs.scene.Tick(0.3)
	hs.scene.HandleTap(x, y)
	hs.scene.Tick(0.3)
	assert.Equal(t, 1, hs.done)
	assert.True(t, seq.Done())

	assert.False(t, hs.scene.HandleTap(x, y), "结束后不再响应")
	assert.Equal(t, 1, hs.done)
}

func TestIntroSceneTapOutsideSkipIgnored(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})

	assert.False(t, hs.scene.HandleTap(640, 400))
	assert.False(t, hs.scene.HandleTap(0, 799))
	assert.Equal(t, intro.PhaseMontage, hs.scene.Sequence().Phase())
}

func TestIntroSceneRequestSkipIsIdempotent(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})

	hs.scene.RequestSkip()
	hs.scene.RequestSkip()
	hs.scene.Tick(0.599)
	assert.Equal(t, 0, hs.done)
	hs.scene.Tick(0.002)
	assert.Equal(t, 1, hs.done)

	hs.scene.RequestSkip()
	hs.scene.Tick(5)
	assert.Equal(t, 1, hs.done)
}

func TestIntroSceneSlideOffset(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	assert.InDelta(t, 0, hs.scene.SlideOffset(), 1e-9)

	hs.scene.RequestSkip()
	hs.scene.Tick(0.3)

	progress := hs.scene.Sequence().SlideProgress()
	assert.InDelta(t, 0.3, progress, 1e-6)
	want := -1.05 * 800 * utils.SlideUpCurve.Ease(progress)
	assert.InDelta(t, want, hs.scene.SlideOffset(), 1e-9)
	assert.Less(t, hs.scene.SlideOffset(), -700.0, "缓出曲线前段移动最快")
}

func TestIntroSceneCaptionCrossfade(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	assert.Equal(t, 1.0, hs.scene.line1Fade.value)
	assert.Equal(t, 0.0, hs.scene.line2Fade.value)

	for i := 0; i < 135; i++ {
		hs.scene.Tick(frame)
	}
	require.Equal(t, intro.CaptionLine2, hs.scene.Sequence().Caption())
	assert.InDelta(t, 0, hs.scene.line1Fade.value, 1e-9)
	assert.InDelta(t, 1, hs.scene.line2Fade.value, 1e-9)
}

func TestIntroSceneTiltSettlesAfterMontage(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	assert.InDelta(t, intro.TiltDegrees(0), hs.scene.tilt, 1e-9)

	hs.scene.RequestSkip()
	hs.scene.Tick(settleTiltSeconds)
	assert.InDelta(t, 0, hs.scene.tilt, 1e-9)
	assert.InDelta(t, 1, hs.scene.zoom, 1e-9)
}

func TestIntroSceneTitleFadesIn(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	timings := hs.cfg.Timings.ToIntro()
	titleAt := timings.TitleAt(hs.cfg.ImageCount).Seconds()

	for elapsed := 0.0; elapsed < titleAt+titleFadeSeconds+0.05; elapsed += frame {
		hs.scene.Tick(frame)
	}
	require.Equal(t, intro.PhaseTitle, hs.scene.Sequence().Phase())
	assert.InDelta(t, 1, hs.scene.titleFade.value, 1e-9)
	assert.InDelta(t, 1, hs.scene.overlayFade.value, 1e-9)
	assert.InDelta(t, 0, hs.scene.subtitleFade.value, 1e-9)
}

func TestIntroSceneLayoutFollowsViewport(t *testing.T) {
	safe := utils.SafeArea{Top: 44, Bottom: 34}
	hs := newIntroHarness(t, 1280, 800, safe)
	assert.Equal(t, ComputeIntroLayout(1280, 800, false, safe), hs.scene.Layout())

	hs.viewport.Resize(375, 812)
	assert.True(t, hs.scene.Sequence().IsPhone())
	assert.Equal(t, ComputeIntroLayout(375, 812, true, safe), hs.scene.Layout())

	// 手机布局下 Skip 热区随安全区下移
	x, y := skipCenter(hs.scene.Layout())
	assert.Greater(t, y, safe.Top)
	assert.True(t, hs.scene.HandleTap(x, y))
}

func TestIntroSceneCloseUnmounts(t *testing.T) {
	hs := newIntroHarness(t, 1280, 800, utils.SafeArea{})
	seq := hs.scene.Sequence()
	x, y := skipCenter(hs.scene.Layout())

	hs.scene.Close()
	hs.scene.Close()

	assert.Equal(t, 0, seq.PendingTimers())
	assert.Equal(t, 0, hs.viewport.Subscribers())
	assert.True(t, hs.scene.Done())
	assert.False(t, hs.scene.HandleTap(x, y))

	hs.scene.Tick(10)
	assert.Equal(t, 0, hs.done, "卸载后不会触发完成回调")
	assert.Equal(t, intro.PhaseMontage, seq.Phase())
}

func TestIntroSceneDraw(t *testing.T) {
	hs := newIntroHarness(t, 640, 480, utils.SafeArea{})
	screen := ebiten.NewImage(640, 480)

	assert.NotPanics(t, func() { hs.scene.Draw(screen) })

	hs.scene.RequestSkip()
	hs.scene.Tick(0.3)
	assert.NotPanics(t, func() { hs.scene.Draw(screen) })

	hs.scene.Tick(1)
	require.True(t, hs.scene.Done())
	assert.NotPanics(t, func() { hs.scene.Draw(screen) })
}

func TestFaderStep(t *testing.T) {
	f := fader{duration: 0.5}

	f.step(true, 0.25)
	assert.InDelta(t, 0.5, f.value, 1e-9)
	f.step(true, 1)
	assert.Equal(t, 1.0, f.value, "不会越过目标")
	f.step(false, 0.125)
	assert.InDelta(t, 0.75, f.value, 1e-9)

	instant := fader{}
	instant.step(true, 0.001)
	assert.Equal(t, 1.0, instant.value)
}
