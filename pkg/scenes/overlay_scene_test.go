package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/utils"
)

// recordingHost 记录调用次数的主页替身
type recordingHost struct {
	updates int
	draws   int
	closed  bool
}

func (h *recordingHost) Update(deltaTime float64) { h.updates++ }
func (h *recordingHost) Draw(screen *ebiten.Image) { h.draws++ }
func (h *recordingHost) Close() { h.closed = true }

func newTestOverlay(t *testing.T) (*OverlayScene, *recordingHost, *int) {
	t.Helper()
	cfg := config.DefaultIntroConfig()
	host := &recordingHost{}
	calls := 0
	o, err := NewOverlayScene(host, IntroSceneOptions{
		Resources: newTestResources(t, cfg),
		Config:    cfg,
		Viewport:  intro.NewViewport(1280, 800),
		SafeArea:  utils.SafeArea{},
		OnDone:    func() { calls++ },
	})
	require.NoError(t, err)
	t.Cleanup(o.Close)
	return o, host, &calls
}

func TestNewOverlaySceneRequiresResources(t *testing.T) {
	_, err := NewOverlayScene(&recordingHost{}, IntroSceneOptions{})
	assert.Error(t, err)
}

func TestOverlaySceneSkipDropsIntro(t *testing.T) {
	o, host, calls := newTestOverlay(t)
	screen := ebiten.NewImage(1280, 800)

	o.Update(frame)
	o.Draw(screen)
	assert.Equal(t, 1, host.updates)
	assert.Equal(t, 1, host.draws)
	assert.False(t, o.IntroDone())

	o.Intro().RequestSkip()
	o.Update(0.6)
	require.True(t, o.IntroDone())
	assert.Equal(t, 1, *calls)

	seq := o.Intro().Sequence()
	assert.Equal(t, intro.PhaseDone, seq.Phase())
	assert.Equal(t, 0, seq.PendingTimers(), "完成后序列已卸载")
	assert.False(t, seq.Interactive())

	// 之后只驱动主页
	now := o.Intro().Clock().Now()
	o.Update(1)
	o.Draw(screen)
	assert.Equal(t, now, o.Intro().Clock().Now())
	assert.Equal(t, 3, host.updates)
	assert.Equal(t, 2, host.draws)
	assert.Equal(t, 1, *calls)
}

func TestOverlaySceneNaturalCompletion(t *testing.T) {
	o, _, calls := newTestOverlay(t)
	timings := config.DefaultIntroConfig().Timings.ToIntro()
	doneAt := timings.DoneAt(intro.DefaultImageCount)

	for i := 0; i < 10*60 && !o.IntroDone(); i++ {
		o.Update(frame)
	}
	require.True(t, o.IntroDone())
	assert.Equal(t, 1, *calls)
	assert.False(t, o.Intro().Sequence().Skipped())
	assert.InDelta(t, doneAt.Seconds(), o.Intro().Clock().Now().Seconds(), frame)
}

func TestOverlaySceneClose(t *testing.T) {
	o, host, calls := newTestOverlay(t)

	o.Close()
	assert.True(t, host.closed)
	assert.True(t, o.Intro().Done())
	assert.Equal(t, 0, o.Intro().Sequence().PendingTimers())

	o.Intro().Tick(10)
	assert.Equal(t, 0, *calls)
}
