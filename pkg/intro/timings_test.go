package intro_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cougarbots/site/pkg/intro"
)

// TestDefaultTimingsValid 验证默认数值满足不变量
func TestDefaultTimingsValid(t *testing.T) {
	assert.NoError(t, intro.DefaultTimings().Validate())
}

// TestTimingsValidate 验证非法数值被拒绝
func TestTimingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*intro.Timings)
		wantErr string
	}{
		{"decay >= 1", func(t *intro.Timings) { t.DecayFactor = 1 }, "decay factor"},
		{"decay <= 0", func(t *intro.Timings) { t.DecayFactor = 0 }, "decay factor"},
		{"zero floor", func(t *intro.Timings) { t.MinDelay = 0 }, "min delay"},
		{"initial below floor", func(t *intro.Timings) { t.InitialDelay = 10 * time.Millisecond }, "below min delay"},
		{"darkness out of range", func(t *intro.Timings) { t.EndDarkness = 1.5 }, "darkness must be in"},
		{"ceiling above title", func(t *intro.Timings) { t.MontageCeiling = 0.95 }, "montage ceiling"},
		{"title above subtitle", func(t *intro.Timings) { t.SubtitleDark = 0.9 }, "title darkness"},
		{"reveal above title", func(t *intro.Timings) { t.RevealDarkness = 0.92 }, "reveal darkness"},
		{"initial above ceiling", func(t *intro.Timings) { t.InitialDarkness = 0.9 }, "initial darkness"},
		{"negative dwell", func(t *intro.Timings) { t.TitleDwell = -time.Second }, "must not be negative"},
		{"slide-up after reveal", func(t *intro.Timings) { t.SlideUpDelay = 2 * time.Second }, "slide-up delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timings := intro.DefaultTimings()
			tt.mutate(&timings)
			err := timings.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestMontageDurationClosedForm 验证几何求和
func TestMontageDurationClosedForm(t *testing.T) {
	timings := intro.DefaultTimings()
	want := 500 * (1 - math.Pow(0.86, 8)) / (1 - 0.86)
	got := float64(timings.MontageDuration(8)) / float64(time.Millisecond)
	assert.InDelta(t, want, got, 1e-3)
	assert.InDelta(t, 2502.8, got, 0.1)

	assert.Equal(t, timings.MontageDuration(8)+160*time.Millisecond, timings.TitleAt(8))
	assert.Equal(t, timings.TitleAt(8)+3100*time.Millisecond, timings.DoneAt(8))
}

// TestMontageImagePaths 验证补零编号
func TestMontageImagePaths(t *testing.T) {
	paths := intro.MontageImagePaths("/intro/%02d.jpg", 10)
	assert.Len(t, paths, 10)
	assert.Equal(t, "/intro/01.jpg", paths[0])
	assert.Equal(t, "/intro/09.jpg", paths[8])
	assert.Equal(t, "/intro/10.jpg", paths[9])
}

// TestTiltDegrees 验证倾斜角度被限制在 ±4.5 度
func TestTiltDegrees(t *testing.T) {
	for i := 0; i < 64; i++ {
		tilt := intro.TiltDegrees(i)
		assert.LessOrEqual(t, math.Abs(tilt), 4.5)
		assert.Equal(t, tilt, intro.TiltDegrees(i), "tilt must be deterministic")
	}
}
