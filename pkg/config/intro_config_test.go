package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cougarbots/site/pkg/intro"
)

// TestDefaultIntroConfigTimings 验证默认配置与状态机默认值一致
func TestDefaultIntroConfigTimings(t *testing.T) {
	cfg := DefaultIntroConfig()
	assert.Equal(t, intro.DefaultTimings(), cfg.Timings.ToIntro())
	assert.Equal(t, 8, cfg.ImageCount)
	assert.Equal(t, "assets/intro/01.png", cfg.ImagePaths()[0])
	assert.Equal(t, "assets/intro/08.png", cfg.ImagePaths()[7])
}

// TestBundledIntroConfig 验证仓库内置的 data/intro.yaml 与默认值一致
func TestBundledIntroConfig(t *testing.T) {
	cfg, err := LoadIntroConfig(filepath.Join("..", "..", DefaultIntroConfigPath))
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultIntroConfig(), cfg); diff != "" {
		t.Errorf("data/intro.yaml drifted from defaults (-default +file):\n%s", diff)
	}
}

// TestParseIntroConfigPartial 验证只覆盖出现的键
func TestParseIntroConfigPartial(t *testing.T) {
	data := []byte(`
image_count: 12
text:
  subtitle_text: Second Season
timings:
  initial_delay_ms: 400
  decay_factor: 0.8
`)
	cfg, err := ParseIntroConfig(data)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.ImageCount)
	assert.Equal(t, "Second Season", cfg.Text.SubtitleText)
	assert.Equal(t, "Canterbury Cougarbots", cfg.Text.TitleName, "untouched keys keep defaults")

	timings := cfg.Timings.ToIntro()
	assert.Equal(t, 400*time.Millisecond, timings.InitialDelay)
	assert.Equal(t, 0.8, timings.DecayFactor)
	assert.Equal(t, 60*time.Millisecond, timings.MinDelay)
}

// TestParseIntroConfigInvalid 验证非法配置
func TestParseIntroConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"零图片", "image_count: 0", "image_count must be positive"},
		{"模式缺少编号", "image_pattern: assets/intro/photo.png", "no number verb"},
		{"衰减系数", "timings: {decay_factor: 1.1}", "decay factor"},
		{"平台顺序", "timings: {montage_ceiling: 0.95}", "montage ceiling"},
		{"YAML 语法", "image_count: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntroConfig([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestLoadIntroConfigFromDisk 验证从磁盘加载
func TestLoadIntroConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timings: {title_dwell_ms: 2000}\n"), 0o644))

	cfg, err := LoadIntroConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Timings.ToIntro().TitleDwell)

	_, err = LoadIntroConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read intro config file")
}

// TestLoadEnv 验证环境变量解析
func TestLoadEnv(t *testing.T) {
	t.Setenv("COUGARBOTS_VERBOSE", "true")
	t.Setenv("COUGARBOTS_SAFE_AREA_TOP", "44")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.True(t, e.Verbose)
	assert.False(t, e.MobileEmulate)
	assert.Equal(t, DefaultIntroConfigPath, e.IntroConfig)
	assert.Equal(t, 44, e.SafeAreaTop)
	assert.Equal(t, 0, e.SafeAreaBottom)

	t.Setenv("COUGARBOTS_SAFE_AREA_BOTTOM", "not-a-number")
	_, err = LoadEnv()
	assert.ErrorContains(t, err, "parse env")
}
