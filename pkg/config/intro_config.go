package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cougarbots/site/pkg/embedded"
	"github.com/cougarbots/site/pkg/intro"
)

// DefaultIntroConfigPath 内置开场动画配置文件
const DefaultIntroConfigPath = "data/intro.yaml"

// IntroConfig 开场动画配置（data/intro.yaml）
//
// 加载时先填入默认值，YAML 中出现的键覆盖默认值，未出现的键保持默认。
type IntroConfig struct {
	ImageCount   int           `yaml:"image_count"`   // 蒙太奇图片数量
	ImagePattern string        `yaml:"image_pattern"` // 图片路径模式，编号从 1 开始补零
	LogoPath     string        `yaml:"logo_path"`     // 标题上方的队徽
	Text         IntroText     `yaml:"text"`          // 文案
	Timings      TimingsConfig `yaml:"timings"`       // 时间与暗度常量
}

// IntroText 开场动画中出现的全部文案
type IntroText struct {
	Brand           string `yaml:"brand"`
	CaptionLine1    string `yaml:"caption_line1"`
	CaptionLine2    string `yaml:"caption_line2"`
	Tagline         string `yaml:"tagline"`
	LoadingHint     string `yaml:"loading_hint"`
	SkipLabel       string `yaml:"skip_label"`
	TitleEyebrow    string `yaml:"title_eyebrow"`
	TitleName       string `yaml:"title_name"`
	TitleDetail     string `yaml:"title_detail"`
	SubtitleEyebrow string `yaml:"subtitle_eyebrow"`
	SubtitleText    string `yaml:"subtitle_text"`
}

// TimingsConfig intro.Timings 的 YAML 形式，时长以毫秒表示
type TimingsConfig struct {
	InitialDelayMs int     `yaml:"initial_delay_ms"`
	DecayFactor    float64 `yaml:"decay_factor"`
	MinDelayMs     int     `yaml:"min_delay_ms"`
	FlashMs        int     `yaml:"flash_ms"`
	CaptionDelayMs int     `yaml:"caption_delay_ms"`

	InitialDarkness  float64 `yaml:"initial_darkness"`
	DarknessStep     float64 `yaml:"darkness_step"`
	MontageCeiling   float64 `yaml:"montage_ceiling"`
	EndDarkness      float64 `yaml:"end_darkness"`
	TitleDarkness    float64 `yaml:"title_darkness"`
	SubtitleDarkness float64 `yaml:"subtitle_darkness"`
	RevealDarkness   float64 `yaml:"reveal_darkness"`

	TitleDelayMs     int `yaml:"title_delay_ms"`
	TitleDwellMs     int `yaml:"title_dwell_ms"`
	SubtitleDwellMs  int `yaml:"subtitle_dwell_ms"`
	SlideUpDelayMs   int `yaml:"slide_up_delay_ms"`
	RevealDurationMs int `yaml:"reveal_duration_ms"`
	SkipDelayMs      int `yaml:"skip_delay_ms"`
	SlideDurationMs  int `yaml:"slide_duration_ms"`
}

// DefaultIntroConfig 返回与线上站点一致的默认配置
func DefaultIntroConfig() *IntroConfig {
	return &IntroConfig{
		ImageCount:   intro.DefaultImageCount,
		ImagePattern: "assets/intro/%02d.png",
		LogoPath:     "assets/images/logo.png",
		Text: IntroText{
			Brand:           "COUGARBOTS",
			CaptionLine1:    "Behind every success story,",
			CaptionLine2:    "is a strong family.",
			Tagline:         "Moments from build season & beyond",
			LoadingHint:     "Loading Cougarbots…",
			SkipLabel:       "Skip",
			TitleEyebrow:    "CANTERBURY SCHOOL OF FORT MYERS",
			TitleName:       "Canterbury Cougarbots",
			TitleDetail:     "FIRST Robotics Competition • Team 11436",
			SubtitleEyebrow: "2026",
			SubtitleText:    "Rookie Season",
		},
		Timings: TimingsFromIntro(intro.DefaultTimings()),
	}
}

// TimingsFromIntro 把 intro.Timings 转换为 YAML 形式
func TimingsFromIntro(t intro.Timings) TimingsConfig {
	return TimingsConfig{
		InitialDelayMs: millis(t.InitialDelay),
		DecayFactor:    t.DecayFactor,
		MinDelayMs:     millis(t.MinDelay),
		FlashMs:        millis(t.FlashLength),
		CaptionDelayMs: millis(t.CaptionDelay),

		InitialDarkness:  t.InitialDarkness,
		DarknessStep:     t.DarknessStep,
		MontageCeiling:   t.MontageCeiling,
		EndDarkness:      t.EndDarkness,
		TitleDarkness:    t.TitleDarkness,
		SubtitleDarkness: t.SubtitleDark,
		RevealDarkness:   t.RevealDarkness,

		TitleDelayMs:     millis(t.TitleDelay),
		TitleDwellMs:     millis(t.TitleDwell),
		SubtitleDwellMs:  millis(t.SubtitleDwell),
		SlideUpDelayMs:   millis(t.SlideUpDelay),
		RevealDurationMs: millis(t.RevealDuration),
		SkipDelayMs:      millis(t.SkipDelay),
		SlideDurationMs:  millis(t.SlideDuration),
	}
}

// ToIntro 转换为状态机使用的 intro.Timings
func (c TimingsConfig) ToIntro() intro.Timings {
	return intro.Timings{
		InitialDelay: ms(c.InitialDelayMs),
		DecayFactor:  c.DecayFactor,
		MinDelay:     ms(c.MinDelayMs),
		FlashLength:  ms(c.FlashMs),
		CaptionDelay: ms(c.CaptionDelayMs),

		InitialDarkness: c.InitialDarkness,
		DarknessStep:    c.DarknessStep,
		MontageCeiling:  c.MontageCeiling,
		EndDarkness:     c.EndDarkness,
		TitleDarkness:   c.TitleDarkness,
		SubtitleDark:    c.SubtitleDarkness,
		RevealDarkness:  c.RevealDarkness,

		TitleDelay:     ms(c.TitleDelayMs),
		TitleDwell:     ms(c.TitleDwellMs),
		SubtitleDwell:  ms(c.SubtitleDwellMs),
		SlideUpDelay:   ms(c.SlideUpDelayMs),
		RevealDuration: ms(c.RevealDurationMs),
		SkipDelay:      ms(c.SkipDelayMs),
		SlideDuration:  ms(c.SlideDurationMs),
	}
}

// ImagePaths 返回蒙太奇图片路径列表
func (c *IntroConfig) ImagePaths() []string {
	return intro.MontageImagePaths(c.ImagePattern, c.ImageCount)
}

// LoadIntroConfig 加载开场动画配置
//
// 路径存在于嵌入资源中时从 embed.FS 读取，否则从磁盘读取
// （开发时可以指向工作目录中的文件并热重载）。
func LoadIntroConfig(path string) (*IntroConfig, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intro config file %s: %w", path, err)
	}
	cfg, err := ParseIntroConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid intro config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseIntroConfig 解析 YAML 数据并校验
func ParseIntroConfig(data []byte) (*IntroConfig, error) {
	cfg := DefaultIntroConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse intro config YAML: %w", err)
	}
	if err := validateIntroConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateIntroConfig(cfg *IntroConfig) error {
	if cfg.ImageCount <= 0 {
		return fmt.Errorf("image_count must be positive, got %d", cfg.ImageCount)
	}
	if !strings.Contains(cfg.ImagePattern, "%") {
		return fmt.Errorf("image_pattern %q has no number verb", cfg.ImagePattern)
	}
	if err := cfg.Timings.ToIntro().Validate(); err != nil {
		return fmt.Errorf("timings: %w", err)
	}
	return nil
}

func millis(d time.Duration) int {
	return int(d / time.Millisecond)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
