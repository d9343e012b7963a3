package scenes

import (
	"image"
	"math"

	"github.com/cougarbots/site/pkg/utils"
)

// 桌面布局常量（逻辑像素）
const (
	desktopPortraitWidthRatio = 0.68
	desktopPortraitMaxWidth   = 520
	desktopCaptionTop         = 56
	desktopCaptionMaxWidth    = 768
	desktopCaptionHeight      = 112
	desktopSkipMargin         = 16
	desktopHintBottom         = 24
	desktopLogoSize           = 64

	phonePortraitWidthRatio  = 0.86
	phonePortraitHeightRatio = 0.66
	phonePortraitMaxHeight   = 740
	phoneCaptionTop          = 56
	phoneCaptionHeight       = 100
	phoneSkipMargin          = 12
	phoneHintBottom          = 16
	phoneLogoSize            = 56

	captionSidePadding = 16
	skipButtonWidth    = 72
	skipButtonHeight   = 34
)

// IntroLayout 开场动画各元素的屏幕位置与字号
//
// 由视口尺寸、设备类别和安全区决定，与动画状态无关。
type IntroLayout struct {
	Width, Height int

	Caption  image.Rectangle // 顶部文案卡片
	Portrait image.Rectangle // 倾斜的图片框（旋转前）
	Skip     image.Rectangle // Skip 按钮热区
	HintY    int             // 底部提示的基线
	LogoSize int

	BrandSize    float64
	HeadlineSize float64
	TaglineSize  float64
	EyebrowSize  float64
	TitleSize    float64
	SubtitleSize float64
	DetailSize   float64
	SkipSize     float64
}

// ComputeIntroLayout 计算给定视口下的布局
//
// 手机：图片框宽 86vw、高 min(66vh, 740)，并为安全区留出上下边距。
// 桌面：图片框宽 min(68vw, 520)，3:4 竖幅。
func ComputeIntroLayout(width, height int, phone bool, safe utils.SafeArea) IntroLayout {
	if !phone {
		safe = utils.SafeArea{}
	}
	safe = safe.Clamp()
	l := IntroLayout{Width: width, Height: height}
	vw := float64(width) / 100

	var portraitW, portraitH int
	var captionTop, captionH, skipMargin, hintBottom int
	if phone {
		portraitW = int(math.Floor(float64(width) * phonePortraitWidthRatio))
		portraitH = int(math.Floor(math.Min(float64(height)*phonePortraitHeightRatio, phonePortraitMaxHeight)))
		captionTop, captionH = phoneCaptionTop, phoneCaptionHeight
		skipMargin, hintBottom = phoneSkipMargin, phoneHintBottom
		l.LogoSize = phoneLogoSize

		l.BrandSize = 10
		l.HeadlineSize = clampf(5.2*vw, 18, 30)
		l.TaglineSize = 12
		l.EyebrowSize = 11
		l.TitleSize = clampf(7*vw, 28, 56)
		l.SubtitleSize = clampf(6*vw, 22, 48)
		l.DetailSize = 12
		l.SkipSize = 12
	} else {
		portraitW = int(math.Floor(math.Min(float64(width)*desktopPortraitWidthRatio, desktopPortraitMaxWidth)))
		portraitH = portraitW * 4 / 3
		captionTop, captionH = desktopCaptionTop, desktopCaptionHeight
		skipMargin, hintBottom = desktopSkipMargin, desktopHintBottom
		l.LogoSize = desktopLogoSize

		l.BrandSize = 11
		l.HeadlineSize = 30
		l.TaglineSize = 14
		l.EyebrowSize = 12
		l.TitleSize = 60
		l.SubtitleSize = 48
		l.DetailSize = 14
		l.SkipSize = 14
	}

	// 图片框在安全区内居中
	usableTop := safe.Top
	usableH := height - safe.Vertical()
	px := (width - portraitW) / 2
	py := usableTop + (usableH-portraitH)/2
	l.Portrait = image.Rect(px, py, px+portraitW, py+portraitH)

	captionW := min(width-2*captionSidePadding, desktopCaptionMaxWidth)
	if captionW < 0 {
		captionW = 0
	}
	cx := (width - captionW) / 2
	cy := safe.Top + captionTop
	l.Caption = image.Rect(cx, cy, cx+captionW, cy+captionH)

	sx := width - skipMargin - skipButtonWidth
	sy := safe.Top + skipMargin
	l.Skip = image.Rect(sx, sy, sx+skipButtonWidth, sy+skipButtonHeight)

	l.HintY = height - safe.Bottom - hintBottom
	return l
}

// HitSkip 判断点击是否落在 Skip 按钮内（Max 边不算在内）
func (l IntroLayout) HitSkip(x, y int) bool {
	return image.Pt(x, y).In(l.Skip)
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
