package scenes

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/intro"
)

// 颜色
var (
	opaqueBlack  = color.RGBA{A: 255}
	navyOverlay  = color.RGBA{R: 10, G: 15, B: 44, A: 255}
	accentGold   = color.RGBA{R: 0xFF, G: 0xC4, B: 0x00, A: 255}
	accentBlue   = color.RGBA{R: 0x1E, G: 0x5B, B: 0xFF, A: 255}
	cardFill     = color.RGBA{A: 64}                      // black/25
	hairline     = color.RGBA{R: 26, G: 26, B: 26, A: 26} // white/10 (premultiplied)
	skipFill     = color.RGBA{R: 13, G: 13, B: 13, A: 13} // white/5 (premultiplied)
	backdropFade = float32(0.4)
)

// Draw 绘制开场覆盖层；结束或关闭后不绘制任何内容
func (s *IntroScene) Draw(screen *ebiten.Image) {
	if s.closed || s.seq.Done() {
		return
	}
	s.refreshLayout()
	l := s.layout
	if l.Width <= 0 || l.Height <= 0 {
		return
	}
	s.ensureCanvas(l.Width, l.Height)

	st := s.seq.Snapshot()
	s.canvas.Fill(color.Black)
	s.drawBackdrop(s.canvas, st)
	s.drawCaption(s.canvas, st)
	s.drawPortrait(s.canvas, st)
	s.drawSkip(s.canvas)
	s.drawTitleOverlay(s.canvas)
	s.drawHint(s.canvas, st)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, s.SlideOffset())
	screen.DrawImage(s.canvas, op)
}

func (s *IntroScene) ensureCanvas(w, h int) {
	if s.pixel == nil {
		base := ebiten.NewImage(3, 3)
		base.Fill(color.White)
		s.pixel = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	if s.canvas != nil {
		if b := s.canvas.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		s.canvas.Deallocate()
	}
	s.canvas = ebiten.NewImage(w, h)
}

// image 取图片；加载失败的路径画成空帧，不再重试
func (s *IntroScene) image(path string) *ebiten.Image {
	if img := s.rm.GetImage(path); img != nil {
		return img
	}
	if s.rm.Failed(path) != nil {
		return nil
	}
	img, err := s.rm.LoadImage(path)
	if err != nil {
		s.logger.Debug("image unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return img
}

func (s *IntroScene) face(size float64) *text.GoTextFace {
	face, err := s.rm.Face(size)
	if err != nil {
		s.logger.Warn("font unavailable", zap.Error(err))
		return nil
	}
	return face
}

// drawBackdrop 放大的当前图片 + 黑色纵向渐变 + 闪白
func (s *IntroScene) drawBackdrop(dst *ebiten.Image, st intro.State) {
	w, h := float64(s.layout.Width), float64(s.layout.Height)
	if img := s.image(st.Image); img != nil {
		op := &ebiten.DrawImageOptions{}
		coverInto(op, img, w, h, 1.1)
		op.GeoM.Translate(w/2, h/2)
		op.ColorScale.ScaleAlpha(backdropFade)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
	}

	s.fillVerticalGradient(dst, 0, 0, w, h, opaqueBlack, st.Darkness, st.BackdropBottom)

	if s.flashFade.value > 0 {
		a := uint8(math.Round(255 * 0.08 * s.flashFade.value))
		vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.RGBA{R: a, G: a, B: a, A: a}, false)
	}
}

// drawCaption 顶部文案卡片：品牌、两行标语交替、副标题
func (s *IntroScene) drawCaption(dst *ebiten.Image, st intro.State) {
	r := s.layout.Caption
	if r.Dx() <= 0 {
		return
	}
	x, y := float32(r.Min.X), float32(r.Min.Y)
	cw, ch := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(dst, x, y, cw, ch, cardFill, false)
	vector.StrokeRect(dst, x, y, cw, ch, 1, hairline, false)

	if st.Phase != intro.PhaseMontage {
		return
	}
	cx := float64(r.Min.X) + float64(r.Dx())/2
	top := float64(r.Min.Y) + 10
	txt := s.cfg.Text

	s.drawCentered(dst, txt.Brand, s.layout.BrandSize, cx, top, color.White, 0.6)
	headY := top + s.layout.BrandSize + 8
	s.drawCentered(dst, txt.CaptionLine1, s.layout.HeadlineSize, cx, headY, color.White, 0.95*s.line1Fade.value)
	s.drawCentered(dst, txt.CaptionLine2, s.layout.HeadlineSize, cx, headY, color.White, 0.95*s.line2Fade.value)
	tagY := float64(r.Max.Y) - s.layout.TaglineSize - 10
	s.drawCentered(dst, txt.Tagline, s.layout.TaglineSize, cx, tagY, color.White, 0.55)
}

// drawPortrait 居中的竖幅图片，蒙太奇阶段轻微倾斜放大
func (s *IntroScene) drawPortrait(dst *ebiten.Image, st intro.State) {
	r := s.layout.Portrait
	pw, ph := r.Dx(), r.Dy()
	if pw <= 0 || ph <= 0 {
		return
	}
	if s.portrait == nil || s.portrait.Bounds().Dx() != pw || s.portrait.Bounds().Dy() != ph {
		if s.portrait != nil {
			s.portrait.Deallocate()
		}
		s.portrait = ebiten.NewImage(pw, ph)
	}

	card := s.portrait
	card.Fill(color.RGBA{R: 13, G: 13, B: 13, A: 13})
	if img := s.image(st.Image); img != nil {
		op := &ebiten.DrawImageOptions{}
		coverInto(op, img, float64(pw), float64(ph), 1)
		op.GeoM.Translate(float64(pw)/2, float64(ph)/2)
		op.Filter = ebiten.FilterLinear
		card.DrawImage(img, op)
	}
	// 底部压暗，高度 h-24 / h-28
	fadeH := 112.0
	if st.IsPhone {
		fadeH = 96
	}
	s.fillVerticalGradient(card, 0, float64(ph)-fadeH, float64(pw), fadeH, opaqueBlack, 0, 0.6)
	vector.StrokeRect(card, 0.5, 0.5, float32(pw)-1, float32(ph)-1, 1, hairline, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(pw)/2, -float64(ph)/2)
	op.GeoM.Scale(s.zoom, s.zoom)
	op.GeoM.Rotate(s.tilt * math.Pi / 180)
	op.GeoM.Translate(float64(r.Min.X)+float64(pw)/2, float64(r.Min.Y)+float64(ph)/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(card, op)
}

func (s *IntroScene) drawSkip(dst *ebiten.Image) {
	if !s.seq.Interactive() {
		return
	}
	r := s.layout.Skip
	x, y, w, h := float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, skipFill, false)
	vector.StrokeRect(dst, x, y, w, h, 1, hairline, false)

	face := s.face(s.layout.SkipSize)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X)+float64(r.Dx())/2, float64(r.Min.Y)+float64(r.Dy())/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(0.7)
	text.Draw(dst, s.cfg.Text.SkipLabel, face, op)
}

// drawTitleOverlay 标题与副标题：深蓝遮罩、队徽、两段文字与强调色横条
func (s *IntroScene) drawTitleOverlay(dst *ebiten.Image) {
	if s.overlayFade.value <= 0 && s.titleFade.value <= 0 && s.subtitleFade.value <= 0 {
		return
	}
	l := s.layout
	w, h := float64(l.Width), float64(l.Height)

	// 中心最深、上下渐淡，近似径向渐变
	a := s.overlayFade.value
	s.fillVerticalGradient(dst, 0, 0, w, h/2, navyOverlay, 0.10*a, 0.92*a)
	s.fillVerticalGradient(dst, 0, h/2, w, h/2, navyOverlay, 0.92*a, 0.10*a)

	barW := 96.0
	barGap := 24.0
	if s.seq.IsPhone() {
		barW, barGap = 80, 20
	}
	logo := float64(l.LogoSize)
	titleBlock := l.EyebrowSize + 12 + l.TitleSize + 8 + l.DetailSize + barGap + 3
	subtitleBlock := l.EyebrowSize + 12 + l.SubtitleSize + barGap + 3
	column := logo + 20 + titleBlock + subtitleBlock
	cx := w / 2
	y := (h - column) / 2

	// 队徽
	logoAlpha := math.Max(s.titleFade.value, s.subtitleFade.value)
	if logoAlpha > 0 {
		scale := 0.95 + 0.05*logoAlpha
		size := logo * scale
		lx, ly := cx-size/2, y+(logo-size)/2
		vector.DrawFilledRect(dst, float32(lx), float32(ly), float32(size), float32(size), skipFill, false)
		if img := s.image(s.cfg.LogoPath); img != nil {
			op := &ebiten.DrawImageOptions{}
			coverInto(op, img, size, size, 1)
			op.GeoM.Translate(cx, ly+size/2)
			op.ColorScale.ScaleAlpha(float32(logoAlpha))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, op)
		}
	}
	y += logo + 20

	txt := s.cfg.Text
	if f := s.titleFade.value; f > 0 {
		ty := y + (1-f)*hiddenBlockOffsetPx
		s.drawCentered(dst, txt.TitleEyebrow, l.EyebrowSize, cx, ty, color.White, 0.7*f)
		ty += l.EyebrowSize + 12
		s.drawCentered(dst, txt.TitleName, l.TitleSize, cx, ty, color.White, f)
		ty += l.TitleSize + 8
		s.drawCentered(dst, txt.TitleDetail, l.DetailSize, cx, ty, color.White, 0.7*f)
		ty += l.DetailSize + barGap
		s.drawBar(dst, cx, ty, barW, accentGold, f)
	}
	y += titleBlock

	if f := s.subtitleFade.value; f > 0 {
		sy := y + (1-f)*hiddenBlockOffsetPx
		s.drawCentered(dst, txt.SubtitleEyebrow, l.EyebrowSize, cx, sy, color.White, 0.7*f)
		sy += l.EyebrowSize + 12
		s.drawCentered(dst, txt.SubtitleText, l.SubtitleSize, cx, sy, color.White, f)
		sy += l.SubtitleSize + barGap
		s.drawBar(dst, cx, sy, barW, accentBlue, f)
	}
}

func (s *IntroScene) drawHint(dst *ebiten.Image, st intro.State) {
	if st.Phase != intro.PhaseMontage {
		return
	}
	face := s.face(12)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(s.layout.Width)/2, float64(s.layout.HintY))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(0.6)
	text.Draw(dst, s.cfg.Text.LoadingHint, face, op)
}

func (s *IntroScene) drawCentered(dst *ebiten.Image, str string, size, cx, top float64, clr color.Color, alpha float64) {
	if str == "" || alpha <= 0 {
		return
	}
	face := s.face(size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, top)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, str, face, op)
}

func (s *IntroScene) drawBar(dst *ebiten.Image, cx, y, width float64, clr color.RGBA, alpha float64) {
	c := color.RGBA{
		R: uint8(float64(clr.R) * alpha),
		G: uint8(float64(clr.G) * alpha),
		B: uint8(float64(clr.B) * alpha),
		A: uint8(float64(clr.A) * alpha),
	}
	vector.DrawFilledRect(dst, float32(cx-width/2), float32(y), float32(width), 3, c, true)
}

// fillVerticalGradient 用顶点色画一个从 topAlpha 渐变到 bottomAlpha 的矩形
func (s *IntroScene) fillVerticalGradient(dst *ebiten.Image, x, y, w, h float64, clr color.RGBA, topAlpha, bottomAlpha float64) {
	if w <= 0 || h <= 0 || s.pixel == nil {
		return
	}
	r, g, b := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255
	ta, ba := float32(topAlpha), float32(bottomAlpha)
	vs := []ebiten.Vertex{
		{DstX: float32(x), DstY: float32(y), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: ta},
		{DstX: float32(x + w), DstY: float32(y), SrcX: 2, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: ta},
		{DstX: float32(x), DstY: float32(y + h), SrcX: 1, SrcY: 2, ColorR: r, ColorG: g, ColorB: b, ColorA: ba},
		{DstX: float32(x + w), DstY: float32(y + h), SrcX: 2, SrcY: 2, ColorR: r, ColorG: g, ColorB: b, ColorA: ba},
	}
	is := []uint16{0, 1, 2, 1, 3, 2}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModeStraightAlpha}
	dst.DrawTriangles(vs, is, s.pixel, op)
}

// coverInto 设置 GeoM，使图片按 object-cover 铺满 w×h 并以原点为中心
func coverInto(op *ebiten.DrawImageOptions, img *ebiten.Image, w, h, zoom float64) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Max(w/iw, h/ih) * zoom
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(scale, scale)
}
