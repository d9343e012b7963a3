package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/utils"
)

// 团队主页的占位内容
const (
	hostName     = "Canterbury Cougarbots"
	hostSubline  = "FRC Team 11436 • Fort Myers, FL"
	hostKicker   = "2026 • Rookie season"
	hostHeadline = "Building robots."
	hostMuted    = "Building leaders."
	hostChip     = "FRC • 11436"
)

var hostCards = []struct{ title, body string }{
	{"Student-Led", "Design, build, code, outreach: run by students with mentor guidance."},
	{"STEM + Community", "We demo robotics at school and local events to inspire younger students."},
	{"Sponsor Impact", "Funding supports parts, tools, safety gear, registration, and travel."},
}

var (
	pageBackground = color.RGBA{R: 7, G: 10, B: 28, A: 255}
	cardSurface    = color.RGBA{R: 15, G: 15, B: 15, A: 15} // white/6 (premultiplied)
	mutedText      = 0.65
)

// 视差幅度，鼠标居中时为零
const (
	parallaxMaxX     = 16.0
	parallaxMaxY     = 12.0
	parallaxHoverSec = 0.08
	parallaxRestSec  = 0.32
)

// HostScene 开场动画下方的团队主页占位
//
// 只负责静态排版和右侧队徽卡片的鼠标视差；页面的其余内容不在这里实现。
type HostScene struct {
	rm       *game.ResourceManager
	viewport *intro.Viewport
	logoPath string
	logger   *zap.Logger

	pointerX, pointerY float64 // 归一化鼠标位置 [0, 1]
	hovering           bool
	offsetX, offsetY   float64 // 当前视差位移（像素）
}

// NewHostScene 创建主页场景
func NewHostScene(rm *game.ResourceManager, viewport *intro.Viewport, logoPath string, logger *zap.Logger) *HostScene {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostScene{
		rm:       rm,
		viewport: viewport,
		logoPath: logoPath,
		logger:   logger.Named("host-scene"),
		pointerX: 0.5,
		pointerY: 0.5,
	}
}

// Name 实现 game.Named
func (h *HostScene) Name() string { return "HostScene" }

// Update 跟踪鼠标并让视差位移逼近目标
func (h *HostScene) Update(deltaTime float64) {
	x, y := utils.GetPointerPosition()
	h.SetPointer(x, y)
	h.Tick(deltaTime)
}

// SetPointer 记录鼠标位置；落在视口外时视为离开
func (h *HostScene) SetPointer(x, y int) {
	w, hh := h.size()
	if w <= 0 || hh <= 0 {
		return
	}
	inside := x >= 0 && y >= 0 && x < w && y < hh
	h.hovering = inside
	if !inside {
		h.pointerX, h.pointerY = 0.5, 0.5
		return
	}
	h.pointerX = utils.Clamp01(float64(x) / float64(w))
	h.pointerY = utils.Clamp01(float64(y) / float64(hh))
}

// Tick 推进视差过渡
func (h *HostScene) Tick(deltaTime float64) {
	tx, ty := h.ParallaxTarget()
	seconds := parallaxRestSec
	if h.hovering {
		seconds = parallaxHoverSec
	}
	k := math.Min(1, deltaTime/seconds)
	h.offsetX += (tx - h.offsetX) * k
	h.offsetY += (ty - h.offsetY) * k
}

// ParallaxTarget 当前鼠标位置对应的目标位移
func (h *HostScene) ParallaxTarget() (float64, float64) {
	return (h.pointerX - 0.5) * parallaxMaxX, (h.pointerY - 0.5) * parallaxMaxY
}

// ParallaxOffset 当前视差位移
func (h *HostScene) ParallaxOffset() (float64, float64) {
	return h.offsetX, h.offsetY
}

func (h *HostScene) size() (int, int) {
	if h.viewport == nil {
		return 0, 0
	}
	return h.viewport.Size()
}

// Draw 绘制主页
func (h *HostScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)
	w, hh := h.size()
	if w <= 0 || hh <= 0 {
		b := screen.Bounds()
		w, hh = b.Dx(), b.Dy()
	}
	phone := intro.IsPhone(w, hh)

	margin := 32.0
	if phone {
		margin = 16
	}
	contentW := math.Min(float64(w)-2*margin, 1152)
	left := (float64(w) - contentW) / 2

	// 顶部导航卡片
	navH := 64.0
	vector.DrawFilledRect(screen, float32(left), 12, float32(contentW), float32(navH), cardSurface, false)
	vector.StrokeRect(screen, float32(left), 12, float32(contentW), float32(navH), 1, hairline, false)
	h.drawLogo(screen, left+16, 12+12, 40)
	h.drawText(screen, hostName, 14, left+68, 12+14, 1)
	h.drawText(screen, hostSubline, 12, left+68, 12+36, mutedText)

	// 左侧文案
	y := 12 + navH + 40
	h.drawText(screen, hostKicker, 12, left, y, 0.8)
	y += 28
	headSize := 48.0
	if phone {
		headSize = 34
	}
	h.drawText(screen, hostHeadline, headSize, left, y, 1)
	y += headSize + 6
	h.drawText(screen, hostMuted, headSize, left, y, mutedText)
	y += headSize + 32

	// 三张说明卡片；手机上纵向排列
	cols := 3
	if phone {
		cols = 1
	}
	textW := contentW
	if !phone {
		textW = contentW * 0.55
	}
	gap := 12.0
	cardW := (textW - gap*float64(cols-1)) / float64(cols)
	cardH := 96.0
	for i, c := range hostCards {
		cx := left + float64(i%cols)*(cardW+gap)
		cy := y + float64(i/cols)*(cardH+gap)
		vector.DrawFilledRect(screen, float32(cx), float32(cy), float32(cardW), float32(cardH), cardSurface, false)
		vector.StrokeRect(screen, float32(cx), float32(cy), float32(cardW), float32(cardH), 1, hairline, false)
		h.drawText(screen, c.title, 14, cx+14, cy+14, 1)
		h.drawWrapped(screen, c.body, 12, cx+14, cy+38, cardW-28, mutedText)
	}

	// 右侧队徽卡片，随鼠标视差移动
	if !phone {
		size := math.Min(contentW*0.38, 420)
		lx := left + contentW - size + h.offsetX
		ly := 12 + navH + 40 + h.offsetY
		vector.DrawFilledRect(screen, float32(lx), float32(ly), float32(size), float32(size), cardSurface, false)
		vector.StrokeRect(screen, float32(lx), float32(ly), float32(size), float32(size), 1, hairline, false)
		h.drawLogo(screen, lx+24, ly+24, size-48)
		h.drawText(screen, hostChip, 12, lx+size-96, ly-14, mutedText)
	}
}

func (h *HostScene) drawLogo(screen *ebiten.Image, x, y, size float64) {
	if h.rm == nil || h.logoPath == "" {
		return
	}
	img := h.rm.GetImage(h.logoPath)
	if img == nil {
		if h.rm.Failed(h.logoPath) != nil {
			return
		}
		var err error
		if img, err = h.rm.LoadImage(h.logoPath); err != nil {
			h.logger.Debug("logo unavailable", zap.Error(err))
			return
		}
	}
	op := &ebiten.DrawImageOptions{}
	coverInto(op, img, size, size, 1)
	op.GeoM.Translate(x+size/2, y+size/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (h *HostScene) drawText(screen *ebiten.Image, str string, size, x, y, alpha float64) {
	if h.rm == nil {
		return
	}
	face, err := h.rm.Face(size)
	if err != nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

// drawWrapped 按宽度换行绘制，行距为字号 + 4
func (h *HostScene) drawWrapped(screen *ebiten.Image, str string, size, x, y, maxWidth, alpha float64) {
	if h.rm == nil {
		return
	}
	face, err := h.rm.Face(size)
	if err != nil {
		return
	}
	for i, line := range utils.WrapText(str, face, maxWidth) {
		h.drawText(screen, line, size, x, y+float64(i)*(size+4), alpha)
	}
}
