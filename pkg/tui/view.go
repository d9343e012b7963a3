package tui

import (
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cougarbots/site/pkg/intro"
)

const barWidth = 32

// 与 ebiten 版本相同的强调色
var (
	gold  = lipgloss.Color("#FFC400")
	blue  = lipgloss.Color("#1E5BFF")
	navy  = lipgloss.Color("#0A0F2C")
	muted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	warn  = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
)

type styles struct {
	brand    lipgloss.Style
	caption  lipgloss.Style
	muted    lipgloss.Style
	label    lipgloss.Style
	flash    lipgloss.Style
	eyebrow  lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	err      lipgloss.Style
	frame    lipgloss.Style
}

func newStyles() styles {
	return styles{
		brand:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		caption:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(muted),
		label:    lipgloss.NewStyle().Foreground(muted).Width(10),
		flash:    lipgloss.NewStyle().Foreground(gold).Bold(true),
		eyebrow:  lipgloss.NewStyle().Foreground(muted).Bold(true),
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(gold).PaddingLeft(1),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(blue).PaddingLeft(1),
		err:      lipgloss.NewStyle().Foreground(warn),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(navy).Padding(1, 3).Width(64),
	}
}

// View 渲染当前快照
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.done {
		body = m.renderHost()
	} else {
		body = m.renderIntro()
	}
	if !m.ready {
		return body
	}
	return lipgloss.Place(m.cols, m.rows, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderIntro() string {
	st := m.seq.Snapshot()
	s := m.styles
	text := m.cfg.Text

	lines := []string{
		s.label.Render("phase") + st.Phase.String(),
		s.label.Render("image") + fmt.Sprintf("%d/%d  %s", st.Index+1, m.seq.ImageCount(), path.Base(st.Image)),
		s.label.Render("cadence") + fmt.Sprintf("%.0fms", m.seq.Cadence()),
		s.label.Render("darkness") + bar(st.Darkness, barWidth) + fmt.Sprintf(" %.2f", st.Darkness),
		s.label.Render("tilt") + fmt.Sprintf("%+.2f°", st.Tilt),
	}
	if st.SlideUp {
		lines = append(lines, s.label.Render("slide")+bar(st.SlideProgress, barWidth))
	}
	lines = append(lines, "")

	if st.CaptionVisible {
		caption := text.CaptionLine1
		if st.Caption == intro.CaptionLine2 {
			caption = text.CaptionLine2
		}
		flash := " "
		if st.Flash {
			flash = s.flash.Render("✦")
		}
		lines = append(lines,
			s.brand.Render(text.Brand)+" "+flash,
			s.caption.Render(caption),
			s.muted.Render(text.Tagline),
		)
	}
	if st.ShowTitle {
		lines = append(lines, renderBlock(s.eyebrow, s.title, text.TitleEyebrow, text.TitleName, text.TitleDetail, s.muted))
	}
	if st.ShowSubtitle {
		lines = append(lines, renderBlock(s.eyebrow, s.subtitle, text.SubtitleEyebrow, text.SubtitleText, "", s.muted))
	}

	lines = append(lines, "", m.renderFooter(st))
	return s.frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderBlock(eyebrow, block lipgloss.Style, top, main, detail string, mutedStyle lipgloss.Style) string {
	parts := []string{eyebrow.Render(top), main}
	if detail != "" {
		parts = append(parts, mutedStyle.Render(detail))
	}
	return block.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderFooter(st intro.State) string {
	w, h := m.viewport.Size()
	info := fmt.Sprintf("%s %dx%d • t=%s", m.Device(), w, h, m.seq.Elapsed().Truncate(time.Millisecond))
	hint := "esc/space skip • r replay • q quit"
	if !st.Interactive {
		hint = "r replay • q quit"
	}
	out := m.styles.muted.Render(info + "\n" + hint)
	if m.reloadErr != nil {
		out += "\n" + m.styles.err.Render("reload: "+m.reloadErr.Error())
	}
	return out
}

// renderHost 开场结束后显示的主页占位
func (m *Model) renderHost() string {
	s := m.styles
	text := m.cfg.Text
	status := "finished"
	if m.seq.Skipped() {
		status = "skipped"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.brand.Render(text.TitleName),
		s.muted.Render(text.TitleDetail),
		"",
		s.caption.Render("Building robots."),
		s.muted.Render("Building leaders."),
		"",
		s.muted.Render(fmt.Sprintf("intro %s at %s • r replay • q quit", status, m.seq.Elapsed().Truncate(time.Millisecond))),
	)
	if m.reloadErr != nil {
		body += "\n" + s.err.Render("reload: "+m.reloadErr.Error())
	}
	return s.frame.Render(body)
}

// bar 以字符条显示 [0, 1] 的比例
func bar(frac float64, width int) string {
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
