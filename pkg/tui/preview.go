// Package tui 在终端中预览开场动画
//
// 预览与 ebiten 宿主共用同一个 intro.Sequence 和虚拟时钟，只是把快照
// 渲染成文字：阶段、当前图片、暗度条、文案和标题块。用于在没有图形
// 环境时检查节奏和 Skip 行为，配合 internal/watch 可以边改 YAML 边看效果。
package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/clock"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/intro"
)

// 终端字符格换算成像素时使用的默认尺寸
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
	DefaultFrame      = 50 * time.Millisecond
)

// Options 预览参数
type Options struct {
	// Frame 每个 tick 推进的虚拟时间，零值使用 DefaultFrame
	Frame time.Duration
	// CellWidth/CellHeight 一个字符格对应的像素，用于设备分类
	CellWidth, CellHeight int
	// ExitOnDone 开场结束后退出程序；否则停留在主页文字
	ExitOnDone bool
	Logger     *zap.Logger
}

// ConfigMsg 配置热重载后送入程序，预览会从头重新播放
type ConfigMsg struct {
	Config *config.IntroConfig
}

// ReloadErrMsg 配置重载失败，保留当前播放
type ReloadErrMsg struct {
	Err error
}

type tickMsg time.Time

// Model Bubble Tea 模型
type Model struct {
	cfg      *config.IntroConfig
	opts     Options
	logger   *zap.Logger
	viewport *intro.Viewport
	clock    *clock.Clock
	seq      *intro.Sequence
	styles   styles

	cols, rows int
	ready      bool
	done       bool
	quitting   bool
	mounts     int
	reloadErr  error
}

// New 创建预览模型并挂载开场动画
func New(cfg *config.IntroConfig, opts Options) (*Model, error) {
	if cfg == nil {
		return nil, errors.New("tui: intro config is required")
	}
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		cfg:      cfg,
		opts:     opts,
		logger:   logger.Named("tui"),
		viewport: intro.NewViewport(config.WindowWidth, config.WindowHeight),
		styles:   newStyles(),
	}
	if err := m.mount(); err != nil {
		return nil, err
	}
	return m, nil
}

// mount 用当前配置挂载新序列；失败时保留正在播放的序列
func (m *Model) mount() error {
	clk := clock.New()
	seq, err := intro.Mount(intro.Options{
		Images:    m.cfg.ImagePaths(),
		Timings:   m.cfg.Timings.ToIntro(),
		Scheduler: clk,
		Viewport:  m.viewport,
		Logger:    m.logger,
		OnDone:    func() { m.done = true },
	})
	if err != nil {
		return fmt.Errorf("mount intro: %w", err)
	}
	if m.seq != nil {
		m.seq.Unmount()
	}
	m.clock, m.seq = clk, seq
	m.done = false
	m.mounts++
	return nil
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init 启动帧循环
func (m *Model) Init() tea.Cmd {
	return tick(m.opts.Frame)
}

// Update 处理消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.ready = true
		m.viewport.Resize(msg.Width*m.opts.CellWidth, msg.Height*m.opts.CellHeight)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.seq.Unmount()
			return m, tea.Quit
		case "esc", " ", "space":
			m.seq.Skip()
		case "r":
			wasDone := m.done
			if err := m.mount(); err != nil {
				m.reloadErr = err
				return m, nil
			}
			if wasDone {
				return m, tick(m.opts.Frame)
			}
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.clock.Advance(m.opts.Frame)
		if m.done {
			if m.opts.ExitOnDone {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		return m, tick(m.opts.Frame)

	case ConfigMsg:
		if msg.Config == nil {
			return m, nil
		}
		wasDone := m.done
		prev := m.cfg
		m.cfg = msg.Config
		if err := m.mount(); err != nil {
			m.cfg = prev
			m.reloadErr = err
			m.logger.Warn("reloaded config rejected", zap.Error(err))
			return m, nil
		}
		m.reloadErr = nil
		m.logger.Info("intro config reloaded", zap.Int("mounts", m.mounts))
		if wasDone {
			return m, tick(m.opts.Frame)
		}

	case ReloadErrMsg:
		m.reloadErr = msg.Err
	}

	return m, nil
}

// Sequence 当前挂载的序列
func (m *Model) Sequence() *intro.Sequence { return m.seq }

// Clock 当前序列使用的时钟
func (m *Model) Clock() *clock.Clock { return m.clock }

// Done 开场是否已结束
func (m *Model) Done() bool { return m.done }

// Mounts 挂载次数（重播和热重载都会加一）
func (m *Model) Mounts() int { return m.mounts }

// ReloadErr 最近一次重载错误
func (m *Model) ReloadErr() error { return m.reloadErr }

// Device 当前视口的设备类别
func (m *Model) Device() intro.DeviceClass {
	return intro.ClassifyViewport(m.viewport.Size())
}
