// Package watch 监听磁盘上的开场动画配置并热重载
//
// 编辑器保存文件时常常先写临时文件再改名，所以监听的是配置所在目录，
// 再按文件名过滤事件。连续的保存事件在 debounce 窗口内合并为一次重载。
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cougarbots/site/pkg/config"
)

// DefaultDebounce 合并连续保存事件的窗口
const DefaultDebounce = 150 * time.Millisecond

// Options 监听参数
type Options struct {
	Debounce time.Duration
	Logger   *zap.Logger
	// OnReload 解析并校验通过的新配置
	OnReload func(*config.IntroConfig)
	// OnError 读取或解析失败；为空时只记录日志
	OnError func(error)
}

// Watcher 配置文件监听器
type Watcher struct {
	path     string
	name     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	onReload func(*config.IntroConfig)
	onError  func(error)
}

// New 创建监听器并开始监听配置所在目录
func New(path string, opts Options) (*Watcher, error) {
	if opts.OnReload == nil {
		return nil, errors.New("watch: OnReload is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		name:     filepath.Base(abs),
		watcher:  fw,
		debounce: opts.Debounce,
		logger:   logger.Named("watch").With(zap.String("path", abs)),
		onReload: opts.OnReload,
		onError:  opts.OnError,
	}, nil
}

// Run 处理文件事件直到 ctx 取消，返回前关闭底层 watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Debug("watching intro config")
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config event", zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.fail(fmt.Errorf("watcher error: %w", err))

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.name {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// reload 直接读取磁盘文件，不经过嵌入资源
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.fail(fmt.Errorf("read %s: %w", w.path, err))
		return
	}
	cfg, err := config.ParseIntroConfig(data)
	if err != nil {
		w.fail(err)
		return
	}
	w.logger.Info("intro config reloaded", zap.Int("images", cfg.ImageCount))
	w.onReload(cfg)
}

func (w *Watcher) fail(err error) {
	w.logger.Warn("intro config reload failed", zap.Error(err))
	if w.onError != nil {
		w.onError(err)
	}
}

func (w *Watcher) close() {
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close watcher", zap.Error(err))
	}
}
