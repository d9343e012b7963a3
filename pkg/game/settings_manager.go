package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/utils"
)

// DisplaySettings 窗口显示设置
//
// 只保存宿主窗口的偏好；开场动画的任何状态都不持久化，每次启动都完整播放。
type DisplaySettings struct {
	Fullscreen   bool `yaml:"fullscreen"`   // 启动时是否全屏
	WindowWidth  int  `yaml:"windowWidth"`  // 上次退出时的窗口宽度
	WindowHeight int  `yaml:"windowHeight"` // 上次退出时的窗口高度
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		Fullscreen:   false,
		WindowWidth:  config.WindowWidth,
		WindowHeight: config.WindowHeight,
	}
}

// SettingsManager 设置管理器
// 负责显示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DisplaySettings // 当前设置
	logger       *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - logger: 日志器，可为 nil
//
// 加载失败不是致命错误，会记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager, logger *zap.Logger) *SettingsManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logger.Named("settings"),
	}
	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm
}

// OpenSettingsManager 打开应用的 gdata 存储并创建设置管理器
// 存储不可用时返回降级模式的管理器
func OpenSettingsManager(appName string, logger *zap.Logger) *SettingsManager {
	if err := utils.EnsureStorageDir(settingsObject); err != nil && logger != nil {
		logger.Warn("storage directory unavailable",
			zap.String("path", utils.GetStoragePath()),
			zap.Error(err))
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("gdata unavailable, settings will not persist", zap.Error(err))
		}
		manager = nil
	}
	return NewSettingsManager(manager, logger)
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = sanitize(loaded)
	sm.logger.Debug("settings loaded",
		zap.Bool("fullscreen", sm.settings.Fullscreen),
		zap.Int("width", sm.settings.WindowWidth),
		zap.Int("height", sm.settings.WindowHeight))
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	sm.logger.Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DisplaySettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetWindowSize 记录窗口尺寸，小于最小尺寸的值会被修正
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetWindowSize(width, height int) {
	sm.settings.WindowWidth = width
	sm.settings.WindowHeight = height
	sm.settings = sanitize(sm.settings)
}

// sanitize 修正损坏或过小的窗口尺寸
func sanitize(s *DisplaySettings) *DisplaySettings {
	if s.WindowWidth < config.MinWindowWidth {
		s.WindowWidth = config.MinWindowWidth
	}
	if s.WindowHeight < config.MinWindowHeight {
		s.WindowHeight = config.MinWindowHeight
	}
	return s
}
