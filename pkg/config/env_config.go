package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env 从环境变量读取的运行配置
type Env struct {
	// Verbose 启用详细日志
	Verbose bool `env:"COUGARBOTS_VERBOSE"`
	// MobileEmulate 桌面端模拟移动模式（触摸输入 + 安全区），用于本地调试
	MobileEmulate bool `env:"COUGARBOTS_MOBILE_EMULATE"`
	// IntroConfig 开场动画配置路径
	IntroConfig string `env:"COUGARBOTS_INTRO_CONFIG" envDefault:"data/intro.yaml"`
	// SafeAreaTop / SafeAreaBottom 手机上的安全区留白（像素），刘海屏使用
	SafeAreaTop    int `env:"COUGARBOTS_SAFE_AREA_TOP" envDefault:"0"`
	SafeAreaBottom int `env:"COUGARBOTS_SAFE_AREA_BOTTOM" envDefault:"0"`
}

// LoadEnv 解析环境变量
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
