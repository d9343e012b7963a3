//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg org.cougarbots.site -o build/android/cougarbots.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Cougarbots.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/cougarbots/site/internal/logging"
	"github.com/cougarbots/site/pkg/app"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/embedded"
	"github.com/cougarbots/site/pkg/game"
	"github.com/cougarbots/site/pkg/utils"
)

func init() {
	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	// 安全区由宿主工程通过环境变量传入（刘海屏）
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("环境变量解析失败: %v", err)
	}
	logger, err := logging.New(env.Verbose)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	cfg := app.Config{
		Verbose:         env.Verbose,
		Logger:          logger,
		IntroConfigPath: config.DefaultIntroConfigPath,
		SafeArea:        utils.SafeArea{Top: env.SafeAreaTop, Bottom: env.SafeAreaBottom},
		Settings:        game.OpenSettingsManager("cougarbots", logger),
	}

	siteApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(siteApp)
}
