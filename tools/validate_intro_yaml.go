// validate_intro_yaml 检查开场动画配置：未知键（拼写错误）和数值约束
//
//	go run ./tools [path]
package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cougarbots/site/pkg/config"
)

func main() {
	path := config.DefaultIntroConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 运行时加载会忽略未知键，这里严格解码以发现拼写错误
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var strict config.IntroConfig
	if err := dec.Decode(&strict); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确，没有未知键\n")

	cfg, err := config.ParseIntroConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置校验失败: %v\n", err)
		os.Exit(1)
	}

	timings := cfg.Timings.ToIntro()
	fmt.Printf("✅ 蒙太奇图片数量: %d\n", cfg.ImageCount)
	fmt.Printf("✅ 蒙太奇时长: %s\n", timings.MontageDuration(cfg.ImageCount))
	fmt.Printf("✅ 进入标题: %s，完成: %s\n", timings.TitleAt(cfg.ImageCount), timings.DoneAt(cfg.ImageCount))
}
