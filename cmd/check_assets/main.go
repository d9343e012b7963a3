// Command check_assets 检查开场动画引用的资源是否都已嵌入且可以解码
//
//	go run ./cmd/check_assets
package main

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/embedded"
)

func main() {
	cfg, err := config.LoadIntroConfig(config.DefaultIntroConfigPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	paths := append(cfg.ImagePaths(), cfg.LogoPath)
	missing := 0
	for _, path := range paths {
		data, err := embedded.ReadFileOrDisk(path)
		if err != nil {
			fmt.Printf("MISSING %s: %v\n", path, err)
			missing++
			continue
		}
		img, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			fmt.Printf("BROKEN  %s: %v\n", path, err)
			missing++
			continue
		}
		fmt.Printf("ok      %s  %s %dx%d  %d bytes  md5 %x\n", path, format, img.Width, img.Height, len(data), md5.Sum(data))
	}
	if missing > 0 {
		fmt.Printf("%d of %d assets unusable\n", missing, len(paths))
		os.Exit(1)
	}
	fmt.Printf("all %d assets ok\n", len(paths))
}
