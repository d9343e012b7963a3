package intro

import (
	"fmt"
	"math"
)

// DefaultImageCount 当前版本的蒙太奇图片数量
const DefaultImageCount = 8

// MontageImagePaths 按模式生成连续编号的图片路径
//
// 编号从 1 开始，pattern 中使用 %02d 之类的动词补零，例如
// "assets/intro/%02d.png" → assets/intro/01.png ... assets/intro/08.png
func MontageImagePaths(pattern string, count int) []string {
	paths := make([]string, count)
	for i := range paths {
		paths[i] = fmt.Sprintf(pattern, i+1)
	}
	return paths
}

// maxTilt 蒙太奇图片最大倾斜角度（度）
const maxTilt = 4.5

// TiltDegrees 返回第 i 张图片在蒙太奇中的倾斜角度
//
// 角度由下标确定性生成，同一张图每次播放倾斜一致。
func TiltDegrees(i int) float64 {
	raw := math.Sin(float64(i+1)*999) * 6
	return math.Max(-maxTilt, math.Min(maxTilt, raw))
}
