//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// //go:embed 只能引用包目录内的文件，构建前需要把 assets/ 和
// data/intro.yaml 复制到 mobile/ 目录：
//
//	cp -r assets mobile/ && mkdir -p mobile/data && cp data/intro.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/intro.yaml
var dataFS embed.FS
