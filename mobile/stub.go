//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口，只在 -tags mobile 时有内容
//
// 普通构建下保留这个空文件，使 go build ./... 和 go vet ./... 不会因为
// 包内没有可编译的文件而报错。
package mobile
