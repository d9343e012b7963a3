//go:build !android

package utils

// EnsureStorageDir 桌面端 gdata 自己会创建 ~/.local/share/{app} 等目录
func EnsureStorageDir(object string) error {
	return nil
}

// GetStoragePath 桌面端不需要，返回空字符串
func GetStoragePath() string {
	return ""
}
