//go:build android

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot gdata 在 Android 上的根目录，其下按包名区分应用
const androidDataRoot = "/data/data"

// EnsureStorageDir 在 gdata 打开之前准备对象目录
//
// gdata 在 Android 上把每个对象存成 /data/data/{包名}/{object}/ 目录，
// 首次保存时只用 os.Mkdir 创建最后一级，包目录缺失时写入会失败。
// 这里提前建好对象目录，并写入一个临时文件确认可写。
func EnsureStorageDir(object string) error {
	root := GetStoragePath()
	if root == "" {
		return errors.New("cannot detect the Android package name")
	}
	dir := filepath.Join(root, object)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".writable")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回应用的数据目录，包名无法识别时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，包名在第一段
	for i, ch := range data {
		if ch == 0 || ch == '\n' {
			data = data[:i]
			break
		}
	}
	if len(data) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(data))
}
