//go:build !android

package utils

// EnsureStorageDir 桌面端由 gdata 自行创建存档目录
func EnsureStorageDir() error {
	return nil
}
