// Package save 负责设置与战绩的本地持久化
//
// 数据通过 gdata 按对象/属性存储为 YAML，gdata 不可用时所有管理器以降级模式
// 工作（只在内存中保存数据，Save 不报错）。
package save

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "flight"

// OpenStorage 打开 gdata 存储
//
// 打开失败不是致命错误：返回 nil，调用方以降级模式继续运行。
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[Save] Warning: Failed to open gdata storage %q: %v (running without persistence)", appName, err)
		return nil
	}
	return manager
}
