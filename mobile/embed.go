//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// data/ 目录需与项目根目录的 data/ 保持一致。
package mobile

import "embed"

//go:embed data
var dataFS embed.FS
