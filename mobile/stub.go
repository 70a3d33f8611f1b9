//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口，真正的实现只在 -tags mobile 时编译
package mobile

// Dummy 让普通构建下 ./... 仍能编译该包
func Dummy() {}
