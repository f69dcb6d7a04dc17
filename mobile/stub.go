//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建（桌面端、终端版、go test ./...）只编译这个文件，
// 绑定入口 mobile.go 需要 ebitenmobile 和 -tags mobile。
package mobile

// Dummy 与 mobile.go 中的同名函数对应，保证两种构建下包的导出一致
func Dummy() {}
