// Package interfaces 定义 go-respool 公共接口
//
// 本文件定义资源工厂接口，池通过它创建、销毁、校验具体资源。
package interfaces

import "context"

// Factory 定义资源工厂接口
//
// Factory 是池接触具体资源语义的唯一途径：
// 池只负责数量、生命周期和并发控制，资源内部结构由工厂封装。
//
// 类型参数 T 是具体的资源句柄类型（数据库连接、HTTP 客户端等）。
type Factory[T any] interface {
	// Create 创建一个可直接使用的资源
	//
	// ctx 携带单次创建的超时（由池的 CreateTimeout 推导）。
	// 创建失败可重试，重试策略由池的配置决定。
	Create(ctx context.Context) (T, error)

	// Destroy 销毁资源，释放底层句柄
	//
	// ctx 携带单次销毁的超时（由池的 DestroyTimeout 推导）。
	// 销毁失败只记录日志，不会阻塞池的状态变更。
	Destroy(ctx context.Context, handle T) error

	// Validate 快速校验资源是否仍然可用
	//
	// 返回 false 的资源会被标记失效并销毁。
	// 实现必须保持廉价：回收循环会对空闲超时的资源逐个调用。
	Validate(handle T) bool
}

// Resetter 定义可选的资源复位接口
//
// 工厂实现 Resetter 后，池会在资源归还空闲集之前调用 Reset，
// 清理每次使用残留的状态（如回滚未提交的事务）。
// 复位失败的资源被标记失效并销毁。
//
// 未实现 Resetter 的工厂，其资源被视为使用间无状态。
type Resetter[T any] interface {
	// Reset 清理资源的每次使用状态
	Reset(handle T) error
}
