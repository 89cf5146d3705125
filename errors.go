package respool

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidConfig 配置不合法
	ErrInvalidConfig = errors.New("invalid pool config")

	// ErrFactoryRequired 缺少资源工厂
	ErrFactoryRequired = errors.New("factory is required")

	// ────────────────────────────────────────────────────────────────────────
	// 池生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 池未启动
	ErrNotStarted = errors.New("pool not started")

	// ErrPoolShutdown 池已关闭
	//
	// 关闭后的 Acquire 调用以及关闭时仍在排队的等待者都收到此错误。
	ErrPoolShutdown = errors.New("pool is shut down")

	// ────────────────────────────────────────────────────────────────────────
	// 获取资源错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrCreateFailed 资源创建在重试耗尽后仍然失败
	//
	// 仅在空闲资源、新建、等待队列都无法满足请求时浮出给调用方。
	ErrCreateFailed = errors.New("resource creation failed")

	// ErrAcquireTimeout 等待资源超时
	ErrAcquireTimeout = errors.New("acquire timed out")

	// ────────────────────────────────────────────────────────────────────────
	// 注册表错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrDuplicatePool 池名称已被注册
	ErrDuplicatePool = errors.New("pool name already registered")

	// ErrPoolNotFound 池名称未注册
	ErrPoolNotFound = errors.New("pool not found")

	// ErrPoolTypeMismatch 池存在但句柄类型不匹配
	ErrPoolTypeMismatch = errors.New("pool handle type mismatch")

	// ErrManagerShutdown 注册表已关闭
	ErrManagerShutdown = errors.New("manager is shut down")
)
