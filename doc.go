// Package respool 提供通用的有界资源池
//
// respool 管理昂贵资源（连接、会话、句柄等）的完整生命周期：
// 按需创建、空闲复用、失效回收、容量上限与公平等待。
//
// # 核心概念
//
// respool 围绕三个核心概念构建：
//
//   - Factory: 资源工厂，用户实现的创建/销毁/校验契约
//   - Pool: 有界资源池，提供 Acquire/Release 与后台回收
//   - Manager: 池注册表，按名字管理多个池并统一关闭
//
// # 快速开始
//
//	import (
//	    "github.com/dep2p/go-respool"
//	)
//
//	// 1. 实现资源工厂
//	type connFactory struct{ addr string }
//
//	func (f *connFactory) Create(ctx context.Context) (net.Conn, error) {
//	    var d net.Dialer
//	    return d.DialContext(ctx, "tcp", f.addr)
//	}
//
//	func (f *connFactory) Destroy(ctx context.Context, c net.Conn) error {
//	    return c.Close()
//	}
//
//	func (f *connFactory) Validate(c net.Conn) bool { return c != nil }
//
//	// 2. 创建并启动资源池
//	cfg := respool.DefaultConfig()
//	cfg.Min, cfg.Max = 2, 10
//	pool, err := respool.New[net.Conn]("db", &connFactory{addr: addr}, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pool.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Shutdown(context.Background())
//
//	// 3. 借出与归还
//	res, err := pool.Acquire(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conn := res.Handle()
//	// ... 使用 conn ...
//	pool.Release(res)
//
// # 借出语义
//
// Acquire 按固定顺序尝试三条路径：
//
//  1. 复用空闲资源（后进先出，跳过已失效的）
//  2. 未达 Max 上限时创建新资源（带重试与退避）
//  3. 进入先进先出等待队列，等待他人归还
//
// 等待受 AcquireTimeout 与调用方 ctx 双重约束，先到先生效。
// Release 永不失败：失效资源被销毁并在低于 Min 时后台补充。
//
// # 并发安全
//
// Pool 与 Manager 的全部公开方法均为并发安全。
// Resource 句柄在借出期间归调用方独占，归还后不得继续使用。
//
// # Fx 模块
//
// respool.Module 提供 *Manager 并挂接生命周期：
//
//	app := fx.New(
//	    respool.Module,
//	    respool.FxLogger(),
//	    fx.Invoke(func(m *respool.Manager) {
//	        // respool.CreatePool[net.Conn](ctx, m, "db", factory, cfg)
//	    }),
//	)
//
// 应用停止时 Manager 并行关闭全部已注册的池。
package respool
