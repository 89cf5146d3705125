// Package metrics 提供指标接收器实现
//
// 实现 pkg/interfaces 中定义的 Metrics 接口：
//   - prom.go - Prometheus 后端（prometheus/client_golang）
//   - nop.go  - 空实现（默认，丢弃所有事件）
//
// # 快速开始
//
//	sink := metrics.NewPrometheus(nil) // nil 使用默认 Registerer
//	cfg := respool.DefaultConfig()
//	cfg.Metrics = sink
//
// # 并发安全
//
// 两个实现都是并发安全的：
//   - Prometheus 后端用 sync.Mutex 保护向量注册表（冷路径），
//     计数器/仪表本身由 client_golang 的原子操作保证（热路径）
//   - 空实现无状态
package metrics
