// Package interfaces 定义 go-respool 的公共接口
//
// 本包只包含池与外部协作者之间的契约，采用扁平命名：
//
// # 协作者契约
//
//   - factory.go - 资源工厂（创建/销毁/校验/复位具体资源）
//   - metrics.go - 指标接收器（计数器/仪表/直方图）
//
// # 设计约定
//
// 池核心永远不了解资源内部结构：所有资源语义通过 Factory 注入。
// 指标事件即发即弃，接收端实现不得阻塞池的关键路径。
//
// 接口定义与实现分离：本包无任何实现代码，
// 实现位于仓库根包（池、注册表）和 pkg/lib/metrics（指标接收器）。
package interfaces
