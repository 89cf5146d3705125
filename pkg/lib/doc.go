// Package lib 包含基础设施工具库
//
// 本目录包含与池语义无关的通用工具库：
//
//   - log: 日志封装
//   - metrics: 指标接收器实现（Prometheus / 空实现）
//
// # 与 pkg/ 其他目录的关系
//
// pkg/ 目录包含两类内容：
//
//   - interfaces/: 公共契约（工厂、指标）
//   - lib/: 基础设施工具库（本目录）
//
// 工具库只依赖 interfaces/ 中的契约，从不反向依赖仓库根包。
package lib
