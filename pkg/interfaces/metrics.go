// Package interfaces 定义 go-respool 公共接口
//
// 本文件定义 Metrics 接口，池通过它上报观测事件。
package interfaces

// Labels 指标标签集合
type Labels map[string]string

// Metrics 定义指标接收器接口
//
// 池按名称发射计数器、仪表和直方图事件；
// 接收端如何存储、聚合不在池的关注范围内。
// 所有调用都是即发即弃，实现不得阻塞。
type Metrics interface {
	// GetCounter 获取计数器
	//
	// 同名同标签多次获取返回等价的计数器。
	GetCounter(name string, labels Labels) Counter

	// GetGauge 获取仪表
	GetGauge(name string, labels Labels) Gauge

	// GetHistogram 获取直方图
	GetHistogram(name string, labels Labels) Histogram
}

// Counter 计数器接口
type Counter interface {
	// Inc 增加 1
	Inc()

	// Add 增加指定值
	Add(delta float64)
}

// Gauge 仪表接口
type Gauge interface {
	// Set 设置值
	Set(value float64)

	// Inc 增加 1
	Inc()

	// Dec 减少 1
	Dec()

	// Add 增加指定值
	Add(delta float64)

	// Sub 减少指定值
	Sub(delta float64)
}

// Histogram 直方图接口
type Histogram interface {
	// Observe 观察值
	Observe(value float64)
}
