package config

import "time"

const minute = time.Minute

// PoolConfig 资源池配置
//
// 配置单个池的规模和节奏：
//   - 资源数上下限
//   - 获取/创建/销毁超时
//   - 空闲回收
//   - 创建重试
type PoolConfig struct {
	// Min 资源数下限
	// 默认值: 2
	Min int `json:"min"`

	// Max 资源数上限
	// 默认值: 10
	Max int `json:"max"`

	// AcquireTimeout 获取资源的最长等待时间
	// 默认值: 30s
	AcquireTimeout Duration `json:"acquire_timeout,omitempty"`

	// CreateTimeout 单次创建超时
	// 默认值: 10s
	CreateTimeout Duration `json:"create_timeout,omitempty"`

	// DestroyTimeout 单次销毁超时
	// 默认值: 5s
	DestroyTimeout Duration `json:"destroy_timeout,omitempty"`

	// IdleTimeout 空闲回收阈值
	// 默认值: 5m
	IdleTimeout Duration `json:"idle_timeout,omitempty"`

	// ReapInterval 回收扫描间隔
	// 默认值: 1m
	ReapInterval Duration `json:"reap_interval,omitempty"`

	// CreateRetryInterval 创建重试间隔
	// 默认值: 1s
	CreateRetryInterval Duration `json:"create_retry_interval,omitempty"`

	// MaxRetries 创建最大重试次数
	// 0 表示不重试。
	// 默认值: 3
	MaxRetries int `json:"max_retries"`
}

// DefaultPoolConfig 返回默认的池配置
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Min:                 2,
		Max:                 10,
		AcquireTimeout:      Duration(30 * time.Second),
		CreateTimeout:       Duration(10 * time.Second),
		DestroyTimeout:      Duration(5 * time.Second),
		IdleTimeout:         Duration(5 * time.Minute),
		ReapInterval:        Duration(1 * time.Minute),
		CreateRetryInterval: Duration(1 * time.Second),
		MaxRetries:          3,
	}
}

// mergePoolConfig 用覆盖条目的非零字段覆盖默认值
//
// Min/MaxRetries 的零值是合法配置，无法与"未设置"区分，
// 因此覆盖条目总是整体接管这两个字段。
func mergePoolConfig(base, override PoolConfig) PoolConfig {
	merged := base
	merged.Min = override.Min
	merged.Max = override.Max
	merged.MaxRetries = override.MaxRetries
	if merged.Max == 0 {
		merged.Max = base.Max
	}
	if override.AcquireTimeout != 0 {
		merged.AcquireTimeout = override.AcquireTimeout
	}
	if override.CreateTimeout != 0 {
		merged.CreateTimeout = override.CreateTimeout
	}
	if override.DestroyTimeout != 0 {
		merged.DestroyTimeout = override.DestroyTimeout
	}
	if override.IdleTimeout != 0 {
		merged.IdleTimeout = override.IdleTimeout
	}
	if override.ReapInterval != 0 {
		merged.ReapInterval = override.ReapInterval
	}
	if override.CreateRetryInterval != 0 {
		merged.CreateRetryInterval = override.CreateRetryInterval
	}
	return merged
}
