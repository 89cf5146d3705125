// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体承载全局默认值和具名池的覆盖配置
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（small/standard/server）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Defaults.Max = 32
//
//	// 使用预设配置
//	cfg := config.NewServerConfig()
//
//	// 为某个池单独覆盖
//	cfg.Pools["db"] = config.PoolConfig{Min: 4, Max: 64}
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
)

// Config 是 go-respool 的完整配置结构
//
// Defaults 对未单独配置的池生效；
// Pools 里的条目按池名覆盖默认值（零值字段继承默认值）。
type Config struct {
	// Defaults 建池的全局默认配置
	Defaults PoolConfig `json:"defaults"`

	// Pools 按池名的覆盖配置
	Pools map[string]PoolConfig `json:"pools,omitempty"`
}

// NewConfig 创建默认配置
//
// 返回的配置适用于大多数场景，
// 可以通过修改字段或应用预设来定制。
func NewConfig() *Config {
	return &Config{
		Defaults: DefaultPoolConfig(),
		Pools:    make(map[string]PoolConfig),
	}
}

// NewServerConfig 创建服务端预设配置
//
// 更大的池规模和更长的空闲期，适合常驻后端进程。
func NewServerConfig() *Config {
	cfg := NewConfig()
	ApplyPreset(cfg, "server")
	return cfg
}

// NewSmallConfig 创建小型预设配置
//
// 最小的资源占用，适合工具进程和测试。
func NewSmallConfig() *Config {
	cfg := NewConfig()
	ApplyPreset(cfg, "small")
	return cfg
}

// ApplyPreset 应用预设到现有配置
//
// 识别的预设：
//   - "small":    Min=0, Max=4, 空闲 1 分钟
//   - "standard": 默认值（等价于 NewConfig）
//   - "server":   Min=4, Max=64, 空闲 15 分钟
//
// 未识别的预设保持配置不变。
func ApplyPreset(cfg *Config, preset string) {
	switch preset {
	case "small":
		cfg.Defaults.Min = 0
		cfg.Defaults.Max = 4
		cfg.Defaults.IdleTimeout = Duration(minute)
	case "server":
		cfg.Defaults.Min = 4
		cfg.Defaults.Max = 64
		cfg.Defaults.IdleTimeout = Duration(15 * minute)
	case "standard":
		cfg.Defaults = DefaultPoolConfig()
	}
}

// ForPool 返回指定池的生效配置
//
// 存在覆盖条目时，其非零字段覆盖默认值；否则直接返回默认值。
func (c *Config) ForPool(name string) PoolConfig {
	pc, ok := c.Pools[name]
	if !ok {
		return c.Defaults
	}
	return mergePoolConfig(c.Defaults, pc)
}

// FromJSON 从 JSON 数据解析配置
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToJSON 序列化为 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
