package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置不合法
var ErrInvalidConfig = errors.New("invalid config")

// Validate 验证配置的有效性
//
// 检查默认配置和所有覆盖条目，建议在使用配置前调用。
func (c *Config) Validate() error {
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	for name := range c.Pools {
		if name == "" {
			return fmt.Errorf("%w: empty pool name", ErrInvalidConfig)
		}
		pc := c.ForPool(name)
		if err := pc.Validate(); err != nil {
			return fmt.Errorf("pool %s: %w", name, err)
		}
	}
	return nil
}

// Validate 验证池配置
func (pc PoolConfig) Validate() error {
	if pc.Min < 0 {
		return fmt.Errorf("%w: min must be >= 0", ErrInvalidConfig)
	}
	if pc.Max < 1 {
		return fmt.Errorf("%w: max must be >= 1", ErrInvalidConfig)
	}
	if pc.Min > pc.Max {
		return fmt.Errorf("%w: min must be <= max", ErrInvalidConfig)
	}
	if pc.AcquireTimeout < 0 || pc.CreateTimeout < 0 || pc.DestroyTimeout < 0 {
		return fmt.Errorf("%w: timeouts must be >= 0", ErrInvalidConfig)
	}
	if pc.IdleTimeout < 0 || pc.ReapInterval < 0 || pc.CreateRetryInterval < 0 {
		return fmt.Errorf("%w: intervals must be >= 0", ErrInvalidConfig)
	}
	if pc.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be >= 0", ErrInvalidConfig)
	}
	return nil
}
