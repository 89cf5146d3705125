package respool

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
)

// Config 资源池配置
type Config struct {
	// Min 池内资源数下限
	//
	// 池启动时预创建 Min 个资源，运行期失效销毁后自动补足。
	// 默认值: 2
	Min int

	// Max 池内资源数上限
	//
	// 达到上限后新的 Acquire 进入等待队列。
	// 默认值: 10
	Max int

	// AcquireTimeout 获取资源的最长等待时间
	//
	// 超时后 Acquire 返回 ErrAcquireTimeout。
	// 默认值: 30 秒
	AcquireTimeout time.Duration

	// CreateTimeout 单次工厂创建的超时
	//
	// 默认值: 10 秒
	CreateTimeout time.Duration

	// DestroyTimeout 单次工厂销毁的超时
	//
	// 默认值: 5 秒
	DestroyTimeout time.Duration

	// IdleTimeout 资源空闲多久后可被回收
	//
	// 默认值: 5 分钟
	IdleTimeout time.Duration

	// ReapInterval 回收循环的扫描间隔
	//
	// 默认值: 1 分钟
	ReapInterval time.Duration

	// CreateRetryInterval 创建失败后的重试间隔
	//
	// 默认值: 1 秒
	CreateRetryInterval time.Duration

	// MaxRetries 创建失败的最大重试次数
	//
	// 0 表示不重试（只尝试一次）。
	// 默认值: 3
	MaxRetries int

	// Clock 时钟源
	//
	// 为 nil 时使用真实时钟。测试中注入 clock.NewMock()
	// 可以让回收和超时行为完全确定。
	Clock clock.Clock

	// Metrics 指标接收器
	//
	// 为 nil 时使用空实现，所有观测事件被丢弃。
	Metrics pkgif.Metrics
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Min:                 2,
		Max:                 10,
		AcquireTimeout:      30 * time.Second,
		CreateTimeout:       10 * time.Second,
		DestroyTimeout:      5 * time.Second,
		IdleTimeout:         5 * time.Minute,
		ReapInterval:        1 * time.Minute,
		CreateRetryInterval: 1 * time.Second,
		MaxRetries:          3,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Min < 0 {
		return fmt.Errorf("%w: min must be >= 0", ErrInvalidConfig)
	}
	if c.Max < 1 {
		return fmt.Errorf("%w: max must be >= 1", ErrInvalidConfig)
	}
	if c.Min > c.Max {
		return fmt.Errorf("%w: min must be <= max", ErrInvalidConfig)
	}
	if c.AcquireTimeout <= 0 {
		return fmt.Errorf("%w: acquire timeout must be > 0", ErrInvalidConfig)
	}
	if c.CreateTimeout <= 0 {
		return fmt.Errorf("%w: create timeout must be > 0", ErrInvalidConfig)
	}
	if c.DestroyTimeout <= 0 {
		return fmt.Errorf("%w: destroy timeout must be > 0", ErrInvalidConfig)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("%w: idle timeout must be > 0", ErrInvalidConfig)
	}
	if c.ReapInterval <= 0 {
		return fmt.Errorf("%w: reap interval must be > 0", ErrInvalidConfig)
	}
	if c.CreateRetryInterval <= 0 {
		return fmt.Errorf("%w: create retry interval must be > 0", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be >= 0", ErrInvalidConfig)
	}
	return nil
}
