package respool

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-respool/config"
)

// Params Manager 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 是 respool 的 Fx 模块
//
// 提供 *Manager 并在应用停止时关闭全部池。
var Module = fx.Module("respool",
	fx.Provide(ProvideManager),
	fx.Invoke(registerLifecycle),
)

// ProvideManager 提供 Manager 实例
func ProvideManager(p Params) (*Manager, error) {
	m := NewManager()
	if p.UnifiedCfg != nil {
		if err := p.UnifiedCfg.Validate(); err != nil {
			return nil, err
		}
		if err := m.SetDefaults(ConfigFromUnified(p.UnifiedCfg.Defaults)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Manager 无需启动操作，池在 CreatePool 时各自启动
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Shutdown(ctx)
		},
	})
}

// ConfigFromUnified 从统一配置的池配置段构造运行时配置
//
// 零值的时长字段回落到 DefaultConfig 的默认值。
func ConfigFromUnified(pc config.PoolConfig) Config {
	cfg := DefaultConfig()
	cfg.Min = pc.Min
	cfg.Max = pc.Max
	if pc.Max == 0 {
		cfg.Max = DefaultConfig().Max
	}
	cfg.MaxRetries = pc.MaxRetries
	if d := pc.AcquireTimeout.Duration(); d > 0 {
		cfg.AcquireTimeout = d
	}
	if d := pc.CreateTimeout.Duration(); d > 0 {
		cfg.CreateTimeout = d
	}
	if d := pc.DestroyTimeout.Duration(); d > 0 {
		cfg.DestroyTimeout = d
	}
	if d := pc.IdleTimeout.Duration(); d > 0 {
		cfg.IdleTimeout = d
	}
	if d := pc.ReapInterval.Duration(); d > 0 {
		cfg.ReapInterval = d
	}
	if d := pc.CreateRetryInterval.Duration(); d > 0 {
		cfg.CreateRetryInterval = d
	}
	return cfg
}

// FxLogger 返回安静的 Fx 事件日志选项
//
// 应用自身的日志走 pkg/lib/log；Fx 的装配事件默认丢弃，
// 需要排查装配问题时替换为真实的 zap.Logger。
func FxLogger() fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	})
}
