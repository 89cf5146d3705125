package respool

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
	"github.com/dep2p/go-respool/pkg/lib/log"
)

var mgrLogger = log.Logger("respool/manager")

// managedPool 注册表视角下的池
//
// 注册表只聚合，从不直接操作池的内部状态；
// 不同句柄类型的池通过该接口擦除后共存于一张表里。
type managedPool interface {
	Name() string
	Stats() Stats
	Shutdown(ctx context.Context) error
}

// Manager 具名资源池注册表
//
// 显式构造、按引用传递（或经 Fx 注入），没有进程级单例。
// 每个池相互独立，注册表不做任何跨池加锁。
type Manager struct {
	defaults Config

	mu      sync.Mutex
	pools   map[string]managedPool
	stopped bool
}

// NewManager 创建注册表
func NewManager() *Manager {
	return &Manager{
		defaults: DefaultConfig(),
		pools:    make(map[string]managedPool),
	}
}

// Defaults 返回建池的默认配置
//
// 调用方在此基础上按需覆盖再传给 CreatePool。
func (m *Manager) Defaults() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults
}

// SetDefaults 替换建池的默认配置
func (m *Manager) SetDefaults(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.defaults = cfg
	m.mu.Unlock()
	return nil
}

// CreatePool 创建并注册一个资源池
//
// 名称已被占用返回 ErrDuplicatePool。注册成功后立即启动池
//（预创建 Min 个资源），启动失败则回滚注册。
//
// 方法不能有类型参数，故以包级函数提供。
func CreatePool[T any](ctx context.Context, m *Manager, name string, factory pkgif.Factory[T], cfg Config) (*Pool[T], error) {
	pool, err := New[T](name, factory, cfg)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil, ErrManagerShutdown
	}
	if _, ok := m.pools[name]; ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePool, name)
	}
	// 先占名，避免并发创建同名池
	m.pools[name] = pool
	m.mu.Unlock()

	if err := pool.Start(ctx); err != nil {
		m.mu.Lock()
		delete(m.pools, name)
		m.mu.Unlock()
		return nil, err
	}

	mgrLogger.Info("资源池已注册", "pool", name)
	return pool, nil
}

// GetPool 按名称查找资源池
//
// 未注册返回 ErrPoolNotFound；
// 名称存在但句柄类型不符返回 ErrPoolTypeMismatch。
func GetPool[T any](m *Manager, name string) (*Pool[T], error) {
	m.mu.Lock()
	mp, ok := m.pools[name]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, name)
	}
	pool, ok := mp.(*Pool[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolTypeMismatch, name)
	}
	return pool, nil
}

// AllStats 返回全部池的统计快照
func (m *Manager) AllStats() map[string]Stats {
	m.mu.Lock()
	pools := make([]managedPool, 0, len(m.pools))
	for _, mp := range m.pools {
		pools = append(pools, mp)
	}
	m.mu.Unlock()

	// 快照在注册表锁外逐池采集，避免跨池持锁
	stats := make(map[string]Stats, len(pools))
	for _, mp := range pools {
		stats[mp.Name()] = mp.Stats()
	}
	return stats
}

// Shutdown 关闭全部资源池并清空注册表
//
// 各池并行关闭、尽力而为；错误聚合返回。重复调用是空操作。
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	pools := make([]managedPool, 0, len(m.pools))
	for _, mp := range m.pools {
		pools = append(pools, mp)
	}
	m.pools = make(map[string]managedPool)
	m.mu.Unlock()

	var (
		errMu sync.Mutex
		errs  error
	)
	var g errgroup.Group
	for _, mp := range pools {
		mp := mp
		g.Go(func() error {
			if err := mp.Shutdown(ctx); err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("pool %s: %w", mp.Name(), err))
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	mgrLogger.Info("注册表已关闭", "pools", len(pools))
	return errs
}
