package respool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
	"github.com/dep2p/go-respool/pkg/lib/log"
	libmetrics "github.com/dep2p/go-respool/pkg/lib/metrics"
)

var logger = log.Logger("respool")

// Pool 有界的泛型资源池
//
// 维护一种资源的有界集合、一个严格 FIFO 的等待队列
// 和一个后台回收循环。所有资源通过工厂创建和销毁，
// 池本身不了解资源内部结构。
//
// 并发安全：内部状态（资源集、等待队列、计数器）由单把互斥锁保护；
// Acquire 只在等待资源时挂起，从不持锁挂起；
// 工厂调用（创建/销毁/校验/复位）全部在锁外进行。
type Pool[T any] struct {
	name     string
	cfg      Config
	factory  pkgif.Factory[T]
	resetter pkgif.Resetter[T] // nil 表示资源使用间无状态
	clock    clock.Clock
	pm       *poolMetrics

	mu      sync.Mutex
	started bool
	stopped bool
	count   int // 存活资源数（含创建中的占位），0 <= count <= cfg.Max
	idle    []*Resource[T]
	waiters waitQueue[T]
	tracked map[*Resource[T]]struct{} // 托管中的资源（空闲 + 借出）

	stopCh chan struct{}
	trigCh chan struct{}
	reapWg sync.WaitGroup

	// 累计计数器（锁保护）
	createdTotal       uint64
	destroyedTotal     uint64
	acquiredTotal      uint64
	releasedTotal      uint64
	waitedTotal        uint64
	timeoutsTotal      uint64
	reapedTotal        uint64
	doubleReleaseTotal uint64
}

// New 创建资源池
//
// 池创建后处于未启动状态，Acquire 返回 ErrNotStarted；
// 调用 Start 预创建 Min 个资源并启动回收循环。
//
// 工厂额外实现 pkg/interfaces.Resetter 时，
// 资源在归还空闲集前会被复位。
func New[T any](name string, factory pkgif.Factory[T], cfg Config) (*Pool[T], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if factory == nil {
		return nil, ErrFactoryRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = libmetrics.Nop()
	}

	resetter, _ := factory.(pkgif.Resetter[T])

	return &Pool[T]{
		name:     name,
		cfg:      cfg,
		factory:  factory,
		resetter: resetter,
		clock:    cfg.Clock,
		pm:       newPoolMetrics(cfg.Metrics, name),
		tracked:  make(map[*Resource[T]]struct{}),
		stopCh:   make(chan struct{}),
		trigCh:   make(chan struct{}, 1),
	}, nil
}

// Name 返回池名称
func (p *Pool[T]) Name() string {
	return p.name
}

// Start 启动资源池
//
// 预创建 Min 个资源（与普通创建相同的重试策略），
// 任何一个最终创建失败则销毁已创建的部分并整体失败。
// 成功后启动回收循环。重复调用是无害的空操作。
func (p *Pool[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolShutdown
	}
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	p.mu.Unlock()

	created := make([]*Resource[T], 0, p.cfg.Min)
	for i := 0; i < p.cfg.Min; i++ {
		res, err := p.create(ctx)
		if err != nil {
			for _, r := range created {
				p.destroy(context.Background(), r)
			}
			p.mu.Lock()
			p.started = false
			p.mu.Unlock()
			return fmt.Errorf("pool %s: initial creation: %w", p.name, err)
		}
		created = append(created, res)
	}

	p.mu.Lock()
	for _, res := range created {
		p.tracked[res] = struct{}{}
	}
	p.idle = append(p.idle, created...)
	p.count += len(created)
	p.createdTotal += uint64(len(created))
	p.updateGaugesLocked()
	p.mu.Unlock()

	p.reapWg.Add(1)
	go p.reapLoop()

	logger.Info("资源池已启动", "pool", p.name, "min", p.cfg.Min, "max", p.cfg.Max)
	return nil
}

// Acquire 借出一个资源
//
// 依次尝试三条路径：
//  1. 空闲资源直接复用
//  2. 容量未满则新建（受 CreateTimeout / MaxRetries 约束）
//  3. 进入 FIFO 等待队列，直到归还方交付、超时或池关闭
//
// 返回的错误只可能是 ErrNotStarted、ErrPoolShutdown、
// ErrCreateFailed、ErrAcquireTimeout 或 ctx 的错误；
// 资源健康和销毁相关的波动对调用方不可见。
func (p *Pool[T]) Acquire(ctx context.Context) (*Resource[T], error) {
	start := p.clock.Now()

	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, ErrNotStarted
	}
	if p.stopped {
		p.mu.Unlock()
		return nil, ErrPoolShutdown
	}

	// 1. 空闲资源直接复用
	if res := p.takeIdleLocked(); res != nil {
		p.acquiredTotal++
		p.updateGaugesLocked()
		p.mu.Unlock()

		p.pm.acquired.Inc()
		p.pm.acquireSeconds.Observe(p.clock.Since(start).Seconds())
		return res, nil
	}

	// 2. 容量未满则尝试新建
	var createErr error
	if p.count < p.cfg.Max {
		p.count++ // 占位，防止并发超额创建
		p.updateGaugesLocked()
		p.mu.Unlock()

		res, err := p.create(ctx)
		if err == nil {
			p.mu.Lock()
			if p.stopped {
				p.count--
				p.updateGaugesLocked()
				p.mu.Unlock()
				p.destroy(context.Background(), res)
				return nil, ErrPoolShutdown
			}
			res.inUse = true
			p.tracked[res] = struct{}{}
			p.createdTotal++
			p.acquiredTotal++
			p.updateGaugesLocked()
			p.mu.Unlock()

			p.pm.acquired.Inc()
			p.pm.acquireSeconds.Observe(p.clock.Since(start).Seconds())
			return res, nil
		}
		if errors.Is(err, ErrPoolShutdown) {
			p.mu.Lock()
			p.count--
			p.updateGaugesLocked()
			p.mu.Unlock()
			return nil, ErrPoolShutdown
		}

		// 创建失败不直接放弃：只要还有等待预算就转入队列，
		// 其他借用方归还的资源仍可能满足本次请求。
		createErr = err
		p.mu.Lock()
		p.count--
		p.updateGaugesLocked()
		if p.stopped {
			// 创建期间池已关闭，等待队列已被清空，不得再入队
			p.mu.Unlock()
			return nil, ErrPoolShutdown
		}
		if ctx.Err() != nil {
			p.mu.Unlock()
			return nil, ctx.Err()
		}
	}

	// 3. 进入等待队列（此处持锁）
	remaining := p.cfg.AcquireTimeout - p.clock.Since(start)
	if remaining <= 0 {
		p.timeoutsTotal++
		p.mu.Unlock()

		p.pm.timeouts.Inc()
		if createErr != nil {
			return nil, createErr
		}
		return nil, ErrAcquireTimeout
	}

	w := newWaiter[T](p.clock.Now())
	p.waiters.push(w)
	p.waitedTotal++
	p.updateGaugesLocked()
	p.mu.Unlock()

	timer := p.clock.Timer(remaining)
	defer timer.Stop()

	select {
	case r := <-w.ch:
		if r.err != nil {
			return nil, r.err
		}
		p.pm.acquired.Inc()
		p.pm.acquireSeconds.Observe(p.clock.Since(start).Seconds())
		return r.res, nil

	case <-timer.C:
		return p.abandonWait(w, start, createErr, nil)

	case <-ctx.Done():
		return p.abandonWait(w, start, createErr, ctx.Err())
	}
}

// abandonWait 超时或取消路径退出等待
//
// 认领成功才允许把自己移出队列；认领失败说明资源已在交付途中，
// 此时改收资源并正常返回——绝不出现资源交付后无人认领的丢失。
// cause 为 nil 表示超时，否则携带 ctx 的取消原因。
func (p *Pool[T]) abandonWait(w *waiter[T], start time.Time, createErr, cause error) (*Resource[T], error) {
	p.mu.Lock()
	if w.claim() {
		p.waiters.remove(w)
		if cause == nil {
			p.timeoutsTotal++
		}
		p.updateGaugesLocked()
		p.mu.Unlock()

		if cause != nil {
			return nil, cause
		}
		p.pm.timeouts.Inc()
		if createErr != nil {
			return nil, fmt.Errorf("%w (creation also failed: %v)", ErrAcquireTimeout, createErr)
		}
		return nil, ErrAcquireTimeout
	}
	p.mu.Unlock()

	// 交付方已认领，结果必达
	r := <-w.ch
	if r.err != nil {
		return nil, r.err
	}
	p.pm.acquired.Inc()
	p.pm.acquireSeconds.Observe(p.clock.Since(start).Seconds())
	return r.res, nil
}

// Release 归还资源
//
// 重复归还和未知资源被拒绝（记录日志，无副作用）。
// 工厂实现了 Resetter 时先复位，复位失败的资源被标记失效。
// 失效资源被销毁，池规模低于 Min 时异步补足——
// 归还方绝不因为池的补充动作阻塞或失败。
// 有效资源优先直接交给最老的等待者，否则回到空闲集。
func (p *Pool[T]) Release(res *Resource[T]) {
	if res == nil {
		return
	}

	p.mu.Lock()
	if _, ok := p.tracked[res]; !ok || !res.inUse {
		p.doubleReleaseTotal++
		p.mu.Unlock()

		p.pm.doubleRelease.Inc()
		logger.Warn("拒绝重复或未知的归还", "pool", p.name, "id", log.TruncateID(res.id, 8))
		return
	}
	// 暂时移出托管集，复位期间由本次调用独占
	res.inUse = false
	delete(p.tracked, res)
	p.releasedTotal++
	p.mu.Unlock()

	begin := p.clock.Now()
	defer func() { p.pm.releaseSeconds.Observe(p.clock.Since(begin).Seconds()) }()
	p.pm.released.Inc()

	if p.resetter != nil && res.Valid() {
		if err := p.resetter.Reset(res.handle); err != nil {
			logger.Warn("复位资源失败，标记失效",
				"pool", p.name, "id", log.TruncateID(res.id, 8), "err", err)
			res.MarkInvalid()
		}
	}

	// 失效资源：销毁并按需补足
	if !res.Valid() {
		p.mu.Lock()
		p.count--
		p.destroyedTotal++
		replenish := !p.stopped && p.count < p.cfg.Min
		p.updateGaugesLocked()
		p.mu.Unlock()

		p.destroy(context.Background(), res)
		if replenish {
			go p.replenish()
		}
		return
	}

	p.mu.Lock()
	if p.stopped {
		// 关闭竞态：关闭时本资源正在归还途中，快照没有包含它
		p.count--
		p.destroyedTotal++
		p.updateGaugesLocked()
		p.mu.Unlock()
		p.destroy(context.Background(), res)
		return
	}
	p.tracked[res] = struct{}{}
	if p.handToWaiterLocked(res) {
		p.updateGaugesLocked()
		p.mu.Unlock()
		return
	}
	res.lastUsed = p.clock.Now()
	res.idleSweeps = 0
	p.idle = append(p.idle, res)
	p.updateGaugesLocked()
	p.mu.Unlock()
}

// Invalidate 标记借出中的资源失效
//
// 与 res.MarkInvalid() 等价，额外带池级日志。
func (p *Pool[T]) Invalidate(res *Resource[T]) {
	if res == nil {
		return
	}
	res.MarkInvalid()
	logger.Debug("资源被标记失效", "pool", p.name, "id", log.TruncateID(res.id, 8))
}

// Stats 返回统计快照
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	invalid := 0
	for res := range p.tracked {
		if !res.Valid() {
			invalid++
		}
	}

	return Stats{
		Name:          p.name,
		Total:         p.count,
		Idle:          len(p.idle),
		InUse:         p.count - len(p.idle),
		Invalid:       invalid,
		Waiting:       p.waiters.len(),
		OldestWaitAge: p.waiters.oldestAge(p.clock.Now()),

		CreatedTotal:       p.createdTotal,
		DestroyedTotal:     p.destroyedTotal,
		AcquiredTotal:      p.acquiredTotal,
		ReleasedTotal:      p.releasedTotal,
		WaitedTotal:        p.waitedTotal,
		TimeoutsTotal:      p.timeoutsTotal,
		ReapedTotal:        p.reapedTotal,
		DoubleReleaseTotal: p.doubleReleaseTotal,
	}
}

// Shutdown 关闭资源池
//
// 后续的 Acquire 一律返回 ErrPoolShutdown；
// 所有排队中的等待者立即收到 ErrPoolShutdown；
// 全部托管资源（含借出中的）并行销毁，每个受 DestroyTimeout 约束，
// 销毁失败只记录日志。所有销毁落定后返回。重复调用是空操作。
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.stopCh)

	for {
		w := p.waiters.popOldest()
		if w == nil {
			break
		}
		if w.claim() {
			w.deliver(acquireResult[T]{err: ErrPoolShutdown})
		}
	}

	victims := make([]*Resource[T], 0, len(p.tracked))
	for res := range p.tracked {
		victims = append(victims, res)
	}
	p.tracked = make(map[*Resource[T]]struct{})
	p.idle = nil
	p.count -= len(victims) // 归还途中/创建中的占位由各自路径收尾
	p.destroyedTotal += uint64(len(victims))
	p.updateGaugesLocked()
	p.mu.Unlock()

	p.reapWg.Wait()

	var g errgroup.Group
	for _, res := range victims {
		res := res
		g.Go(func() error {
			p.destroy(ctx, res)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("资源池已关闭", "pool", p.name, "destroyed", len(victims))
	return nil
}

// ============================================================================
//                              内部方法
// ============================================================================

// takeIdleLocked 从空闲集取出一个可用资源并标记借出
//
// 必须持锁调用。途中发现的失效残留直接淘汰。
func (p *Pool[T]) takeIdleLocked() *Resource[T] {
	now := p.clock.Now()
	for n := len(p.idle); n > 0; n = len(p.idle) {
		res := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]

		if !res.Valid() {
			delete(p.tracked, res)
			p.count--
			p.destroyedTotal++
			if p.count < p.cfg.Min {
				go p.replenish()
			}
			go p.destroy(context.Background(), res)
			continue
		}

		res.inUse = true
		res.lastUsed = now
		res.idleSweeps = 0
		return res
	}
	return nil
}

// handToWaiterLocked 把资源直接交给最老的等待者
//
// 必须持锁调用。绕过空闲集交付，避免新来的 Acquire
// 抢在更老的等待者之前拿到资源。
func (p *Pool[T]) handToWaiterLocked(res *Resource[T]) bool {
	for {
		w := p.waiters.popOldest()
		if w == nil {
			return false
		}
		if !w.claim() {
			// 已被超时/取消认领，跳过
			continue
		}
		res.inUse = true
		res.lastUsed = p.clock.Now()
		res.idleSweeps = 0
		p.acquiredTotal++
		w.deliver(acquireResult[T]{res: res})
		return true
	}
}

// create 执行带重试的工厂创建
//
// 每次尝试受 CreateTimeout 约束，失败后等待 CreateRetryInterval 再试，
// 最多重试 MaxRetries 次。所有尝试的错误聚合进返回值。
func (p *Pool[T]) create(ctx context.Context) (*Resource[T], error) {
	var errs error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrCreateFailed, multierr.Append(errs, ctx.Err()))
			case <-p.stopCh:
				return nil, ErrPoolShutdown
			case <-p.clock.After(p.cfg.CreateRetryInterval):
			}
		}

		cctx, cancel := p.clock.WithTimeout(ctx, p.cfg.CreateTimeout)
		begin := p.clock.Now()
		handle, err := p.factory.Create(cctx)
		cancel()
		if err != nil {
			errs = multierr.Append(errs, err)
			p.pm.createErrors.Inc()
			logger.Warn("创建资源失败", "pool", p.name, "attempt", attempt+1, "err", err)
			continue
		}

		p.pm.created.Inc()
		p.pm.createSeconds.Observe(p.clock.Since(begin).Seconds())
		return newResource(handle, p.clock.Now()), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrCreateFailed, errs)
}

// destroy 执行工厂销毁
//
// 失败只记录日志和指标，绝不向调用方传播；
// 簿记（count、tracked、计数器）由调用方在锁内完成。
func (p *Pool[T]) destroy(ctx context.Context, res *Resource[T]) {
	dctx, cancel := p.clock.WithTimeout(ctx, p.cfg.DestroyTimeout)
	defer cancel()

	begin := p.clock.Now()
	if err := p.factory.Destroy(dctx, res.handle); err != nil {
		p.pm.destroyErrors.Inc()
		logger.Warn("销毁资源失败", "pool", p.name, "id", log.TruncateID(res.id, 8), "err", err)
		return
	}
	p.pm.destroyed.Inc()
	p.pm.destroySeconds.Observe(p.clock.Since(begin).Seconds())
}

// replenish 异步补足资源到 Min
//
// 失败只记录日志，绝不向归还方传播。
func (p *Pool[T]) replenish() {
	for {
		p.mu.Lock()
		if p.stopped || p.count >= p.cfg.Min {
			p.mu.Unlock()
			return
		}
		p.count++
		p.updateGaugesLocked()
		p.mu.Unlock()

		res, err := p.create(context.Background())
		if err != nil {
			p.mu.Lock()
			p.count--
			p.updateGaugesLocked()
			p.mu.Unlock()
			if !errors.Is(err, ErrPoolShutdown) {
				logger.Warn("补足资源失败", "pool", p.name, "err", err)
			}
			return
		}

		p.mu.Lock()
		if p.stopped {
			p.count--
			p.updateGaugesLocked()
			p.mu.Unlock()
			p.destroy(context.Background(), res)
			return
		}
		p.createdTotal++
		p.tracked[res] = struct{}{}
		if !p.handToWaiterLocked(res) {
			res.lastUsed = p.clock.Now()
			p.idle = append(p.idle, res)
		}
		p.updateGaugesLocked()
		p.mu.Unlock()
	}
}

// updateGaugesLocked 刷新状态仪表
//
// 必须持锁调用。仪表写入是原子操作，不会拖长临界区。
func (p *Pool[T]) updateGaugesLocked() {
	p.pm.total.Set(float64(p.count))
	p.pm.idle.Set(float64(len(p.idle)))
	p.pm.inUse.Set(float64(p.count - len(p.idle)))
	p.pm.waiting.Set(float64(p.waiters.len()))
}
