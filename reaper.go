package respool

import (
	"context"
)

// ============================================================================
//                              回收
// ============================================================================

// reapHysteresisSweeps 回收滞回：有效但空闲超时的资源需连续
// 这么多次扫描命中才会被销毁，避免突发负载下销毁后又立即重建的抖动。
const reapHysteresisSweeps = 2

// TriggerReap 手动触发一次回收扫描
func (p *Pool[T]) TriggerReap() {
	select {
	case p.trigCh <- struct{}{}:
		logger.Debug("回收已触发", "pool", p.name)
	default:
		// 已有回收任务在队列中
	}
}

// reapLoop 回收循环
func (p *Pool[T]) reapLoop() {
	defer p.reapWg.Done()

	ticker := p.clock.Ticker(p.cfg.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return

		case <-ticker.C:
			p.reap()

		case <-p.trigCh:
			p.reap()
		}
	}
}

// reap 执行一次回收扫描
//
// 空闲超过 IdleTimeout 的资源逐个校验：
// 失效的立即销毁（低于 Min 时异步补足）；
// 有效但池规模超过 Min 的按滞回计数销毁；其余放回空闲集。
// 借出中的资源和维持 Min 所需的资源从不被回收。
func (p *Pool[T]) reap() {
	now := p.clock.Now()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	var expired []*Resource[T]
	keep := p.idle[:0]
	for _, res := range p.idle {
		if now.Sub(res.lastUsed) > p.cfg.IdleTimeout {
			expired = append(expired, res)
		} else {
			keep = append(keep, res)
		}
	}
	p.idle = keep
	p.mu.Unlock()

	if len(expired) == 0 {
		return
	}

	reaped := 0
	for _, res := range expired {
		// 校验在锁外进行
		valid := res.Valid() && p.factory.Validate(res.handle)

		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		if _, ok := p.tracked[res]; !ok {
			// 已被关闭流程接管
			p.mu.Unlock()
			continue
		}
		res.idleSweeps++

		switch {
		case !valid:
			delete(p.tracked, res)
			p.count--
			p.destroyedTotal++
			p.reapedTotal++
			replenish := p.count < p.cfg.Min
			p.updateGaugesLocked()
			p.mu.Unlock()

			p.pm.reaped.Inc()
			p.destroy(context.Background(), res)
			if replenish {
				go p.replenish()
			}
			reaped++

		case p.count > p.cfg.Min && res.idleSweeps >= reapHysteresisSweeps:
			delete(p.tracked, res)
			p.count--
			p.destroyedTotal++
			p.reapedTotal++
			p.updateGaugesLocked()
			p.mu.Unlock()

			p.pm.reaped.Inc()
			p.destroy(context.Background(), res)
			reaped++

		default:
			// 校验期间可能有新的等待者入队，放回空闲集会让
			// 后来的借用方抢在它前面，必须优先直接交付
			if !p.handToWaiterLocked(res) {
				p.idle = append(p.idle, res)
			}
			p.updateGaugesLocked()
			p.mu.Unlock()
		}
	}

	if reaped > 0 {
		logger.Debug("回收完成", "pool", p.name, "reaped", reaped)
	}
}
