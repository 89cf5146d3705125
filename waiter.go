package respool

import (
	"sync/atomic"
	"time"
)

// acquireResult 等待者收到的结果
type acquireResult[T any] struct {
	res *Resource[T]
	err error
}

// waiter 等待队列中的一个挂起请求
//
// 超时、上下文取消、资源交付、池关闭四条路径
// 都先通过 claim 竞争唯一的处置权：CAS 成功者负责收尾，
// 失败者不做任何事（交付方随后一定会投递结果）。
type waiter[T any] struct {
	ch         chan acquireResult[T] // 容量 1，claim 成功后投递永不阻塞
	enqueuedAt time.Time
	claimed    atomic.Bool
}

// newWaiter 创建等待者
func newWaiter[T any](now time.Time) *waiter[T] {
	return &waiter[T]{
		ch:         make(chan acquireResult[T], 1),
		enqueuedAt: now,
	}
}

// claim 竞争等待者的唯一处置权
//
// 只有第一次调用返回 true。
func (w *waiter[T]) claim() bool {
	return w.claimed.CompareAndSwap(false, true)
}

// deliver 投递结果
//
// 仅允许 claim 成功的一方调用，且最多一次。
func (w *waiter[T]) deliver(r acquireResult[T]) {
	w.ch <- r
}

// waitQueue 严格 FIFO 的等待队列
//
// 所有操作必须在池锁内进行；队列本身不加锁。
type waitQueue[T any] struct {
	items []*waiter[T]
}

// push 追加等待者到队尾
func (q *waitQueue[T]) push(w *waiter[T]) {
	q.items = append(q.items, w)
}

// popOldest 取出等待最久的等待者
//
// 队列为空返回 nil。
func (q *waitQueue[T]) popOldest() *waiter[T] {
	if len(q.items) == 0 {
		return nil
	}
	w := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return w
}

// remove 移除指定等待者
//
// 超时/取消路径在 claim 成功后调用，防止后续 release 再碰到它。
func (q *waitQueue[T]) remove(w *waiter[T]) bool {
	for i, item := range q.items {
		if item == w {
			copy(q.items[i:], q.items[i+1:])
			q.items[len(q.items)-1] = nil
			q.items = q.items[:len(q.items)-1]
			return true
		}
	}
	return false
}

// len 返回排队人数
func (q *waitQueue[T]) len() int {
	return len(q.items)
}

// oldestAge 返回最老等待者的等待时长
//
// 队列为空返回 0。
func (q *waitQueue[T]) oldestAge(now time.Time) time.Duration {
	if len(q.items) == 0 {
		return 0
	}
	return now.Sub(q.items[0].enqueuedAt)
}
