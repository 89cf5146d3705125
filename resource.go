package respool

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Resource 池托管的资源句柄
//
// 包装具体句柄 T 并附带池的簿记信息（身份、时间戳、使用状态）。
// Resource 自创建起由且仅由一个池独占拥有，
// 调用方借用它，归还后不得再访问。
//
// 簿记字段由池锁保护；Valid/MarkInvalid 采用原子操作，
// 借用方在使用期间可以无锁调用。
type Resource[T any] struct {
	id        string
	handle    T
	createdAt time.Time

	// 以下字段由池锁保护
	lastUsed   time.Time
	inUse      bool
	idleSweeps int // 连续被回收扫描命中的次数（滞回用）

	invalid atomic.Bool

	// Metadata 不透明的附加数据，由工厂或调用方自行填充
	//
	// 池不读取也不解释其中的内容。借用期间的并发访问由调用方自律。
	Metadata map[string]any
}

// newResource 创建资源包装
func newResource[T any](handle T, now time.Time) *Resource[T] {
	return &Resource[T]{
		id:        uuid.NewString(),
		handle:    handle,
		createdAt: now,
		lastUsed:  now,
		Metadata:  make(map[string]any),
	}
}

// ID 返回资源的唯一标识
func (r *Resource[T]) ID() string {
	return r.id
}

// Handle 返回被托管的具体句柄
func (r *Resource[T]) Handle() T {
	return r.handle
}

// CreatedAt 返回资源的创建时间
func (r *Resource[T]) CreatedAt() time.Time {
	return r.createdAt
}

// LastUsed 返回资源最近一次借出的时间
//
// 借出期间池不再改写该字段，借用方读取是安全的；
// 归还后的值属于池内簿记，调用方不应再访问。
func (r *Resource[T]) LastUsed() time.Time {
	return r.lastUsed
}

// MarkInvalid 标记资源失效
//
// 借用方发现底层句柄损坏时调用；失效资源在归还时被销毁而非复用，
// 必要时池会异步补足到 Min。
func (r *Resource[T]) MarkInvalid() {
	r.invalid.Store(true)
}

// Valid 报告资源是否仍然有效
func (r *Resource[T]) Valid() bool {
	return !r.invalid.Load()
}
