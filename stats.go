package respool

import "time"

// Stats 池的统计快照
//
// 按需在池锁内计算，不持久化。
type Stats struct {
	// Name 池名称
	Name string

	// Total 当前存活资源数（含正在创建的占位）
	Total int

	// Idle 当前空闲资源数
	Idle int

	// InUse 当前被借出的资源数
	InUse int

	// Invalid 已被标记失效、尚未销毁的资源数
	Invalid int

	// Waiting 当前排队的 Acquire 数
	Waiting int

	// OldestWaitAge 最老等待者已等待的时长
	OldestWaitAge time.Duration

	// 累计计数器（自池启动起）

	// CreatedTotal 创建成功的资源总数
	CreatedTotal uint64

	// DestroyedTotal 销毁的资源总数
	DestroyedTotal uint64

	// AcquiredTotal 成功借出的次数
	AcquiredTotal uint64

	// ReleasedTotal 归还的次数
	ReleasedTotal uint64

	// WaitedTotal 进入等待队列的次数
	WaitedTotal uint64

	// TimeoutsTotal 等待超时的次数
	TimeoutsTotal uint64

	// ReapedTotal 被回收循环销毁的资源总数
	ReapedTotal uint64

	// DoubleReleaseTotal 重复归还被拒绝的次数
	DoubleReleaseTotal uint64
}
