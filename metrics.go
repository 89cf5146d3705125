package respool

import (
	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
)

// 观测事件名称
//
// 计数器、仪表、直方图都带 pool 标签；
// respool_resources 额外带 state 标签（total/idle/in_use）。
const (
	metricCreated       = "respool_created_total"
	metricCreateErrors  = "respool_create_errors_total"
	metricDestroyed     = "respool_destroyed_total"
	metricDestroyErrors = "respool_destroy_errors_total"
	metricAcquired      = "respool_acquired_total"
	metricReleased      = "respool_released_total"
	metricTimeouts      = "respool_acquire_timeouts_total"
	metricDoubleRelease = "respool_double_release_total"
	metricReaped        = "respool_reaped_total"

	metricResources = "respool_resources"
	metricWaiting   = "respool_waiting"

	metricAcquireSeconds = "respool_acquire_seconds"
	metricReleaseSeconds = "respool_release_seconds"
	metricCreateSeconds  = "respool_create_seconds"
	metricDestroySeconds = "respool_destroy_seconds"
)

// poolMetrics 池绑定好标签的观测仪器集合
//
// 在池创建时一次性解析，热路径上只剩 Inc/Set/Observe 调用。
type poolMetrics struct {
	created       pkgif.Counter
	createErrors  pkgif.Counter
	destroyed     pkgif.Counter
	destroyErrors pkgif.Counter
	acquired      pkgif.Counter
	released      pkgif.Counter
	timeouts      pkgif.Counter
	doubleRelease pkgif.Counter
	reaped        pkgif.Counter

	total   pkgif.Gauge
	idle    pkgif.Gauge
	inUse   pkgif.Gauge
	waiting pkgif.Gauge

	acquireSeconds pkgif.Histogram
	releaseSeconds pkgif.Histogram
	createSeconds  pkgif.Histogram
	destroySeconds pkgif.Histogram
}

// newPoolMetrics 为指定池解析全部仪器
func newPoolMetrics(m pkgif.Metrics, pool string) *poolMetrics {
	byPool := pkgif.Labels{"pool": pool}
	byState := func(state string) pkgif.Labels {
		return pkgif.Labels{"pool": pool, "state": state}
	}

	return &poolMetrics{
		created:       m.GetCounter(metricCreated, byPool),
		createErrors:  m.GetCounter(metricCreateErrors, byPool),
		destroyed:     m.GetCounter(metricDestroyed, byPool),
		destroyErrors: m.GetCounter(metricDestroyErrors, byPool),
		acquired:      m.GetCounter(metricAcquired, byPool),
		released:      m.GetCounter(metricReleased, byPool),
		timeouts:      m.GetCounter(metricTimeouts, byPool),
		doubleRelease: m.GetCounter(metricDoubleRelease, byPool),
		reaped:        m.GetCounter(metricReaped, byPool),

		total:   m.GetGauge(metricResources, byState("total")),
		idle:    m.GetGauge(metricResources, byState("idle")),
		inUse:   m.GetGauge(metricResources, byState("in_use")),
		waiting: m.GetGauge(metricWaiting, byPool),

		acquireSeconds: m.GetHistogram(metricAcquireSeconds, byPool),
		releaseSeconds: m.GetHistogram(metricReleaseSeconds, byPool),
		createSeconds:  m.GetHistogram(metricCreateSeconds, byPool),
		destroySeconds: m.GetHistogram(metricDestroySeconds, byPool),
	}
}
