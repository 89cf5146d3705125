package metrics

import (
	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
)

// Nop 返回丢弃所有事件的指标接收器
//
// 池在未配置 Metrics 时使用它，调用零开销、永不阻塞。
func Nop() pkgif.Metrics {
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) GetCounter(string, pkgif.Labels) pkgif.Counter     { return nopInstrument{} }
func (nopMetrics) GetGauge(string, pkgif.Labels) pkgif.Gauge         { return nopInstrument{} }
func (nopMetrics) GetHistogram(string, pkgif.Labels) pkgif.Histogram { return nopInstrument{} }

type nopInstrument struct{}

func (nopInstrument) Inc()            {}
func (nopInstrument) Add(float64)     {}
func (nopInstrument) Set(float64)     {}
func (nopInstrument) Dec()            {}
func (nopInstrument) Sub(float64)     {}
func (nopInstrument) Observe(float64) {}
