package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
)

// Prometheus 基于 prometheus/client_golang 的指标接收器
//
// 每个指标名称对应一个带标签的向量（CounterVec/GaugeVec/HistogramVec），
// 向量在首次获取时创建并注册。同一名称的后续获取要求
// 标签键集合与首次一致，这是 Prometheus 数据模型的要求。
type Prometheus struct {
	reg prometheus.Registerer

	mu         sync.Mutex // 保护以下 map
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheus 创建 Prometheus 指标接收器
//
// reg 为 nil 时使用 prometheus.DefaultRegisterer。
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Prometheus{
		reg:        reg,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// GetCounter 获取计数器
func (p *Prometheus) GetCounter(name string, labels pkgif.Labels) pkgif.Counter {
	p.mu.Lock()
	vec, ok := p.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: name, Help: name},
			labelKeys(labels),
		)
		if existing := p.register(vec); existing != nil {
			vec = existing.(*prometheus.CounterVec)
		}
		p.counters[name] = vec
	}
	p.mu.Unlock()

	return vec.With(prometheus.Labels(labels))
}

// GetGauge 获取仪表
func (p *Prometheus) GetGauge(name string, labels pkgif.Labels) pkgif.Gauge {
	p.mu.Lock()
	vec, ok := p.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: name, Help: name},
			labelKeys(labels),
		)
		if existing := p.register(vec); existing != nil {
			vec = existing.(*prometheus.GaugeVec)
		}
		p.gauges[name] = vec
	}
	p.mu.Unlock()

	return vec.With(prometheus.Labels(labels))
}

// GetHistogram 获取直方图
func (p *Prometheus) GetHistogram(name string, labels pkgif.Labels) pkgif.Histogram {
	p.mu.Lock()
	vec, ok := p.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name,
				Help:    name,
				Buckets: prometheus.DefBuckets,
			},
			labelKeys(labels),
		)
		if existing := p.register(vec); existing != nil {
			vec = existing.(*prometheus.HistogramVec)
		}
		p.histograms[name] = vec
	}
	p.mu.Unlock()

	return vec.With(prometheus.Labels(labels))
}

// register 注册收集器
//
// 已注册时返回既有的收集器（同一 Registerer 被多个池共享的场景），
// 其余错误返回 nil，调用方继续使用新建的向量（未注册，仅本地可见）。
func (p *Prometheus) register(c prometheus.Collector) prometheus.Collector {
	err := p.reg.Register(c)
	if err == nil {
		return nil
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return are.ExistingCollector
	}
	return nil
}

// labelKeys 返回排序后的标签键列表
func labelKeys(labels pkgif.Labels) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
