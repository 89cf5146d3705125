package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/dep2p/go-respool/pkg/interfaces"
)

// gatherMetric 从注册表取出指定名称的指标族
func gatherMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

// TestPrometheus_Counter 测试计数器注册与累加
func TestPrometheus_Counter(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	c := p.GetCounter("test_ops_total", pkgif.Labels{"pool": "db"})
	c.Inc()
	c.Add(2)

	mf := gatherMetric(t, reg, "test_ops_total")
	require.NotNil(t, mf)
	require.Len(t, mf.Metric, 1)
	assert.Equal(t, float64(3), mf.Metric[0].GetCounter().GetValue())
	assert.Equal(t, "pool", mf.Metric[0].GetLabel()[0].GetName())
	assert.Equal(t, "db", mf.Metric[0].GetLabel()[0].GetValue())

	t.Log("✅ Counter 测试通过")
}

// TestPrometheus_Gauge 测试仪表的增减
func TestPrometheus_Gauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	g := p.GetGauge("test_size", pkgif.Labels{"pool": "db"})
	g.Set(5)
	g.Inc()
	g.Dec()
	g.Add(3)
	g.Sub(1)

	mf := gatherMetric(t, reg, "test_size")
	require.NotNil(t, mf)
	assert.Equal(t, float64(7), mf.Metric[0].GetGauge().GetValue())

	t.Log("✅ Gauge 测试通过")
}

// TestPrometheus_Histogram 测试直方图观测
func TestPrometheus_Histogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	h := p.GetHistogram("test_seconds", pkgif.Labels{"pool": "db"})
	h.Observe(0.01)
	h.Observe(0.5)

	mf := gatherMetric(t, reg, "test_seconds")
	require.NotNil(t, mf)
	assert.Equal(t, uint64(2), mf.Metric[0].GetHistogram().GetSampleCount())

	t.Log("✅ Histogram 测试通过")
}

// TestPrometheus_VecReuse 测试同名不同标签值共享向量
func TestPrometheus_VecReuse(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.GetCounter("test_ops_total", pkgif.Labels{"pool": "a"}).Inc()
	p.GetCounter("test_ops_total", pkgif.Labels{"pool": "b"}).Inc()
	p.GetCounter("test_ops_total", pkgif.Labels{"pool": "a"}).Inc()

	mf := gatherMetric(t, reg, "test_ops_total")
	require.NotNil(t, mf)
	assert.Len(t, mf.Metric, 2, "两个标签值各一条时间序列")

	t.Log("✅ 向量复用测试通过")
}

// TestPrometheus_SharedRegisterer 测试多个接收器共享同一注册表
func TestPrometheus_SharedRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	p1 := NewPrometheus(reg)
	p2 := NewPrometheus(reg)

	p1.GetCounter("test_ops_total", pkgif.Labels{"pool": "a"}).Inc()
	// p2 首次注册冲突，应采用既有的收集器而不是 panic
	p2.GetCounter("test_ops_total", pkgif.Labels{"pool": "a"}).Inc()

	mf := gatherMetric(t, reg, "test_ops_total")
	require.NotNil(t, mf)
	require.Len(t, mf.Metric, 1)
	assert.Equal(t, float64(2), mf.Metric[0].GetCounter().GetValue())

	t.Log("✅ 注册表共享测试通过")
}

// TestNop 测试空实现不恐慌
func TestNop(t *testing.T) {
	m := Nop()

	c := m.GetCounter("x", nil)
	c.Inc()
	c.Add(1)

	g := m.GetGauge("x", nil)
	g.Set(1)
	g.Inc()
	g.Dec()
	g.Add(1)
	g.Sub(1)

	m.GetHistogram("x", nil).Observe(1)

	t.Log("✅ Nop 测试通过")
}
