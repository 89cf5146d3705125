package respool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEdge_AcquireBeforeStart 测试未启动池的借出
func TestEdge_AcquireBeforeStart(t *testing.T) {
	pool, err := New[*fakeConn]("test", &fakeFactory{}, testConfig())
	require.NoError(t, err)

	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)

	t.Log("✅ 未启动借出测试通过")
}

// TestEdge_MinZero 测试 Min=0 的池按需创建
func TestEdge_MinZero(t *testing.T) {
	factory := &fakeFactory{}
	cfg := testConfig()
	cfg.Min = 0
	cfg.Max = 2
	pool := startPool(t, factory, cfg)

	assert.Equal(t, 0, pool.Stats().Total, "启动时不预创建")

	res, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Stats().Total)
	pool.Release(res)

	// Min=0 时失效销毁不触发补足
	res, err = pool.Acquire(context.Background())
	require.NoError(t, err)
	pool.Invalidate(res)
	pool.Release(res)

	require.Eventually(t, func() bool {
		return pool.Stats().Total == 0
	}, time.Second, time.Millisecond)

	t.Log("✅ Min=0 测试通过")
}

// TestEdge_MaxOne 测试 Max=1 的串行池
func TestEdge_MaxOne(t *testing.T) {
	factory := &fakeFactory{}
	cfg := testConfig()
	cfg.Min = 1
	cfg.Max = 1
	cfg.AcquireTimeout = 50 * time.Millisecond
	pool := startPool(t, factory, cfg)

	res, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrAcquireTimeout)

	pool.Release(res)
	res, err = pool.Acquire(context.Background())
	require.NoError(t, err)
	pool.Release(res)

	t.Log("✅ Max=1 测试通过")
}

// TestEdge_AcquireWithCanceledContext 测试已取消上下文的快速失败
func TestEdge_AcquireWithCanceledContext(t *testing.T) {
	factory := &fakeFactory{}
	cfg := testConfig()
	cfg.Min = 0
	cfg.Max = 1
	pool := startPool(t, factory, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 创建路径透传工厂收到的 ctx 错误
	_, err := pool.Acquire(ctx)
	require.Error(t, err)

	t.Log("✅ 已取消上下文测试通过")
}

// TestEdge_StartAfterShutdown 测试关闭后不可重新启动
func TestEdge_StartAfterShutdown(t *testing.T) {
	pool, err := New[*fakeConn]("test", &fakeFactory{}, testConfig())
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Shutdown(context.Background()))

	assert.ErrorIs(t, pool.Start(context.Background()), ErrPoolShutdown)

	t.Log("✅ 关闭后启动测试通过")
}

// TestEdge_ShutdownWithoutStart 测试未启动即关闭
func TestEdge_ShutdownWithoutStart(t *testing.T) {
	pool, err := New[*fakeConn]("test", &fakeFactory{}, testConfig())
	require.NoError(t, err)

	require.NoError(t, pool.Shutdown(context.Background()))
	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolShutdown)

	t.Log("✅ 未启动关闭测试通过")
}

// TestEdge_DestroyFailureLoggedOnly 测试销毁失败不影响池运转
func TestEdge_DestroyFailureLoggedOnly(t *testing.T) {
	factory := &fakeFactory{destroyErr: assert.AnError}
	cfg := testConfig()
	cfg.Min = 0
	cfg.Max = 2
	pool := startPool(t, factory, cfg)

	res, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	pool.Invalidate(res)
	pool.Release(res) // 销毁失败只记日志

	res, err = pool.Acquire(context.Background())
	require.NoError(t, err)
	pool.Release(res)

	t.Log("✅ 销毁失败容忍测试通过")
}

// TestEdge_MetadataSurvivesReuse 测试附加数据跨借出保留
func TestEdge_MetadataSurvivesReuse(t *testing.T) {
	factory := &fakeFactory{}
	cfg := testConfig()
	cfg.Min = 1
	cfg.Max = 1
	pool := startPool(t, factory, cfg)

	res, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	res.Metadata["region"] = "east"
	pool.Release(res)

	res, err = pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "east", res.Metadata["region"])
	assert.NotEmpty(t, res.ID())
	assert.False(t, res.CreatedAt().IsZero())
	pool.Release(res)

	t.Log("✅ 附加数据测试通过")
}
