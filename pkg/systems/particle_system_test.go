package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
)

const frameDelta = 1.0 / 60.0

// testHarness 粒子系统测试环境：手动时钟 + 帧调度器 + 记录表面
type testHarness struct {
	ps        *ParticleSystem
	scheduler *game.FrameScheduler
	clock     *game.ManualClock
	surface   *render.RecordingSurface
}

func newTestHarness(t *testing.T, cfg *config.EffectConfig) *testHarness {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultEffectConfig()
	}
	h := &testHarness{
		scheduler: game.NewFrameScheduler(),
		clock:     game.NewManualClock(0),
		surface:   render.NewRecordingSurface(),
	}
	h.ps = NewParticleSystem(cfg, h.scheduler, h.clock, h.surface, rand.New(rand.NewSource(42)))
	return h
}

// frame 推进时钟并执行一帧
func (h *testHarness) frame(dt float64) {
	h.scheduler.RunFrame(h.clock.Advance(dt))
}

// alwaysTrailConfig 拖尾必定生成，便于精确构造单个粒子
func alwaysTrailConfig() *config.EffectConfig {
	cfg := config.DefaultEffectConfig()
	cfg.Trail.SpawnChance = 1
	return cfg
}

// TestBurstAcceptedEmitsFirstBatchImmediately 测试点击后立即生成第一批粒子
func TestBurstAcceptedEmitsFirstBatchImmediately(t *testing.T) {
	h := newTestHarness(t, nil)

	if !h.ps.SpawnBurst(100, 100) {
		t.Fatal("SpawnBurst should be accepted with zero cooldown")
	}

	if got := len(h.ps.Particles()); got != 10 {
		t.Errorf("active particles after click: got %d, want 10", got)
	}
	if got := h.ps.Cooldown(); got != 0.12 {
		t.Errorf("cooldown: got %v, want 0.12", got)
	}
	if got := h.ps.PendingBursts(); got != 1 {
		t.Errorf("pending bursts: got %d, want 1", got)
	}
}

// TestBurstEmitsExactlyTotalInBatches 测试分帧生成：每帧最多 10 个，总数恰好 60
func TestBurstEmitsExactlyTotalInBatches(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.Start()

	h.ps.SpawnBurst(200, 150)
	prev := len(h.ps.Particles())

	for i := 0; i < 10; i++ {
		h.frame(frameDelta)
		n := len(h.ps.Particles())
		if n-prev > 10 {
			t.Fatalf("frame %d emitted %d particles, want <= 10", i, n-prev)
		}
		prev = n
	}

	if prev != 60 {
		t.Errorf("active particles: got %d, want 60", prev)
	}
	if h.ps.PendingBursts() != 0 {
		t.Errorf("pending bursts: got %d, want 0", h.ps.PendingBursts())
	}

	// 任务结束后不会再被调度：只剩主循环回调
	if h.scheduler.Pending() != 1 {
		t.Errorf("scheduler pending: got %d, want 1 (frame loop only)", h.scheduler.Pending())
	}

	// 所有粒子寿命结束后全部回到对象池，且没有多生成
	for i := 0; i < 120; i++ {
		h.frame(frameDelta)
	}
	stats := h.ps.Stats()
	if stats.Active != 0 {
		t.Errorf("active after expiry: got %d, want 0", stats.Active)
	}
	if stats.Pooled != 60 {
		t.Errorf("pooled after expiry: got %d, want 60", stats.Pooled)
	}
	if stats.Allocated != 60 {
		t.Errorf("allocated: got %d, want 60", stats.Allocated)
	}
}

// TestBurstRejectedDuringCooldown 测试冷却期间点击被拒绝且不重置冷却
func TestBurstRejectedDuringCooldown(t *testing.T) {
	h := newTestHarness(t, nil)

	h.ps.SpawnBurst(10, 10)
	h.ps.Step(0.05)
	before := h.ps.Cooldown()
	count := len(h.ps.Particles())

	if h.ps.SpawnBurst(20, 20) {
		t.Fatal("SpawnBurst during cooldown should be rejected")
	}
	if got := len(h.ps.Particles()); got != count {
		t.Errorf("rejected click spawned particles: %d -> %d", count, got)
	}
	if got := h.ps.Cooldown(); got != before {
		t.Errorf("rejected click changed cooldown: %v -> %v", before, got)
	}
	if got := h.ps.PendingBursts(); got != 1 {
		t.Errorf("pending bursts: got %d, want 1", got)
	}
	if got := h.ps.Stats().BurstsRejected; got != 1 {
		t.Errorf("BurstsRejected: got %d, want 1", got)
	}
}

// TestCooldownDecay 测试冷却随帧时间单调递减，降到 0 以下后重新接受点击
func TestCooldownDecay(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.SpawnBurst(0, 0)

	steps := []struct {
		delta      float64
		wantAccept bool
	}{
		{0.05, false}, // 0.07
		{0.05, false}, // 0.02
		{0.05, true},  // -0.03
	}

	prev := h.ps.Cooldown()
	for i, st := range steps {
		h.ps.Step(st.delta)
		cd := h.ps.Cooldown()
		if cd >= prev {
			t.Fatalf("step %d: cooldown did not decrease (%v -> %v)", i, prev, cd)
		}
		if math.Abs((prev-cd)-st.delta) > 1e-12 {
			t.Errorf("step %d: cooldown decreased by %v, want %v", i, prev-cd, st.delta)
		}
		prev = cd

		if cd > 0 && st.wantAccept {
			t.Fatalf("step %d: cooldown still positive (%v)", i, cd)
		}
	}

	if !h.ps.SpawnBurst(0, 0) {
		t.Error("burst should be accepted once cooldown <= 0")
	}
	if h.ps.Cooldown() != 0.12 {
		t.Errorf("cooldown after accept: got %v, want 0.12", h.ps.Cooldown())
	}
}

// TestFrameUsesClockDelta 测试主循环用时钟差值作为 delta
func TestFrameUsesClockDelta(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.Start()
	h.ps.SpawnBurst(0, 0)

	h.frame(0.1)

	if got := h.ps.Cooldown(); math.Abs(got-0.02) > 1e-9 {
		t.Errorf("cooldown after 0.1s frame: got %v, want 0.02", got)
	}
	if h.surface.Clears() != 1 {
		t.Errorf("surface clears: got %d, want 1", h.surface.Clears())
	}

	// Start 重复调用不会登记第二个主循环
	h.ps.Start()
	h.frame(0.1)
	if h.surface.Clears() != 2 {
		t.Errorf("surface clears: got %d, want 2", h.surface.Clears())
	}
}

// TestFrameClampsDelta 测试配置了 maxDelta 时单帧 delta 被限制
func TestFrameClampsDelta(t *testing.T) {
	cfg := config.DefaultEffectConfig()
	cfg.Frame.MaxDelta = 0.05
	h := newTestHarness(t, cfg)
	h.ps.Start()
	h.ps.SpawnBurst(0, 0)

	h.frame(5) // 窗口被隐藏了很久

	if got := h.ps.Cooldown(); math.Abs(got-0.07) > 1e-9 {
		t.Errorf("cooldown: got %v, want 0.07 (delta clamped to 0.05)", got)
	}
	if got := len(h.ps.Particles()); got == 0 {
		t.Error("particles should survive a clamped frame")
	}
}

// TestTrailSpawnProbability 测试拖尾按 25% 概率生成
func TestTrailSpawnProbability(t *testing.T) {
	h := newTestHarness(t, nil)

	const moves = 20000
	spawned := 0
	for i := 0; i < moves; i++ {
		if h.ps.SpawnTrail(50, 50) {
			spawned++
		}
	}

	ratio := float64(spawned) / moves
	if ratio < 0.23 || ratio > 0.27 {
		t.Errorf("trail spawn ratio: got %.3f, want ~0.25", ratio)
	}
	if len(h.ps.Particles()) != spawned {
		t.Errorf("active particles: got %d, want %d", len(h.ps.Particles()), spawned)
	}
	// 拖尾不受点击冷却影响，也不设置冷却
	if h.ps.Cooldown() != 0 {
		t.Errorf("trail changed cooldown to %v", h.ps.Cooldown())
	}
}

// TestTrailIgnoresBurstCooldown 测试冷却期间拖尾照常生成
func TestTrailIgnoresBurstCooldown(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SpawnBurst(0, 0)

	if !h.ps.SpawnTrail(5, 5) {
		t.Error("trail should spawn while burst cooldown is active")
	}
}

// TestTrailDisabled 测试关闭拖尾
func TestTrailDisabled(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SetTrailEnabled(false)

	if h.ps.SpawnTrail(5, 5) {
		t.Error("trail spawned while disabled")
	}

	h.ps.SetTrailEnabled(true)
	cfg := alwaysTrailConfig()
	cfg.Trail.Enabled = false
	h.ps.SetConfig(cfg)
	if h.ps.SpawnTrail(5, 5) {
		t.Error("trail spawned while disabled in config")
	}
}

// TestParticleRetiredAfterLifetime 测试寿命 0.5 的粒子在累计 0.5 秒后回收
func TestParticleRetiredAfterLifetime(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SpawnTrail(30, 30)
	poolBefore := h.ps.Pool().Len()

	for _, dt := range []float64{0.125, 0.125, 0.125} {
		h.ps.Step(dt)
		if len(h.ps.Particles()) != 1 {
			t.Fatalf("particle removed too early")
		}
	}

	h.ps.Step(0.125)

	if got := len(h.ps.Particles()); got != 0 {
		t.Errorf("active after 0.5s: got %d, want 0", got)
	}
	if got := h.ps.Pool().Len(); got != poolBefore+1 {
		t.Errorf("pool size: got %d, want %d", got, poolBefore+1)
	}
	// 回收的粒子本帧不再绘制
	if got := len(h.surface.Circles()); got != 0 {
		t.Errorf("retired particle was rendered (%d circles)", got)
	}
}

// TestParticleRetiredAfterEqualSteps 测试不精确的帧间隔累计到寿命后同样回收
func TestParticleRetiredAfterEqualSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps int
	}{
		{"3 帧", 3},
		{"10 帧", 10},
		{"30 帧 (60fps)", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t, alwaysTrailConfig())
			h.ps.SpawnTrail(30, 30)
			poolBefore := h.ps.Pool().Len()
			dt := 0.5 / float64(tt.steps)

			for i := 0; i < tt.steps-1; i++ {
				h.ps.Step(dt)
				if len(h.ps.Particles()) != 1 {
					t.Fatalf("step %d: particle removed too early", i+1)
				}
			}

			h.ps.Step(dt)
			if got := len(h.ps.Particles()); got != 0 {
				t.Errorf("active after %d steps: got %d, want 0", tt.steps, got)
			}
			if got := h.ps.Pool().Len(); got != poolBefore+1 {
				t.Errorf("pool size: got %d, want %d", got, poolBefore+1)
			}
			if got := len(h.surface.Circles()); got != 0 {
				t.Errorf("retired particle was rendered (%d circles)", got)
			}
		})
	}
}

// TestRetiredRecordIsReused 测试回收的记录被下一次生成复用
func TestRetiredRecordIsReused(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SpawnTrail(0, 0)
	first := h.ps.Particles()[0]
	h.ps.Step(1)

	h.ps.SpawnTrail(10, 10)
	if got := h.ps.Particles()[0]; got != first {
		t.Error("new particle should reuse the retired record")
	}
	if h.ps.Pool().Allocated() != 1 {
		t.Errorf("allocated: got %d, want 1", h.ps.Pool().Allocated())
	}
	if first.X != 10 || first.Life != 0.5 {
		t.Errorf("reused record not reinitialised: %+v", *first)
	}
}

// TestLifeInvariant 测试活跃粒子始终满足 0 < life <= maxLife
func TestLifeInvariant(t *testing.T) {
	cfg := config.DefaultEffectConfig()
	cfg.Burst.Cooldown = 0.05
	h := newTestHarness(t, cfg)
	h.ps.Start()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 600; i++ {
		if rng.Intn(10) == 0 {
			h.ps.SpawnBurst(rng.Float64()*800, rng.Float64()*600)
		}
		h.ps.SpawnTrail(rng.Float64()*800, rng.Float64()*600)
		h.frame(rng.Float64() * 0.05)

		for _, p := range h.ps.Particles() {
			if p.Life <= 0 || p.Life > p.MaxLife {
				t.Fatalf("frame %d: invariant broken, life=%v maxLife=%v", i, p.Life, p.MaxLife)
			}
		}
	}

	stats := h.ps.Stats()
	if stats.Active+stats.Pooled != stats.Allocated {
		t.Errorf("records leaked: active %d + pooled %d != allocated %d",
			stats.Active, stats.Pooled, stats.Allocated)
	}
}

// TestVelocityIsPerUpdateDisplacement 测试位移不乘以 delta
func TestVelocityIsPerUpdateDisplacement(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SpawnTrail(0, 0)
	p := h.ps.Particles()[0]
	p.VX, p.VY = 2, -1

	h.ps.Step(0.001)
	h.ps.Step(0.2)

	if p.X != 4 || p.Y != -2 {
		t.Errorf("position after two updates: got (%v,%v), want (4,-2)", p.X, p.Y)
	}
}

// TestParticleRendering 测试透明度 t²、半径和光晕随寿命变化
func TestParticleRendering(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SetLinksEnabled(false)
	h.ps.SpawnTrail(0, 0)
	p := h.ps.Particles()[0]
	p.VX, p.VY, p.Size = 0, 0, 4

	h.ps.Step(0.25) // t = 0.5

	circles := h.surface.Circles()
	if len(circles) != 1 {
		t.Fatalf("circles: got %d, want 1", len(circles))
	}
	c := circles[0]
	if math.Abs(c.Alpha-0.25) > 1e-9 {
		t.Errorf("alpha: got %v, want 0.25", c.Alpha)
	}
	if math.Abs(c.Radius-4*0.8) > 1e-9 {
		t.Errorf("radius: got %v, want 3.2", c.Radius)
	}
	if math.Abs(c.Glow-10) > 1e-9 {
		t.Errorf("glow: got %v, want 10", c.Glow)
	}
	if c.Color != render.HueColor(p.Hue, 1.0, 0.6) {
		t.Errorf("color: got %v, want hsl(%d,100%%,60%%)", c.Color, p.Hue)
	}
}

// TestAlphaDecreasesWithAge 测试透明度随寿命减少严格递减
func TestAlphaDecreasesWithAge(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SetLinksEnabled(false)
	h.ps.SpawnTrail(0, 0)

	prev := 2.0
	for len(h.ps.Particles()) > 0 {
		h.ps.Step(0.01)
		circles := h.surface.Circles()
		if len(circles) == 0 {
			break
		}
		alpha := circles[0].Alpha
		if alpha >= prev {
			t.Fatalf("alpha did not decrease: %v -> %v", prev, alpha)
		}
		if alpha <= 0 {
			t.Fatalf("live particle rendered with alpha %v", alpha)
		}
		prev = alpha
	}
}

// TestPaintStateResetAfterFrame 测试每帧结束后恢复透明度和光晕
func TestPaintStateResetAfterFrame(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.SpawnBurst(100, 100)
	h.ps.Step(frameDelta)

	if h.surface.Alpha() != 1 {
		t.Errorf("alpha after frame: got %v, want 1", h.surface.Alpha())
	}
	if h.surface.Glow() != 0 {
		t.Errorf("glow after frame: got %v, want 0", h.surface.Glow())
	}
	if h.surface.Commands[0].Op != render.OpClear {
		t.Errorf("first command: got %v, want clear", h.surface.Commands[0].Op)
	}
}

// TestReset 测试清空所有粒子和待完成任务
func TestReset(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.Start()
	h.ps.SpawnBurst(0, 0)

	h.ps.Reset()

	if len(h.ps.Particles()) != 0 {
		t.Errorf("active after reset: got %d, want 0", len(h.ps.Particles()))
	}
	if h.ps.Pool().Len() != 10 {
		t.Errorf("pool after reset: got %d, want 10", h.ps.Pool().Len())
	}

	// 已登记的分帧回调执行后发现没有任务，不再继续调度
	h.frame(frameDelta)
	h.frame(frameDelta)
	if len(h.ps.Particles()) != 0 {
		t.Errorf("burst kept spawning after reset: %d particles", len(h.ps.Particles()))
	}
	if h.scheduler.Pending() != 1 {
		t.Errorf("scheduler pending: got %d, want 1", h.scheduler.Pending())
	}
}

// TestSetConfigAppliesToNewBursts 测试热重载配置作用于之后的爆炸
func TestSetConfigAppliesToNewBursts(t *testing.T) {
	h := newTestHarness(t, nil)

	cfg := config.DefaultEffectConfig()
	cfg.Burst.Total = 5
	cfg.Burst.Batch = 5
	cfg.Render.Lightness = 0.5
	h.ps.SetConfig(cfg)
	h.ps.SpawnBurst(0, 0)

	if got := len(h.ps.Particles()); got != 5 {
		t.Errorf("particles: got %d, want 5", got)
	}
	if h.ps.PendingBursts() != 0 {
		t.Errorf("single-batch burst should finish immediately, pending %d", h.ps.PendingBursts())
	}
	if h.ps.Config() != cfg {
		t.Error("Config() should return the applied config")
	}
}

// TestBurstEndToEnd 端到端：60fps 下点击 (100,100)，分帧完成后正好 60 个粒子
func TestBurstEndToEnd(t *testing.T) {
	h := newTestHarness(t, nil)
	h.ps.Start()

	// 冷却为 0 时点击：第 1 批立即生成，其余 5 批在之后 5 帧生成
	if !h.ps.SpawnBurst(100, 100) {
		t.Fatal("burst rejected")
	}
	for i := 0; i < 5; i++ {
		h.frame(frameDelta)
	}

	particles := h.ps.Particles()
	if len(particles) != 60 {
		t.Fatalf("active particles: got %d, want 60", len(particles))
	}

	const speedMax = 5.0
	for i, p := range particles {
		if p.MaxLife != 1.2 {
			t.Errorf("particle %d: maxLife %v, want 1.2", i, p.MaxLife)
		}
		if math.Abs(p.X-100) > 5*speedMax || math.Abs(p.Y-100) > 5*speedMax {
			t.Errorf("particle %d at (%v,%v) too far from click", i, p.X, p.Y)
		}
	}
}

// TestStatsCounters 测试统计计数
func TestStatsCounters(t *testing.T) {
	h := newTestHarness(t, alwaysTrailConfig())
	h.ps.SpawnBurst(0, 0)
	h.ps.SpawnBurst(0, 0)
	h.ps.SpawnTrail(0, 0)

	s := h.ps.Stats()
	if s.BurstsAccepted != 1 || s.BurstsRejected != 1 {
		t.Errorf("bursts accepted/rejected: got %d/%d, want 1/1", s.BurstsAccepted, s.BurstsRejected)
	}
	if s.TrailSpawned != 1 {
		t.Errorf("TrailSpawned: got %d, want 1", s.TrailSpawned)
	}
	if s.Active != 11 {
		t.Errorf("Active: got %d, want 11", s.Active)
	}
	if s.PendingBursts != 1 {
		t.Errorf("PendingBursts: got %d, want 1", s.PendingBursts)
	}
}

// TestNewParticleSystemDefaults 测试 nil 配置和随机源使用默认值
func TestNewParticleSystemDefaults(t *testing.T) {
	ps := NewParticleSystem(nil, game.NewFrameScheduler(), game.NewManualClock(0), render.NewRecordingSurface(), nil)
	if ps.Config().Burst.Total != 60 {
		t.Errorf("default burst total: got %d, want 60", ps.Config().Burst.Total)
	}
	if !ps.TrailEnabled() || !ps.LinksEnabled() {
		t.Error("trail and links should be enabled by default")
	}
	if len(ps.Particles()) != 0 || ps.Cooldown() != 0 {
		t.Error("new system should start empty with zero cooldown")
	}
}
