package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/pool"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ParticleSystem is the animation engine of the fireworks overlay.
//
// It owns the active particle collection, the burst cooldown timer and the
// pending burst jobs. Each frame it advances and renders every live particle,
// then draws proximity links between nearby particles.
//
// The system processes a frame in this order:
//  1. Decrement the burst cooldown by the elapsed time
//  2. Clear the surface
//  3. Move, age, retire or render every active particle
//  4. Draw proximity links (capped per particle)
//  5. Reset the surface paint state
//
// All calls happen on the host's frame timeline; nothing here is safe for
// concurrent use.
type ParticleSystem struct {
	config    *config.EffectConfig
	pool      *pool.ParticlePool
	scheduler *game.FrameScheduler
	clock     game.Clock
	surface   game.Surface
	links     *LinkSystem
	palette   *render.Palette
	rng       *rand.Rand

	active []*components.ParticleComponent
	bursts []*components.BurstJobComponent

	cooldown  float64
	lastFrame float64
	running   bool

	// 运行时开关（用户偏好），与配置中的 Enabled 同时为 true 才生效
	trailOn bool
	linksOn bool

	// 帧回调只创建一次，避免每帧 Request 时重新分配方法值
	frameCallback     game.FrameCallback
	burstCallback     game.FrameCallback
	burstTickRequired bool

	stats Stats
}

// Stats 粒子系统统计信息
type Stats struct {
	Active         int     // 活跃粒子数
	Pooled         int     // 对象池中的空闲记录数
	Allocated      int     // 对象池新分配的记录总数
	PendingBursts  int     // 尚未完成的分帧生成任务数
	BurstsAccepted int     // 被接受的点击爆炸次数
	BurstsRejected int     // 因冷却被拒绝的点击次数
	TrailSpawned   int     // 生成的拖尾粒子总数
	LinksDrawn     int     // 上一帧绘制的连线数
	Cooldown       float64 // 当前冷却剩余时间（可能为负）
}

// NewParticleSystem creates a new ParticleSystem instance.
//
// Parameters:
//   - cfg: effect configuration (nil uses defaults)
//   - scheduler: frame scheduler driving the main loop and burst ticks
//   - clock: source of frame timestamps; its current reading becomes the
//     reference for the first frame's delta
//   - surface: drawable surface all rendering goes to
//   - rng: random source (nil seeds a new one)
func NewParticleSystem(cfg *config.EffectConfig, scheduler *game.FrameScheduler, clock game.Clock, surface game.Surface, rng *rand.Rand) *ParticleSystem {
	if cfg == nil {
		cfg = config.DefaultEffectConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	palette := render.NewPalette(cfg.Render.Saturation, cfg.Render.Lightness)
	ps := &ParticleSystem{
		config:    cfg,
		pool:      pool.NewParticlePool(cfg.Burst.Total * 2),
		scheduler: scheduler,
		clock:     clock,
		surface:   surface,
		links:     NewLinkSystem(&cfg.Link, palette),
		palette:   palette,
		rng:       rng,
		active:    make([]*components.ParticleComponent, 0, cfg.Burst.Total*2),
		trailOn:   true,
		linksOn:   true,
	}
	if clock != nil {
		ps.lastFrame = clock.Now()
	}
	ps.frameCallback = ps.Frame
	ps.burstCallback = ps.tickBursts
	return ps
}

// Start requests the first frame. Calling it again has no effect.
func (ps *ParticleSystem) Start() {
	if ps.running {
		return
	}
	ps.running = true
	ps.scheduler.Request(ps.frameCallback)
	log.Printf("[ParticleSystem] Frame loop started")
}

// Frame is the main loop callback: it derives delta from the previous frame
// timestamp, runs Step and requests the next frame.
func (ps *ParticleSystem) Frame(now float64) {
	delta := now - ps.lastFrame
	ps.lastFrame = now

	if delta < 0 {
		delta = 0
	}
	if maxDelta := ps.config.Frame.MaxDelta; maxDelta > 0 && delta > maxDelta {
		delta = maxDelta
	}

	ps.Step(delta)
	ps.scheduler.Request(ps.frameCallback)
}

// Step advances the simulation by delta seconds and renders the frame.
// It can be called directly with a synthetic delta.
func (ps *ParticleSystem) Step(delta float64) {
	if delta < 0 {
		delta = 0
	}

	ps.cooldown -= delta

	ps.surface.Clear()

	ps.updateParticles(delta)

	ps.stats.LinksDrawn = 0
	if ps.LinksEnabled() {
		ps.stats.LinksDrawn = ps.links.Draw(ps.active, ps.surface)
	}

	// 重置全局绘制状态，避免泄漏到下一帧
	ps.surface.SetAlpha(1)
	ps.surface.SetGlow(0, nil)
}

// updateParticles moves and ages every particle in collection order.
// Expired particles go back to the pool and are compacted out of the
// collection; survivors are rendered and keep their relative order.
func (ps *ParticleSystem) updateParticles(delta float64) {
	alive := ps.active[:0]
	for _, p := range ps.active {
		// 速度是每次更新的固定位移，不乘以 delta
		p.X += p.VX
		p.Y += p.VY

		p.Life -= delta
		if !p.Alive() {
			ps.pool.Release(p)
			continue
		}

		ps.drawParticle(p)
		alive = append(alive, p)
	}

	// 清掉尾部残留指针，已回收的记录只由对象池持有
	for i := len(alive); i < len(ps.active); i++ {
		ps.active[i] = nil
	}
	ps.active = alive
}

// drawParticle renders one live particle.
// Opacity follows t², the radius shrinks towards MinScale of its base size and
// the glow fades together with the opacity.
func (ps *ParticleSystem) drawParticle(p *components.ParticleComponent) {
	t := p.LifeRatio()
	clr := ps.palette.At(p.Hue)

	ps.surface.SetAlpha(utils.EaseInQuad(t))
	ps.surface.SetGlow(ps.config.Render.Glow*t, clr)
	ps.surface.FillCircle(p.X, p.Y, p.Size*utils.Lerp(ps.config.Render.MinScale, 1, t), clr)
}

// SpawnBurst handles a click at (x, y).
//
// While the cooldown is still positive the click is rejected and nothing
// changes. Otherwise the cooldown restarts and a burst job is created: its
// first batch is emitted immediately, the rest one batch per frame.
//
// Returns true when the burst was accepted.
func (ps *ParticleSystem) SpawnBurst(x, y float64) bool {
	if ps.cooldown > 0 {
		ps.stats.BurstsRejected++
		return false
	}

	ps.cooldown = ps.config.Burst.Cooldown
	ps.stats.BurstsAccepted++

	job := components.NewBurstJob(x, y, ps.config.Burst.Total, ps.config.Burst.Batch)
	ps.emitBatch(job)
	if !job.Done() {
		ps.bursts = append(ps.bursts, job)
		ps.requestBurstTick()
	}

	log.Printf("[ParticleSystem] Burst at (%.0f, %.0f), %d particles", x, y, job.Total)
	return true
}

// SpawnTrail handles a pointer move at (x, y): with probability SpawnChance
// it emits one short-lived spark. Trail spawning has no cooldown.
//
// Returns true when a particle was emitted.
func (ps *ParticleSystem) SpawnTrail(x, y float64) bool {
	if !ps.TrailEnabled() {
		return false
	}
	if ps.rng.Float64() >= ps.config.Trail.SpawnChance {
		return false
	}

	p := ps.pool.Acquire()
	entities.InitTrailParticle(p, &ps.config.Trail, x, y, ps.rng)
	ps.active = append(ps.active, p)
	ps.stats.TrailSpawned++
	return true
}

// emitBatch emits one tick's worth of particles for a burst job.
func (ps *ParticleSystem) emitBatch(job *components.BurstJobComponent) {
	n := job.NextBatch()
	for i := 0; i < n; i++ {
		p := ps.pool.Acquire()
		entities.InitBurstParticle(p, &ps.config.Burst, job.X, job.Y, ps.rng)
		ps.active = append(ps.active, p)
	}
}

// requestBurstTick schedules tickBursts for the next frame, at most once.
func (ps *ParticleSystem) requestBurstTick() {
	if ps.burstTickRequired {
		return
	}
	ps.burstTickRequired = true
	ps.scheduler.Request(ps.burstCallback)
}

// tickBursts advances every pending burst job by one batch and drops finished
// jobs. It reschedules itself only while jobs remain.
func (ps *ParticleSystem) tickBursts(float64) {
	ps.burstTickRequired = false

	pending := ps.bursts[:0]
	for _, job := range ps.bursts {
		ps.emitBatch(job)
		if !job.Done() {
			pending = append(pending, job)
		}
	}
	for i := len(pending); i < len(ps.bursts); i++ {
		ps.bursts[i] = nil
	}
	ps.bursts = pending

	if len(ps.bursts) > 0 {
		ps.requestBurstTick()
	}
}

// Reset retires every active particle to the pool and drops pending bursts.
// The cooldown is left untouched.
func (ps *ParticleSystem) Reset() {
	for i, p := range ps.active {
		ps.pool.Release(p)
		ps.active[i] = nil
	}
	ps.active = ps.active[:0]

	for i := range ps.bursts {
		ps.bursts[i] = nil
	}
	ps.bursts = ps.bursts[:0]
}

// SetConfig swaps the effect configuration (hot reload). Particles already
// alive keep the values they were created with.
func (ps *ParticleSystem) SetConfig(cfg *config.EffectConfig) {
	if cfg == nil {
		return
	}
	if cfg.Render.Saturation != ps.palette.Saturation || cfg.Render.Lightness != ps.palette.Lightness {
		ps.palette = render.NewPalette(cfg.Render.Saturation, cfg.Render.Lightness)
	}
	ps.config = cfg
	ps.links = NewLinkSystem(&cfg.Link, ps.palette)
	log.Printf("[ParticleSystem] Config applied: burst=%d/%d cooldown=%.2f link=%.0f",
		cfg.Burst.Total, cfg.Burst.Batch, cfg.Burst.Cooldown, cfg.Link.Distance)
}

// Config returns the active configuration.
func (ps *ParticleSystem) Config() *config.EffectConfig {
	return ps.config
}

// SetSurface replaces the drawable surface (e.g. after the host recreated it).
func (ps *ParticleSystem) SetSurface(surface game.Surface) {
	ps.surface = surface
}

// SetTrailEnabled toggles trail spawning at runtime.
func (ps *ParticleSystem) SetTrailEnabled(enabled bool) {
	ps.trailOn = enabled
}

// SetLinksEnabled toggles the proximity link pass at runtime.
func (ps *ParticleSystem) SetLinksEnabled(enabled bool) {
	ps.linksOn = enabled
}

// TrailEnabled reports whether trail sparks are emitted.
func (ps *ParticleSystem) TrailEnabled() bool {
	return ps.trailOn && ps.config.Trail.Enabled
}

// LinksEnabled reports whether proximity links are drawn.
func (ps *ParticleSystem) LinksEnabled() bool {
	return ps.linksOn && ps.config.Link.Enabled
}

// Particles returns the active collection. Callers must not modify it.
func (ps *ParticleSystem) Particles() []*components.ParticleComponent {
	return ps.active
}

// Pool returns the particle pool.
func (ps *ParticleSystem) Pool() *pool.ParticlePool {
	return ps.pool
}

// Cooldown returns the remaining burst cooldown (may be negative).
func (ps *ParticleSystem) Cooldown() float64 {
	return ps.cooldown
}

// PendingBursts returns the number of burst jobs still emitting.
func (ps *ParticleSystem) PendingBursts() int {
	return len(ps.bursts)
}

// Stats returns a snapshot of the system counters.
func (ps *ParticleSystem) Stats() Stats {
	s := ps.stats
	s.Active = len(ps.active)
	s.Pooled = ps.pool.Len()
	s.Allocated = ps.pool.Allocated()
	s.PendingBursts = len(ps.bursts)
	s.Cooldown = ps.cooldown
	return s
}
