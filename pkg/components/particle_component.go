package components

// ParticleComponent represents a single pooled particle (粒子记录).
// It stores the runtime state for one animated point light: position, velocity,
// remaining lifetime, visual size and hue.
//
// Records are recycled through pool.ParticlePool. A reused record keeps the
// field values of its previous life, so the factory that hands it out must
// (re)initialise every field; nothing here is reset automatically.
type ParticleComponent struct {
	// Position (表面坐标, 像素)
	X float64
	Y float64

	// Velocity (每次更新的位移, 不乘以 delta)
	VX float64
	VY float64

	// Lifecycle (生命周期, 秒)
	Life    float64 // Remaining lifetime; the particle is retired once it reaches 0
	MaxLife float64 // Lifetime at creation, used to normalise Life

	// Rendering properties
	Size float64 // Base radius
	Hue  int     // Hue angle in [0, 360)
}

// LifeRatio returns the normalised remaining life t = Life / MaxLife.
// A record with a non-positive MaxLife reports 0.
func (p *ParticleComponent) LifeRatio() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// lifeEpsilon 相对 MaxLife 的剩余寿命下限。
// 多帧 delta 累计相减会留下 1e-16 量级的残差，低于该值视为寿命耗尽。
const lifeEpsilon = 1e-9

// Alive reports whether the particle still has lifetime left.
func (p *ParticleComponent) Alive() bool {
	return p.Life > p.MaxLife*lifeEpsilon
}
