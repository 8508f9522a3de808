package entities

import (
	"math"
	"math/rand"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
)

// InitBurstParticle initialises a pooled record as one particle of a click burst.
//
// Every field is written: the record may carry stale values from its previous
// life. The particle starts at (x, y) and flies in a uniformly random direction
// with a speed in [SpeedMin, SpeedMax).
//
// Parameters:
//   - p: record obtained from the particle pool
//   - cfg: burst configuration (life, speed and size ranges)
//   - x, y: click position in surface coordinates
//   - rng: random source
func InitBurstParticle(p *components.ParticleComponent, cfg *config.BurstConfig, x, y float64, rng *rand.Rand) {
	angle := rng.Float64() * math.Pi * 2
	speed := randomInRange(rng, cfg.SpeedMin, cfg.SpeedMax)

	p.X = x
	p.Y = y
	p.VX = math.Cos(angle) * speed
	p.VY = math.Sin(angle) * speed
	p.Life = cfg.Life
	p.MaxLife = cfg.Life
	p.Size = randomInRange(rng, cfg.SizeMin, cfg.SizeMax)
	p.Hue = RandomHue(rng)
}

// InitTrailParticle initialises a pooled record as a pointer trail spark.
// Velocity on each axis is uniform in [-Spread, Spread].
func InitTrailParticle(p *components.ParticleComponent, cfg *config.TrailConfig, x, y float64, rng *rand.Rand) {
	p.X = x
	p.Y = y
	p.VX = (rng.Float64() - 0.5) * 2 * cfg.Spread
	p.VY = (rng.Float64() - 0.5) * 2 * cfg.Spread
	p.Life = cfg.Life
	p.MaxLife = cfg.Life
	p.Size = randomInRange(rng, cfg.SizeMin, cfg.SizeMax)
	p.Hue = RandomHue(rng)
}

// RandomHue returns a uniformly random integer hue in [0, 360).
func RandomHue(rng *rand.Rand) int {
	return rng.Intn(360)
}

// randomInRange returns a uniform value in [min, max).
func randomInRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
