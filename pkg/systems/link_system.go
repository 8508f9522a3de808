package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
)

// LinkSystem draws proximity links ("arcs") between nearby particles.
//
// For each particle i it scans only the particles after it and stops once
// MaxPerParticle links start at i. Work is therefore bounded per particle and
// not every pair in range gets a link.
type LinkSystem struct {
	Config  *config.LinkConfig
	palette *render.Palette
}

// NewLinkSystem creates a link pass using the given palette for hue colours.
func NewLinkSystem(cfg *config.LinkConfig, palette *render.Palette) *LinkSystem {
	return &LinkSystem{
		Config:  cfg,
		palette: palette,
	}
}

// Draw renders links between particles closer than Distance and returns how
// many segments were drawn. Each segment takes the hue of its first endpoint.
func (ls *LinkSystem) Draw(particles []*components.ParticleComponent, surface game.Surface) int {
	maxLinks := ls.Config.MaxPerParticle
	if maxLinks <= 0 || len(particles) < 2 {
		return 0
	}

	limit := ls.Config.Distance * ls.Config.Distance
	drawn := 0

	for i, p1 := range particles {
		links := 0
		for _, p2 := range particles[i+1:] {
			if links >= maxLinks {
				break
			}

			dx := p1.X - p2.X
			dy := p1.Y - p2.Y
			if dx*dx+dy*dy >= limit {
				continue
			}

			clr := ls.palette.At(p1.Hue)
			surface.SetAlpha(ls.Config.Alpha)
			surface.SetGlow(ls.Config.Glow, clr)
			surface.StrokeLine(p1.X, p1.Y, p2.X, p2.Y, ls.Config.Width, clr)

			links++
			drawn++
		}
	}

	return drawn
}
