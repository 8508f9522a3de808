// Package main provides a headless simulator for the fireworks engine.
//
// It drives the engine with a manual clock and a recording surface, feeding
// synthetic clicks and pointer moves, and prints per-frame statistics. Useful
// for checking pool behaviour and link counts without a window.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--frames <n>        Number of frames to simulate (default 180)
//	--fps <n>           Simulated frame rate (default 60)
//	--click-every <n>   Click every n frames, 0 disables clicks (default 20)
//	--moves <n>         Pointer moves per frame (default 2)
//	--seed <n>          Random seed (default 1)
//	--config <path>     Effect config file (default: built-in values)
//	--every <n>         Print stats every n frames (default 10)
//	--verbose           Enable engine logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/systems"
)

var (
	framesFlag     = flag.Int("frames", 180, "Number of frames to simulate")
	fpsFlag        = flag.Float64("fps", 60, "Simulated frame rate")
	clickEveryFlag = flag.Int("click-every", 20, "Click every n frames (0 disables clicks)")
	movesFlag      = flag.Int("moves", 2, "Pointer moves per frame")
	seedFlag       = flag.Int64("seed", 1, "Random seed")
	configFlag     = flag.String("config", "", "Effect config file")
	everyFlag      = flag.Int("every", 10, "Print stats every n frames")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// viewport 模拟的视口尺寸
const (
	viewportWidth  = 1280
	viewportHeight = 720
)

// simulation 无头模拟器状态
type simulation struct {
	clock     *game.ManualClock
	scheduler *game.FrameScheduler
	surface   *render.RecordingSurface
	particles *systems.ParticleSystem
	rng       *rand.Rand

	frameDelta float64
	clickEvery int
	moves      int

	// 指针沿椭圆移动
	angle float64

	peakActive int
	peakLinks  int
}

func newSimulation(cfg *config.EffectConfig, fps float64, clickEvery, moves int, seed int64) *simulation {
	s := &simulation{
		clock:      game.NewManualClock(0),
		scheduler:  game.NewFrameScheduler(),
		surface:    render.NewRecordingSurface(),
		rng:        rand.New(rand.NewSource(seed)),
		frameDelta: 1 / fps,
		clickEvery: clickEvery,
		moves:      moves,
	}
	s.particles = systems.NewParticleSystem(cfg, s.scheduler, s.clock, s.surface, rand.New(rand.NewSource(seed+1)))
	s.particles.Start()
	return s
}

// step 输入一帧的合成事件并推进一帧
func (s *simulation) step(frame int) {
	for i := 0; i < s.moves; i++ {
		s.angle += 0.05
		x := viewportWidth/2 + math.Cos(s.angle)*viewportWidth/3
		y := viewportHeight/2 + math.Sin(s.angle)*viewportHeight/3
		s.particles.SpawnTrail(x, y)
	}

	if s.clickEvery > 0 && frame%s.clickEvery == 0 {
		s.particles.SpawnBurst(s.rng.Float64()*viewportWidth, s.rng.Float64()*viewportHeight)
	}

	s.scheduler.RunFrame(s.clock.Advance(s.frameDelta))

	stats := s.particles.Stats()
	if stats.Active > s.peakActive {
		s.peakActive = stats.Active
	}
	if stats.LinksDrawn > s.peakLinks {
		s.peakLinks = stats.LinksDrawn
	}
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg := config.DefaultEffectConfig()
	if *configFlag != "" {
		loaded, err := config.LoadEffectConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *fpsFlag <= 0 {
		fmt.Fprintf(os.Stderr, "fps must be positive, got %v\n", *fpsFlag)
		os.Exit(1)
	}
	every := *everyFlag
	if every <= 0 {
		every = 1
	}

	sim := newSimulation(cfg, *fpsFlag, *clickEveryFlag, *movesFlag, *seedFlag)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "frame\ttime\tactive\tpooled\talloc\tpending\tcircles\tlinks\tcooldown\t")
	for frame := 0; frame < *framesFlag; frame++ {
		sim.step(frame)
		if frame%every != 0 {
			continue
		}
		st := sim.particles.Stats()
		fmt.Fprintf(w, "%d\t%.3f\t%d\t%d\t%d\t%d\t%d\t%d\t%.3f\t\n",
			frame, sim.clock.Now(), st.Active, st.Pooled, st.Allocated, st.PendingBursts,
			len(sim.surface.Circles()), st.LinksDrawn, st.Cooldown)
	}
	w.Flush()

	st := sim.particles.Stats()
	fmt.Printf("\nbursts accepted %d, rejected %d, trail sparks %d\n", st.BurstsAccepted, st.BurstsRejected, st.TrailSpawned)
	fmt.Printf("peak active %d, peak links %d, records allocated %d\n", sim.peakActive, sim.peakLinks, st.Allocated)
}
