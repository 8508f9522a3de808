package components

// BurstJobComponent tracks one staggered burst spawn (分帧生成).
//
// A burst emits Total particles at (X, Y), at most Batch of them per frame
// tick. The ParticleSystem advances the job once per scheduled tick with
// NextBatch until Done reports true, after which the job is dropped.
type BurstJobComponent struct {
	// Spawn origin (点击位置)
	X float64
	Y float64

	Created int // Particles emitted so far
	Total   int // Target particle count
	Batch   int // Particles emitted per frame tick
}

// NewBurstJob creates a burst job at (x, y).
func NewBurstJob(x, y float64, total, batch int) *BurstJobComponent {
	return &BurstJobComponent{
		X:     x,
		Y:     y,
		Total: total,
		Batch: batch,
	}
}

// NextBatch returns how many particles the current tick should emit and
// counts them as created. It never lets Created exceed Total.
func (j *BurstJobComponent) NextBatch() int {
	n := j.Batch
	if remaining := j.Remaining(); n > remaining {
		n = remaining
	}
	if n < 0 {
		n = 0
	}
	j.Created += n
	return n
}

// Remaining returns the number of particles still to be emitted.
func (j *BurstJobComponent) Remaining() int {
	if j.Created >= j.Total {
		return 0
	}
	return j.Total - j.Created
}

// Done reports whether the job has emitted all of its particles.
func (j *BurstJobComponent) Done() bool {
	return j.Created >= j.Total
}
