// Package audio 终端版的爆炸音效
//
// 音效全部由程序合成（正弦波 + 指数衰减包络），不需要任何音频文件。
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// 单次爆炸音效参数
const (
	popDuration = 180 * time.Millisecond
	popVolume   = 0.18
	popDecay    = 6.0 // 包络衰减速度，越大越短促
	popFreqMin  = 520.0
	popFreqMax  = 880.0
)

// BurstSound 爆炸音效播放器
//
// 所有音效混入同一个 Mixer，speaker 只需 Play 一次。
// Play 可以在任意 goroutine 调用。
type BurstSound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
}

// NewBurstSound 创建音效播放器（尚未打开音频设备）
func NewBurstSound() *BurstSound {
	return &BurstSound{
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Init 打开音频设备。失败不是致命错误，调用方可以继续无声运行
func (bs *BurstSound) Init() error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if bs.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(bs.mixer)
	bs.initialized = true
	return nil
}

// Play 播放一次爆炸音效，音高在 [popFreqMin, popFreqMax) 内随机
func (bs *BurstSound) Play() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if !bs.initialized {
		return
	}

	freq := popFreqMin + bs.rng.Float64()*(popFreqMax-popFreqMin)
	pop, err := NewPop(sampleRate, freq, popDuration)
	if err != nil {
		return
	}

	speaker.Lock()
	bs.mixer.Add(pop)
	speaker.Unlock()
}

// Close 清空正在播放的音效
func (bs *BurstSound) Close() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if !bs.initialized {
		return
	}

	speaker.Lock()
	bs.mixer.Clear()
	speaker.Unlock()
	bs.initialized = false
}

// pop 指数衰减的正弦波
type pop struct {
	tone     beep.Streamer
	position int
	total    int
}

// NewPop 创建一个持续 duration 的短促音
func NewPop(sr beep.SampleRate, freq float64, duration time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return &pop{
		tone:  tone,
		total: sr.N(duration),
	}, nil
}

func (p *pop) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := p.total - p.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = p.tone.Stream(samples)
	for i := 0; i < n; i++ {
		gain := popVolume * math.Exp(-popDecay*float64(p.position)/float64(p.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		p.position++
	}
	return n, ok && n > 0
}

func (p *pop) Err() error {
	return p.tone.Err()
}
