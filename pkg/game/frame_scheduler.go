package game

// FrameCallback 帧回调，参数为本帧的时钟时间戳（秒）
type FrameCallback func(now float64)

// FrameScheduler 帧调度器（对应浏览器的 requestAnimationFrame）
//
// Request 登记的回调会在下一次 RunFrame 时执行一次。回调在执行过程中再次
// Request 的回调不会在同一帧执行，而是排到下一帧；主循环和分帧生成任务
// 都依赖这一点来实现"每帧一次"的推进。
//
// 所有调用都发生在同一条时间线上（宿主的帧循环），不需要加锁。
type FrameScheduler struct {
	queue   []FrameCallback
	running []FrameCallback
	frames  uint64
}

// NewFrameScheduler 创建帧调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		queue:   make([]FrameCallback, 0, 4),
		running: make([]FrameCallback, 0, 4),
	}
}

// Request 登记一个在下一帧执行的回调
func (fs *FrameScheduler) Request(cb FrameCallback) {
	if cb == nil {
		return
	}
	fs.queue = append(fs.queue, cb)
}

// RunFrame 执行本帧之前登记的所有回调（按登记顺序），返回执行数量
func (fs *FrameScheduler) RunFrame(now float64) int {
	fs.frames++

	// 交换队列：回调中新登记的回调进入新的 queue，留到下一帧
	fs.running, fs.queue = fs.queue, fs.running[:0]
	for i, cb := range fs.running {
		fs.running[i] = nil
		cb(now)
	}
	n := len(fs.running)
	fs.running = fs.running[:0]
	return n
}

// Pending 返回等待下一帧执行的回调数量
func (fs *FrameScheduler) Pending() int {
	return len(fs.queue)
}

// Frames 返回已执行的帧数
func (fs *FrameScheduler) Frames() uint64 {
	return fs.frames
}
