// Package pool 提供粒子记录的对象池
//
// 回收的粒子记录按栈顺序复用（最后释放的最先取出），避免每次生成都分配新对象。
package pool

import "github.com/gonewx/fireworks/pkg/components"

// ParticlePool is a free-list of retired particle records.
//
// Records are handed out as-is: a reused record still carries the values of
// its previous life and the caller must initialise every field it relies on.
type ParticlePool struct {
	free []*components.ParticleComponent
	// 统计：新分配次数（池为空时）
	allocated int
}

// NewParticlePool creates an empty pool with room for capacity free records.
func NewParticlePool(capacity int) *ParticlePool {
	if capacity < 0 {
		capacity = 0
	}
	return &ParticlePool{
		free: make([]*components.ParticleComponent, 0, capacity),
	}
}

// Acquire returns the most recently released record, or a fresh blank one
// when the free-list is empty. It never fails.
func (pp *ParticlePool) Acquire() *components.ParticleComponent {
	n := len(pp.free)
	if n == 0 {
		pp.allocated++
		return &components.ParticleComponent{}
	}
	p := pp.free[n-1]
	pp.free[n-1] = nil
	pp.free = pp.free[:n-1]
	return p
}

// Release puts a retired record back on the free-list. The caller must not
// use p as a live particle afterwards.
func (pp *ParticlePool) Release(p *components.ParticleComponent) {
	if p == nil {
		return
	}
	pp.free = append(pp.free, p)
}

// Len returns the number of free records.
func (pp *ParticlePool) Len() int {
	return len(pp.free)
}

// Allocated returns how many records the pool had to allocate because the
// free-list was empty.
func (pp *ParticlePool) Allocated() int {
	return pp.allocated
}
