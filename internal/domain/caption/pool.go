package caption

import (
	"math/rand"
	"time"
)

// DefaultPool is the stock set of share captions. Content is a marketing
// decision; the pool is injectable so deployments can swap it out.
var DefaultPool = []string{
	"Just got my workshop pass! See you there 🚀",
	"Officially in. One pass, one seat, zero excuses.",
	"My workshop pass is ready — come build with us!",
	"Registered and ready. This is going to be good.",
	"Pass secured. Time to level up.",
}

// Picker selects a caption uniformly at random from a fixed pool.
// Each Pick is independent: no memory of previous selections.
type Picker struct {
	pool []string
	rng  *rand.Rand
}

// NewPicker creates a Picker over pool using rng. A nil pool falls back to
// DefaultPool; a nil rng gets a time-seeded source. Tests pass a seeded rng
// for deterministic selection.
func NewPicker(pool []string, rng *rand.Rand) *Picker {
	if len(pool) == 0 {
		pool = DefaultPool
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{pool: pool, rng: rng}
}

// Pick returns one caption chosen uniformly from the pool.
// POST: Result is always an element of the pool
func (p *Picker) Pick() string {
	return p.pool[p.rng.Intn(len(p.pool))]
}
