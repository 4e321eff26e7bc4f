package chatbot

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses an index in [0, n). n is always > 0.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts an ordinary function to a Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// DefaultPicker draws from the runtime-seeded global source, which is safe for concurrent use.
var DefaultPicker Picker = PickerFunc(rand.IntN)

type seededPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededPicker returns a deterministic Picker. It is safe for concurrent use.
func NewSeededPicker(seed uint64) Picker {
	return &seededPicker{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *seededPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}
