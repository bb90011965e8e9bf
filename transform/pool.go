// pool.go - Thread-sicherer Pool von Zufallsgeneratoren
//
// Dieses Modul enthaelt:
// - Pool: Free-List von *rand.Rand Generatoren mit gemeinsamem Seed
//
// Acquire holt einen vorhandenen Generator oder erstellt einen neuen mit
// dem aktuellen Seed. Der Pool waechst bis zur Spitzenzahl gleichzeitig
// aktiver Worker und raeumt nie auf, Generatoren sind billig zu halten.
package transform

import (
	"math/rand/v2"
	"sync"
)

// Pool ist eine thread-sichere Free-List von Zufallsgeneratoren
type Pool struct {
	mu   sync.Mutex
	seed uint64
	free []*rand.Rand
}

// NewPool erstellt einen Pool mit dem angegebenen Seed
func NewPool(seed uint64) *Pool {
	return &Pool{seed: seed}
}

// Acquire holt einen Generator aus dem Pool oder erstellt einen neuen
// mit dem aktuellen Seed
func (p *Pool) Acquire() *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		g := p.free[n-1]
		p.free = p.free[:n-1]
		return g
	}
	return rand.New(rand.NewPCG(p.seed, p.seed))
}

// Release gibt einen Generator zur Wiederverwendung zurueck
// Nicht zwingend durch denselben Worker, der ihn geholt hat
func (p *Pool) Release(g *rand.Rand) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, g)
}

// SetSeed ersetzt den Seed fuer kuenftig erstellte Generatoren
// Bereits gepoolte Generatoren behalten ihren Zustand
func (p *Pool) SetSeed(seed uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seed = seed
}
