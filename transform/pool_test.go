// pool_test.go - Tests fuer den Generator-Pool
package transform

import (
	"math/rand/v2"
	"sync"
	"testing"
)

func TestPoolReuse(t *testing.T) {
	p := NewPool(7)

	g1 := p.Acquire()
	p.Release(g1)
	g2 := p.Acquire()

	if g1 != g2 {
		t.Error("erwartet Wiederverwendung des freigegebenen Generators")
	}
}

func TestPoolDistinctWhileHeld(t *testing.T) {
	p := NewPool(7)

	g1 := p.Acquire()
	g2 := p.Acquire()

	if g1 == g2 {
		t.Error("gleichzeitig gehaltene Generatoren muessen verschieden sein")
	}
}

func TestPoolSeedsNewGenerators(t *testing.T) {
	p := NewPool(11)

	g := p.Acquire()
	want := rand.New(rand.NewPCG(11, 11))

	for i := 0; i < 4; i++ {
		if got, exp := g.Uint64(), want.Uint64(); got != exp {
			t.Fatalf("Draw %d: got %d, want %d", i, got, exp)
		}
	}
}

func TestPoolSetSeedAffectsOnlyNew(t *testing.T) {
	p := NewPool(1)

	// Gepoolter Generator behaelt seinen Zustand ueber SetSeed hinweg
	g1 := p.Acquire()
	g1.Uint64()
	p.Release(g1)

	p.SetSeed(2)

	g2 := p.Acquire()
	if g2 != g1 {
		t.Fatal("erwartet den gepoolten Generator")
	}
	ref := rand.New(rand.NewPCG(1, 1))
	ref.Uint64()
	if got, want := g2.Uint64(), ref.Uint64(); got != want {
		t.Errorf("pooled generator: got %d, want continuation %d", got, want)
	}

	// Neu erstellte Generatoren verwenden den neuen Seed
	g3 := p.Acquire()
	want := rand.New(rand.NewPCG(2, 2))
	if got, exp := g3.Uint64(), want.Uint64(); got != exp {
		t.Errorf("new generator: got %d, want %d", got, exp)
	}
}

func TestPoolConcurrent(t *testing.T) {
	p := NewPool(3)

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range 100 {
				g := p.Acquire()
				g.Uint64()
				p.Release(g)
			}
		}()
	}
	wg.Wait()

	if len(p.free) > workers {
		t.Errorf("Pool ist auf %d Generatoren gewachsen, erwartet <= %d", len(p.free), workers)
	}
}
