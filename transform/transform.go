// Package transform - Transform-Kette fuer Sample-Bilder
//
// Dieses Modul enthaelt:
// - Transform: Interface fuer alle Bild-Transforms
// - Pipeline: Feste Reihenfolge Crop -> Scale -> Mean
//
// Die Implementierungen sind ausgelagert:
// - crop.go: quadratischer Ausschnitt mit Jitter und Spiegeln
// - scale.go: Skalierung auf Zielgroesse und Float-Konvertierung
// - mean.go: elementweise Mean-Subtraktion
// - pool.go: Generator-Pool fuer nebenlaeufige Apply-Aufrufe
package transform

import (
	"fmt"
	"math/rand/v2"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
)

// Transform veraendert ein dekodiertes Sample-Bild in-place
// Apply muss nebenlaeufig sicher sein, sofern jeder Aufruf seinen
// eigenen Generator erhaelt
type Transform[T pix.Float] interface {
	Name() string
	Init(cfg kvconfig.Params) error
	Apply(im *pix.Image[T], rng *rand.Rand) error
}

// Pipeline wendet die feste Transform-Reihenfolge auf jedes Sample an
type Pipeline[T pix.Float] struct {
	transforms []Transform[T]
	pool       *Pool
}

// NewPipeline erstellt die Standard-Pipeline Crop -> Scale -> Mean
// Alle Transforms teilen sich den angegebenen Generator-Pool
func NewPipeline[T pix.Float](pool *Pool) *Pipeline[T] {
	return &Pipeline[T]{
		transforms: []Transform[T]{
			NewCrop[T](),
			NewScale[T](),
			NewMean[T](),
		},
		pool: pool,
	}
}

// Init initialisiert alle Transforms aus demselben Konfigurationsabschnitt
func (p *Pipeline[T]) Init(cfg kvconfig.Params) error {
	for _, t := range p.transforms {
		if err := t.Init(cfg); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return nil
}

// Run wendet alle Transforms der Reihe nach auf das Bild an
// Der Generator wird einmal pro Sample aus dem Pool geliehen
func (p *Pipeline[T]) Run(im *pix.Image[T]) error {
	rng := p.pool.Acquire()
	defer p.pool.Release(rng)

	for _, t := range p.transforms {
		if err := t.Apply(im, rng); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return nil
}
