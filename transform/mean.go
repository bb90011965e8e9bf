// mean.go - Mean-Subtraktions-Transform
//
// Dieses Modul enthaelt:
// - Mean: elementweise Subtraktion eines Mean-Images
//
// Ohne meanFile ist der Transform ein No-Op. Passt die Form des
// Mean-Images nicht exakt zum Sample, wird die Subtraktion still
// uebersprungen; nur ein korrupter Store ist ein Ladefehler.
package transform

import (
	"errors"
	"math/rand/v2"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
)

// Mean subtrahiert ein gespeichertes Mean-Image von jedem Sample
type Mean[T pix.Float] struct {
	mean *pix.Image[T] // nil ohne meanFile
}

// NewMean erstellt einen uninitialisierten Mean-Transform
func NewMean[T pix.Float]() *Mean[T] { return &Mean[T]{} }

func (m *Mean[T]) Name() string { return "mean" }

// Init laedt das optionale Mean-Image
func (m *Mean[T]) Init(cfg kvconfig.Params) error {
	m.mean = nil

	path := cfg.String("meanFile")
	if path == "" {
		return nil
	}

	mean, err := pix.LoadMean[T](path)
	if err != nil {
		return err
	}
	m.mean = mean
	return nil
}

// Apply subtrahiert das Mean-Image elementweise von der Float-Stufe
func (m *Mean[T]) Apply(im *pix.Image[T], _ *rand.Rand) error {
	if m.mean == nil {
		return nil
	}
	if !im.IsFloat() {
		return errors.New("mean requires the float stage")
	}

	if im.Rows != m.mean.Rows || im.Cols != m.mean.Cols || im.Channels != m.mean.Channels {
		return nil
	}

	for i, v := range m.mean.Data {
		im.Data[i] -= v
	}
	return nil
}
