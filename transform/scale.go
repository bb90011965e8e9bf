// scale.go - Scale-Transform
//
// Dieses Modul enthaelt:
// - Scale: Skalierung auf die Zielgroesse und Konvertierung in die
//   Float-Stufe mit der konfigurierten Kanalzahl
//
// interpolations ist eine doppelpunkt-getrennte Liste aus
// nearest|linear|cubic|lanczos (case-insensitiv). Unbekannte Namen
// werden stillschweigend verworfen, eine leere Liste wird zu linear.
// Pro Apply wird eine Methode gleichverteilt zufaellig gewaehlt.
package transform

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
)

var scaleFilters = map[string]imaging.ResampleFilter{
	"nearest": imaging.NearestNeighbor,
	"linear":  imaging.Linear,
	"cubic":   imaging.CatmullRom,
	"lanczos": imaging.Lanczos,
}

// Scale bringt jedes Sample auf die exakte Zielform
type Scale[T pix.Float] struct {
	width    int
	height   int
	channels int
	filters  []imaging.ResampleFilter
}

// NewScale erstellt einen uninitialisierten Scale-Transform
func NewScale[T pix.Float]() *Scale[T] { return &Scale[T]{} }

func (s *Scale[T]) Name() string { return "scale" }

// Init parst width, height, channels und interpolations
func (s *Scale[T]) Init(cfg kvconfig.Params) error {
	var err error
	if s.width, err = cfg.RequiredInt("width"); err != nil {
		return err
	}
	if s.height, err = cfg.RequiredInt("height"); err != nil {
		return err
	}
	if s.channels, err = cfg.RequiredInt("channels"); err != nil {
		return err
	}

	if s.width <= 0 || s.height <= 0 || s.channels <= 0 ||
		int64(s.width)*int64(s.height) > int64(math.MaxInt/2)/int64(s.channels) {
		return fmt.Errorf("invalid image dimensions %dx%dx%d", s.width, s.height, s.channels)
	}
	if s.channels != 1 && s.channels != 3 {
		return fmt.Errorf("unsupported channel count %d, must be 1 or 3", s.channels)
	}

	s.filters = s.filters[:0]
	for _, token := range strings.Split(cfg.String("interpolations"), ":") {
		if f, ok := scaleFilters[strings.ToLower(strings.TrimSpace(token))]; ok {
			s.filters = append(s.filters, f)
		}
	}
	if len(s.filters) == 0 {
		s.filters = append(s.filters, imaging.Linear)
	}

	return nil
}

// Apply skaliert auf width x height und konvertiert in die Float-Stufe
func (s *Scale[T]) Apply(im *pix.Image[T], rng *rand.Rand) error {
	if im.Pix == nil {
		return errors.New("scale requires the 8-bit stage")
	}

	filter := s.filters[0]
	if len(s.filters) > 1 {
		filter = s.filters[rng.IntN(len(s.filters))]
	}

	im.SetPix(imaging.Resize(im.Pix, s.width, s.height, filter))
	return im.ToFloat(s.channels)
}
