// crop.go - Crop-Transform
//
// Dieses Modul enthaelt:
// - Crop: quadratischer Ausschnitt (zentriert oder zufaellig) mit
//   optionalem Ratio-Jitter und horizontalem Spiegeln
//
// cropRatio hat die Form "min[:max]" mit 0 < min <= max <= 1. Die
// Jitter-Arten unilength/uniarea werden beim Parsen akzeptiert, sind
// aber nicht implementiert und schlagen erst bei Apply fehl.
package transform

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
)

// ErrJitterNotImplemented wird von Apply fuer geparste, aber nicht
// implementierte Jitter-Arten zurueckgegeben
var ErrJitterNotImplemented = errors.New("jitter type not implemented")

type cropKind int

const (
	cropCenter cropKind = iota
	cropRandom
)

type jitterKind int

const (
	jitterNone jitterKind = iota
	jitterUniRatio
	jitterUniLength
	jitterUniArea
)

func (k jitterKind) String() string {
	switch k {
	case jitterNone:
		return "none"
	case jitterUniRatio:
		return "uniratio"
	case jitterUniLength:
		return "unilength"
	case jitterUniArea:
		return "uniarea"
	}
	return "unknown"
}

// Crop schneidet pro Sample einen quadratischen Bereich aus
type Crop[T pix.Float] struct {
	kind     cropKind
	ratioMin float64
	ratioMax float64
	jitter   jitterKind
	hflip    bool
}

// NewCrop erstellt einen uninitialisierten Crop-Transform
func NewCrop[T pix.Float]() *Crop[T] { return &Crop[T]{} }

func (c *Crop[T]) Name() string { return "crop" }

// Init parst cropType, cropRatio, jitterType und hflip
// hflip ist per Default genau dann an, wenn cropType random ist
func (c *Crop[T]) Init(cfg kvconfig.Params) error {
	var err error
	if c.kind, err = parseCropKind(cfg.String("cropType")); err != nil {
		return err
	}

	if c.ratioMin, c.ratioMax, err = parseRatio(ratioToken(cfg)); err != nil {
		return err
	}

	if c.jitter, err = parseJitterKind(cfg.String("jitterType")); err != nil {
		return err
	}

	if cfg.Has("hflip") {
		c.hflip = cfg.Int("hflip") != 0
	} else {
		c.hflip = c.kind == cropRandom
	}

	return nil
}

// Apply schneidet einen quadratischen Bereich aus der 8-Bit-Stufe
// Ziehreihenfolge pro Aufruf: Ratio, xOff, yOff, Spiegel-Muenzwurf
func (c *Crop[T]) Apply(im *pix.Image[T], rng *rand.Rand) error {
	if im.Pix == nil {
		return errors.New("crop requires the 8-bit stage")
	}

	ratio := c.ratioMin
	switch c.jitter {
	case jitterNone:
	case jitterUniRatio:
		ratio = c.ratioMin + rng.Float64()*(c.ratioMax-c.ratioMin)
	default:
		return fmt.Errorf("%w: %s", ErrJitterNotImplemented, c.jitter)
	}

	rows, cols := im.Rows, im.Cols
	cropSize := int(float64(min(rows, cols)) * ratio)

	var xOff, yOff int
	switch c.kind {
	case cropCenter:
		xOff = (cols - cropSize) / 2
		yOff = (rows - cropSize) / 2
	case cropRandom:
		xOff = rng.IntN(cols - cropSize + 1)
		yOff = rng.IntN(rows - cropSize + 1)
	}

	out := imaging.Crop(im.Pix, image.Rect(xOff, yOff, xOff+cropSize, yOff+cropSize))
	if c.hflip && rng.IntN(2) == 1 {
		out = imaging.FlipH(out)
	}

	im.SetPix(out)
	return nil
}

func parseCropKind(src string) (cropKind, error) {
	switch strings.ToLower(src) {
	case "", "center":
		return cropCenter, nil
	case "random":
		return cropRandom, nil
	}
	return 0, fmt.Errorf("invalid crop type %q", src)
}

func parseJitterKind(src string) (jitterKind, error) {
	switch strings.ToLower(src) {
	case "", "none":
		return jitterNone, nil
	case "uniratio":
		return jitterUniRatio, nil
	case "unilength":
		return jitterUniLength, nil
	case "uniarea":
		return jitterUniArea, nil
	}
	return 0, fmt.Errorf("invalid jitter type %q", src)
}

// ratioToken liest cropRatio als String, akzeptiert aber auch
// numerische Werte aus JSON-Konfigurationen
func ratioToken(cfg kvconfig.Params) string {
	if !cfg.Has("cropRatio") {
		return "1"
	}
	if s := cfg.String("cropRatio"); s != "" {
		return s
	}
	return strconv.FormatFloat(cfg.Float("cropRatio", 1), 'f', -1, 64)
}

func parseRatio(token string) (minRatio, maxRatio float64, err error) {
	minStr, maxStr, ok := strings.Cut(token, ":")

	if minRatio, err = strconv.ParseFloat(minStr, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid cropRatio %q: %w", token, err)
	}
	maxRatio = minRatio
	if ok {
		if maxRatio, err = strconv.ParseFloat(maxStr, 64); err != nil {
			return 0, 0, fmt.Errorf("invalid cropRatio %q: %w", token, err)
		}
	}

	if !(0 < minRatio && minRatio <= 1) || !(0 < maxRatio && maxRatio <= 1) || minRatio > maxRatio {
		return 0, 0, fmt.Errorf("invalid cropRatio %q: values must be > 0 and <= 1, min <= max", token)
	}

	return minRatio, maxRatio, nil
}
