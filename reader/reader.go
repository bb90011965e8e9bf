// Package reader - Minibatch-Reader fuer Bilddatensaetze
//
// Dieses Modul enthaelt:
// - Reader: Epochen- und Minibatch-Zustandsmaschine
// - EndKind/DataEnd: Abfragen des Datenendes
// - FullDataSweep: Sentinel fuer Epochen ueber den ganzen Datensatz
//
// Die Begleitdateien:
// - manifest.go: Einlesen der Sample-Liste
// - destination.go: Ziel-Matrizen fuer die gepackten Puffer
package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/imagefeed/envconfig"
	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/logutil"
	"github.com/7blacky7/imagefeed/pix"
	"github.com/7blacky7/imagefeed/transform"
)

// FullDataSweep fordert Epochen ueber den gesamten Datensatz an
// Die Epochengroesse muss dann kein Vielfaches der Minibatch-Groesse sein
const FullDataSweep = math.MaxInt

// EndKind waehlt die Abfrageart fuer DataEnd
type EndKind int

const (
	// EndOfEpoch fragt ab, ob die laufende Epoche noch Samples liefert
	EndOfEpoch EndKind = iota + 1
	// EndOfDataset fragt ab, ob der Datensatz vollstaendig gelesen ist
	EndOfDataset
	// EndOfSequence ist fuer Bilddaten immer wahr, jedes Sample steht allein
	EndOfSequence
)

// ErrClosed zeigt einen Zugriff auf einen geschlossenen Reader an
var ErrClosed = errors.New("reader is closed")

// Reader liefert Minibatches aus einem Bild-Manifest
//
// Samples durchlaufen die Transform-Kette parallel und landen in zwei
// spaltenweise gepackten Puffern: Features (featureDim x n) und
// One-Hot-Labels (labelDim x n)
//
// StartMinibatchLoop und GetMinibatch duerfen nicht gleichzeitig auf
// demselben Reader laufen
type Reader[T pix.Float] struct {
	// Decode laedt und dekodiert ein Sample-Bild
	// Default: pix.DecodeFile
	Decode func(path string) (*pix.Image[T], error)

	pipeline *transform.Pipeline[T]
	pool     *transform.Pool
	rng      *rand.Rand

	manifest []Sample
	shuffle  bool

	featName string
	labName  string
	featDim  int
	labelDim int

	mbSize     int
	epochSize  int
	epochStart int
	mbStart    int

	featBuf []T
	labBuf  []T

	closed bool
}

// New erstellt einen Reader, Seed kommt aus IMAGEFEED_SEED
func New[T pix.Float]() *Reader[T] {
	seed := envconfig.Seed()
	pool := transform.NewPool(seed)
	return &Reader[T]{
		Decode:   pix.DecodeFile[T],
		pipeline: transform.NewPipeline[T](pool),
		pool:     pool,
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}
}

// Init liest Abschnitte, Transform-Konfiguration und Manifest ein
//
// Der Feature-Abschnitt ist der erste Unterabschnitt (in sortierter
// Schluessel-Reihenfolge) mit einem width-Parameter, der Label-Abschnitt
// der erste mit labelDim. Die Transform-Kette wird aus dem
// Feature-Abschnitt initialisiert, das Manifest kommt aus dem
// Top-Level-Parameter file
func (r *Reader[T]) Init(cfg kvconfig.Params) error {
	if r.closed {
		return ErrClosed
	}

	featName, feat, err := kvconfig.FindSection(cfg, "width")
	if err != nil {
		return fmt.Errorf("feature section: %w", err)
	}
	labName, lab, err := kvconfig.FindSection(cfg, "labelDim")
	if err != nil {
		return fmt.Errorf("label section: %w", err)
	}

	if err := r.pipeline.Init(feat); err != nil {
		return fmt.Errorf("section %q: %w", featName, err)
	}

	labelDim, err := lab.RequiredInt("labelDim")
	if err != nil {
		return fmt.Errorf("section %q: %w", labName, err)
	}
	if labelDim <= 0 {
		return fmt.Errorf("section %q: labelDim %d must be positive", labName, labelDim)
	}

	mapPath, err := cfg.RequiredString("file")
	if err != nil {
		return err
	}
	manifest, err := LoadManifest(mapPath)
	if err != nil {
		return err
	}
	for i, s := range manifest {
		if s.Label < 0 || s.Label >= labelDim {
			return fmt.Errorf("manifest %s:%d: label %d outside [0, %d)", mapPath, i+1, s.Label, labelDim)
		}
	}

	switch mode := strings.ToLower(cfg.String("randomize", "auto")); mode {
	case "auto":
		r.shuffle = true
	case "none":
		r.shuffle = false
	default:
		return fmt.Errorf("unsupported randomize mode %q, must be auto or none", mode)
	}

	r.featName = featName
	r.labName = labName
	r.featDim = feat.Int("width") * feat.Int("height") * feat.Int("channels")
	r.labelDim = labelDim
	r.manifest = manifest
	r.epochStart = 0
	r.mbStart = 0

	slog.Debug("image reader configured",
		"features", r.featName, "labels", r.labName,
		"featureDim", r.featDim, "labelDim", r.labelDim,
		"samples", len(r.manifest), "shuffle", r.shuffle)
	return nil
}

// StartMinibatchLoop startet eine Epoche und legt die Puffer an
//
// requestedEpochSamples muss ein Vielfaches von mbSize sein, ausser
// FullDataSweep wird uebergeben. Liegt der Epochenbeginn hinter dem
// Datensatzende, springt der Reader auf den Anfang zurueck
func (r *Reader[T]) StartMinibatchLoop(mbSize, epoch, requestedEpochSamples int) error {
	if r.closed {
		return ErrClosed
	}
	if r.featDim == 0 {
		return errors.New("reader not initialized")
	}
	if mbSize <= 0 || epoch < 0 || requestedEpochSamples <= 0 {
		return fmt.Errorf("invalid minibatch parameters: mbSize=%d epoch=%d epochSamples=%d", mbSize, epoch, requestedEpochSamples)
	}

	if r.shuffle {
		r.rng.Shuffle(len(r.manifest), func(i, j int) {
			r.manifest[i], r.manifest[j] = r.manifest[j], r.manifest[i]
		})
	}

	epochSize := requestedEpochSamples
	if epochSize == FullDataSweep {
		epochSize = len(r.manifest)
	} else if epochSize%mbSize != 0 {
		return fmt.Errorf("epoch size %d is not a multiple of minibatch size %d", epochSize, mbSize)
	}

	r.mbSize = mbSize
	r.epochSize = epochSize
	r.epochStart = epoch * epochSize
	if r.epochStart >= len(r.manifest) {
		r.epochStart = 0
		r.mbStart = 0
	}

	r.featBuf = make([]T, r.featDim*mbSize)
	r.labBuf = make([]T, r.labelDim*mbSize)

	slog.Debug("minibatch loop started",
		"mbSize", mbSize, "epoch", epoch,
		"epochSize", r.epochSize, "epochStart", r.epochStart)
	return nil
}

// GetMinibatch fuellt die Ziel-Matrizen mit dem naechsten Minibatch
//
// dests muss Eintraege fuer beide Abschnittsnamen enthalten. Sind Epoche
// oder Datensatz erschoepft, kommt io.EOF zurueck. Jedes Sample wird
// parallel dekodiert und transformiert, jeder Fehler bricht den ganzen
// Minibatch ab
func (r *Reader[T]) GetMinibatch(dests map[string]Destination[T]) error {
	if r.closed {
		return ErrClosed
	}
	feat, ok := dests[r.featName]
	if !ok {
		return fmt.Errorf("missing destination for section %q", r.featName)
	}
	lab, ok := dests[r.labName]
	if !ok {
		return fmt.Errorf("missing destination for section %q", r.labName)
	}

	if r.mbStart >= len(r.manifest) || r.mbStart >= r.epochStart+r.epochSize {
		return io.EOF
	}

	mbLim := min(r.mbStart+r.mbSize, len(r.manifest))
	n := mbLim - r.mbStart

	clear(r.labBuf)

	var g errgroup.Group
	g.SetLimit(envconfig.NumParallel())
	for i := range n {
		g.Go(func() error {
			s := r.manifest[r.mbStart+i]
			im, err := r.Decode(s.Path)
			if err != nil {
				return err
			}
			if err := r.pipeline.Run(im); err != nil {
				return fmt.Errorf("sample %s: %w", s.Path, err)
			}
			if im.Elements() != r.featDim {
				return fmt.Errorf("sample %s: %d elements after transforms, want %d", s.Path, im.Elements(), r.featDim)
			}

			copy(r.featBuf[r.featDim*i:r.featDim*(i+1)], im.Data)
			r.labBuf[r.labelDim*i+s.Label] = 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := feat.SetValues(r.featDim, n, r.featBuf[:r.featDim*n]); err != nil {
		return fmt.Errorf("feature destination: %w", err)
	}
	if err := lab.SetValues(r.labelDim, n, r.labBuf[:r.labelDim*n]); err != nil {
		return fmt.Errorf("label destination: %w", err)
	}

	r.mbStart = mbLim
	logutil.Trace("minibatch packed", "start", mbLim-n, "samples", n)
	return nil
}

// DataEnd beantwortet Datenende-Abfragen fuer den aktuellen Zustand
// Eine unbekannte Abfrageart ist ein Programmierfehler und loest Panic aus
func (r *Reader[T]) DataEnd(kind EndKind) bool {
	switch kind {
	case EndOfEpoch:
		return r.mbStart < r.epochStart+r.epochSize
	case EndOfDataset:
		return r.mbStart >= len(r.manifest)
	case EndOfSequence:
		return true
	}
	panic(fmt.Sprintf("unknown end kind %d", kind))
}

// SetRandomSeed ersetzt den gemeinsamen Seed fuer kuenftige
// Pool-Generatoren und setzt den Shuffle-Generator neu auf
// Bereits ausgeliehene oder abgelegte Generatoren behalten ihren Zustand
func (r *Reader[T]) SetRandomSeed(seed uint64) {
	r.pool.SetSeed(seed)
	r.rng = rand.New(rand.NewPCG(seed, seed))
}

// Close gibt Manifest und Puffer frei
// Close ist idempotent, alle anderen Operationen liefern danach ErrClosed
func (r *Reader[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.manifest = nil
	r.featBuf = nil
	r.labBuf = nil
	return nil
}

// FeatureSection gibt den Namen des Feature-Abschnitts zurueck
func (r *Reader[T]) FeatureSection() string { return r.featName }

// LabelSection gibt den Namen des Label-Abschnitts zurueck
func (r *Reader[T]) LabelSection() string { return r.labName }

// FeatureDim gibt die Elementzahl eines transformierten Samples zurueck
func (r *Reader[T]) FeatureDim() int { return r.featDim }

// LabelDim gibt die Anzahl der Klassen zurueck
func (r *Reader[T]) LabelDim() int { return r.labelDim }

// NumSamples gibt die Anzahl der Manifest-Eintraege zurueck
func (r *Reader[T]) NumSamples() int { return len(r.manifest) }
