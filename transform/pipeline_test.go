// pipeline_test.go - Tests fuer die Transform-Kette
package transform

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/7blacky7/imagefeed/kvconfig"
)

func TestPipelineRun(t *testing.T) {
	p := NewPipeline[float32](NewPool(1))
	if err := p.Init(kvconfig.Params{"width": 2, "height": 2, "channels": 3}); err != nil {
		t.Fatal(err)
	}

	im := uniformImage[float32](4, 4, color.NRGBA{30, 60, 90, 255})
	if err := p.Run(im); err != nil {
		t.Fatal(err)
	}

	if im.Cols != 2 || im.Rows != 2 || im.Channels != 3 {
		t.Fatalf("Ergebnis %dx%dx%d, erwartet 2x2x3", im.Cols, im.Rows, im.Channels)
	}
	want := []float32{30, 60, 90}
	for i, v := range im.Data {
		if v != want[i%3] {
			t.Fatalf("Data[%d] = %v, erwartet %v", i, v, want[i%3])
		}
	}
}

// TestPipelineMeanAfterScale prueft die Reihenfolge: der Mittelwert passt
// nur auf die Zielgroesse nach dem Skalieren, nicht auf das Eingabebild
func TestPipelineMeanAfterScale(t *testing.T) {
	path := writeMeanStore(t, 3, 2, 2, 5)

	p := NewPipeline[float32](NewPool(1))
	cfg := kvconfig.Params{"width": 2, "height": 2, "channels": 3, "meanFile": path}
	if err := p.Init(cfg); err != nil {
		t.Fatal(err)
	}

	im := uniformImage[float32](4, 4, color.NRGBA{30, 60, 90, 255})
	if err := p.Run(im); err != nil {
		t.Fatal(err)
	}

	want := []float32{25, 55, 85}
	for i, v := range im.Data {
		if v != want[i%3] {
			t.Fatalf("Data[%d] = %v, erwartet %v", i, v, want[i%3])
		}
	}
}

func TestPipelineInitError(t *testing.T) {
	p := NewPipeline[float32](NewPool(1))
	err := p.Init(kvconfig.Params{"width": 2, "height": 2, "channels": 3, "cropType": "spiral"})
	if err == nil {
		t.Fatal("erwartet Fehler fuer unbekannten cropType")
	}
	if !strings.HasPrefix(err.Error(), "crop:") {
		t.Errorf("Fehler %q traegt keinen crop-Praefix", err)
	}
}

func TestPipelineJitterFailsAtRun(t *testing.T) {
	p := NewPipeline[float32](NewPool(1))
	cfg := kvconfig.Params{"width": 2, "height": 2, "channels": 3, "jitterType": "unilength"}
	if err := p.Init(cfg); err != nil {
		t.Fatalf("Init() error = %v, Jitter darf erst bei Run fehlschlagen", err)
	}

	im := uniformImage[float32](4, 4, color.NRGBA{30, 60, 90, 255})
	err := p.Run(im)
	if !errors.Is(err, ErrJitterNotImplemented) {
		t.Errorf("Run() error = %v, want ErrJitterNotImplemented", err)
	}
}

func TestPipelineReleasesGeneratorOnError(t *testing.T) {
	pool := NewPool(1)
	p := NewPipeline[float32](pool)
	cfg := kvconfig.Params{"width": 2, "height": 2, "channels": 3, "jitterType": "uniarea"}
	if err := p.Init(cfg); err != nil {
		t.Fatal(err)
	}

	im := uniformImage[float32](4, 4, color.NRGBA{30, 60, 90, 255})
	if err := p.Run(im); err == nil {
		t.Fatal("erwartet Fehler")
	}

	if len(pool.free) != 1 {
		t.Errorf("len(pool.free) = %d, Generator nach Fehler nicht zurueckgegeben", len(pool.free))
	}
}
