// mean_test.go - Tests fuer den Mean-Image-Store
package pix

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMeanRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mean.json")
	want := &Image[float32]{
		Data:     []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Rows:     2,
		Cols:     2,
		Channels: 3,
	}

	if err := SaveMean(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := LoadMean[float32](path)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mean mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMeanDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mean.json")
	im := &Image[float32]{
		Data:     []float32{1, 2, 3, 4, 5, 6},
		Rows:     1,
		Cols:     2,
		Channels: 3,
	}
	if err := SaveMean(path, im); err != nil {
		t.Fatal(err)
	}

	// Deklarierte Dimensionen passen nicht zur Elementzahl
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var store map[string]any
	if err := json.Unmarshal(data, &store); err != nil {
		t.Fatal(err)
	}
	store["Row"] = 7
	data, err = json.Marshal(store)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMean[float32](path); !errors.Is(err, ErrInvalidMean) {
		t.Errorf("erwartet ErrInvalidMean, got %v", err)
	}
}

func TestLoadMeanBadBase64(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mean.json")
	if err := os.WriteFile(path, []byte(`{"MeanImg":"!!!","Channel":1,"Row":1,"Col":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMean[float64](path); !errors.Is(err, ErrInvalidMean) {
		t.Errorf("erwartet ErrInvalidMean, got %v", err)
	}
}

func TestLoadMeanMissingFile(t *testing.T) {
	if _, err := LoadMean[float32](filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("erwartet Fehler bei fehlender Datei")
	}
}

func TestSaveMeanNotFloat(t *testing.T) {
	im := &Image[float32]{Rows: 2, Cols: 2, Channels: 3}
	if err := SaveMean(filepath.Join(t.TempDir(), "mean.json"), im); !errors.Is(err, ErrInvalidMean) {
		t.Errorf("erwartet ErrInvalidMean, got %v", err)
	}
}
