// manifest_test.go - Tests fuer das Einlesen der Sample-Liste
package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, "img/a.png\t0\nimg/b mit leerzeichen.png\t3\nimg/c.png\t1\n")

	got, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []Sample{
		{Path: "img/a.png", Label: 0},
		{Path: "img/b mit leerzeichen.png", Label: 3},
		{Path: "img/c.png", Label: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Manifest weicht ab (-want +got):\n%s", diff)
	}
}

func TestLoadManifestCRLF(t *testing.T) {
	path := writeManifest(t, "a.png\t0\r\nb.png\t1\r\n")

	got, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []Sample{{Path: "a.png", Label: 0}, {Path: "b.png", Label: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Manifest weicht ab (-want +got):\n%s", diff)
	}
}

func TestLoadManifestEmpty(t *testing.T) {
	path := writeManifest(t, "")

	got, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, erwartet leere Liste", len(got))
	}
}

func TestLoadManifestFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine string
	}{
		{"missing tab", "a.png\t0\nb.png 1\n", ":2:"},
		{"non-integer label", "a.png\t0\nb.png\t1\nc.png\tdrei\n", ":3:"},
		{"empty line", "a.png\t0\n\nc.png\t1\n", ":2:"},
		{"label missing", "a.png\t\n", ":1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			_, err := LoadManifest(path)
			if err == nil {
				t.Fatal("erwartet Formatfehler")
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("Fehler %q nennt nicht die Zeile %q", err, tt.wantLine)
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("erwartet Fehler fuer fehlende Datei")
	}
}
