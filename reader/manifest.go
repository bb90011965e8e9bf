// manifest.go - Einlesen der Tab-getrennten Sample-Liste
//
// Dieses Modul enthaelt:
// - Sample: Bildpfad und Klassenlabel eines Eintrags
// - LoadManifest: liest die Liste Zeile fuer Zeile ein
package reader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sample beschreibt einen Eintrag der Sample-Liste
type Sample struct {
	Path  string
	Label int
}

// LoadManifest liest die Sample-Liste: eine Zeile je Sample,
// Bildpfad und Label durch einen Tabulator getrennt
// Fehlerhafte Zeilen brechen den gesamten Ladevorgang ab
func LoadManifest(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var samples []Sample
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		imgPath, labelText, ok := strings.Cut(scanner.Text(), "\t")
		if !ok {
			return nil, fmt.Errorf("manifest %s:%d: missing tab separator", path, line)
		}

		label, err := strconv.Atoi(strings.TrimSpace(labelText))
		if err != nil {
			return nil, fmt.Errorf("manifest %s:%d: invalid label %q", path, line, labelText)
		}

		samples = append(samples, Sample{Path: imgPath, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	return samples, nil
}
