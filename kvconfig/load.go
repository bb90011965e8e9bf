// load.go - Laden von Konfigurationsdateien
//
// Dieses Modul enthaelt:
// - Load: Liest eine JSON-Konfigurationsdatei in Params
package kvconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load liest eine JSON-Konfigurationsdatei
// JSON-Objekte auf oberster Ebene werden zu Unterabschnitten
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return p, nil
}
