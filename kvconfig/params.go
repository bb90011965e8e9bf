// Package kvconfig - Schluessel/Wert-Parameter fuer die Reader-Konfiguration
//
// Dieses Modul enthaelt den Params-Typ und alle zugehoerigen Methoden:
// - Params: Map fuer Konfigurationsparameter mit verschachtelten Abschnitten
// - Typisierte Getter (String, Int, Float, Bool) mit optionalem Default
// - Required-Getter mit Fehler bei fehlendem Schluessel
// - Section/FindSection: Zugriff auf und Suche nach Unterabschnitten
package kvconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// ErrMissingKey zeigt einen fehlenden Pflicht-Parameter an
var ErrMissingKey = errors.New("missing required parameter")

// Params repraesentiert einen Konfigurationsabschnitt
// Unterobjekte (Abschnitte) sind selbst wieder Params
type Params map[string]any

// Has prueft ob ein Schluessel vorhanden ist
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String gibt einen String-Wert zurueck
func (p Params) String(key string, defaultValue ...string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	if p.Has(key) {
		slog.Debug("parameter has unexpected type", "key", key, "value", p[key])
	}
	return append(defaultValue, "")[0]
}

// Int gibt einen Integer-Wert zurueck
// Numerische JSON-Werte (float64) werden konvertiert
func (p Params) Int(key string, defaultValue ...int) int {
	if v, ok := intValue(p[key]); ok {
		return v
	}
	if p.Has(key) {
		slog.Debug("parameter has unexpected type", "key", key, "value", p[key])
	}
	return append(defaultValue, 0)[0]
}

// Float gibt einen float64-Wert zurueck
func (p Params) Float(key string, defaultValue ...float64) float64 {
	if v, ok := floatValue(p[key]); ok {
		return v
	}
	return append(defaultValue, 0)[0]
}

// Bool gibt einen bool-Wert zurueck
func (p Params) Bool(key string, defaultValue ...bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return append(defaultValue, false)[0]
}

// RequiredString gibt einen String-Wert zurueck oder einen Fehler
func (p Params) RequiredString(key string) (string, error) {
	v, ok := p[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return v, nil
}

// RequiredInt gibt einen Integer-Wert zurueck oder einen Fehler
func (p Params) RequiredInt(key string) (int, error) {
	v, ok := intValue(p[key])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return v, nil
}

// Section gibt einen Unterabschnitt zurueck
func (p Params) Section(key string) (Params, bool) {
	switch v := p[key].(type) {
	case Params:
		return v, true
	case map[string]any:
		return Params(v), true
	}
	return nil, false
}

// Keys gibt alle Schluessel in sortierter Reihenfolge zurueck
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// FindSection sucht den ersten Unterabschnitt (in sortierter
// Schluessel-Reihenfolge), der den angegebenen Parameter enthaelt
func FindSection(p Params, key string) (string, Params, error) {
	for _, name := range p.Keys() {
		if sect, ok := p.Section(name); ok && sect.Has(key) {
			return name, sect, nil
		}
	}
	return "", nil, fmt.Errorf("no config section with the %q parameter: %w", key, ErrMissingKey)
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
