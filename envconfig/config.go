// config.go - Haupt-Konfigurationsfunktionen fuer imagefeed
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (IMAGEFEED_DEBUG)
// - NumParallel: Gibt Worker-Anzahl fuer Minibatch-Fan-Out zurueck (IMAGEFEED_NUM_PARALLEL)
// - Seed: Gibt Default-Seed fuer neue Reader zurueck (IMAGEFEED_SEED)
// - Var: Liest eine Environment-Variable (getrimmt, ohne Quotes)
//
// Weitere Konfigurationen sind ausgelagert:
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via IMAGEFEED_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("IMAGEFEED_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// NumParallel gibt die Worker-Anzahl fuer den Minibatch-Fan-Out zurueck
// Konfigurierbar via IMAGEFEED_NUM_PARALLEL
// Default: max(GOMAXPROCS-1, 1)
func NumParallel() int {
	if n := Uint("IMAGEFEED_NUM_PARALLEL", 0)(); n > 0 {
		return int(n)
	}
	return max(runtime.GOMAXPROCS(0)-1, 1)
}

// Seed gibt den Default-Seed fuer neue Reader zurueck
// Konfigurierbar via IMAGEFEED_SEED
// Default: 0
var Seed = Uint64("IMAGEFEED_SEED", 0)

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
