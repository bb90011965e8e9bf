// main.go - Einstiegspunkt des imagefeed CLI
// Hauptfunktionen: main, loadEnv
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// loadEnv - Laedt vorhandene .env-Dateien in die Umgebung
func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		os.Setenv("ENV", "development")
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}
