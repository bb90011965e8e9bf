// cmd_dump.go - Dump Command
// Hauptfunktionen: DumpHandler, runDump
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
	"github.com/7blacky7/imagefeed/reader"
)

// DumpHandler - Schreibt einen Minibatch als npy-Dateien
func DumpHandler(cmd *cobra.Command, args []string) error {
	cfg, err := kvconfig.Load(args[0])
	if err != nil {
		return err
	}
	mbSize, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	precision, err := precisionOf(cmd)
	if err != nil {
		return err
	}

	switch precision {
	case "float32":
		return runDump[float32](cfg, mbSize, dir)
	case "float64":
		return runDump[float64](cfg, mbSize, dir)
	}
	return nil
}

// runDump - Holt einen Minibatch und schreibt Features und Labels
func runDump[T pix.Float](cfg kvconfig.Params, mbSize int, dir string) error {
	r := reader.New[T]()
	if err := r.Init(cfg); err != nil {
		return err
	}
	defer r.Close()

	if err := r.StartMinibatchLoop(mbSize, 0, reader.FullDataSweep); err != nil {
		return err
	}

	feat := reader.NewTensorMatrix[T]()
	lab := reader.NewTensorMatrix[T]()
	dests := map[string]reader.Destination[T]{
		r.FeatureSection(): feat,
		r.LabelSection():   lab,
	}
	if err := r.GetMinibatch(dests); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("dataset is empty")
		}
		return err
	}

	for _, out := range []struct {
		name string
		m    *reader.TensorMatrix[T]
	}{
		{"features.npy", feat},
		{"labels.npy", lab},
	} {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			return err
		}
		if err := out.m.Dense().WriteNpy(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", out.name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	fmt.Printf("wrote features.npy and labels.npy (%d samples) to %s\n", feat.Dense().Shape()[1], dir)
	return nil
}

// newDumpCmd - Erstellt den dump Command
func newDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump CONFIG",
		Short: "Fetch one minibatch and write features.npy and labels.npy",
		Args:  cobra.ExactArgs(1),
		RunE:  DumpHandler,
	}
	dumpCmd.Flags().Int("batch", 16, "Minibatch size")
	dumpCmd.Flags().String("dir", ".", "Output directory")
	return dumpCmd
}
