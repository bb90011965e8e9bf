// cmd_mean.go - Mean Command
// Hauptfunktionen: MeanHandler, computeMean
package main

import (
	"errors"
	"fmt"
	"maps"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/imagefeed/envconfig"
	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
	"github.com/7blacky7/imagefeed/reader"
	"github.com/7blacky7/imagefeed/transform"
)

// MeanHandler - Berechnet das Mittelwertbild des Datensatzes
func MeanHandler(cmd *cobra.Command, args []string) error {
	cfg, err := kvconfig.Load(args[0])
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	mean, err := computeMean(cfg)
	if err != nil {
		return err
	}
	if err := pix.SaveMean(out, mean); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%dx%dx%d)\n", out, mean.Cols, mean.Rows, mean.Channels)
	return nil
}

// computeMean - Mittelt alle Samples nach Crop und Scale
func computeMean(cfg kvconfig.Params) (*pix.Image[float64], error) {
	_, featSect, err := kvconfig.FindSection(cfg, "width")
	if err != nil {
		return nil, fmt.Errorf("feature section: %w", err)
	}

	// Ein bereits konfigurierter Mittelwert darf nicht in die
	// Berechnung einfliessen
	feat := maps.Clone(featSect)
	delete(feat, "meanFile")

	pipe := transform.NewPipeline[float64](transform.NewPool(envconfig.Seed()))
	if err := pipe.Init(feat); err != nil {
		return nil, err
	}
	width := feat.Int("width")
	height := feat.Int("height")
	channels := feat.Int("channels")
	dim := width * height * channels

	mapPath, err := cfg.RequiredString("file")
	if err != nil {
		return nil, err
	}
	samples, err := reader.LoadManifest(mapPath)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("manifest is empty")
	}

	// Jeder Worker summiert einen zusammenhaengenden Abschnitt
	workers := envconfig.NumParallel()
	chunk := (len(samples) + workers - 1) / workers
	partials := make([][]float64, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for w := range workers {
		start := min(w*chunk, len(samples))
		end := min(start+chunk, len(samples))
		if start == end {
			continue
		}

		g.Go(func() error {
			sum := make([]float64, dim)
			for _, s := range samples[start:end] {
				im, err := pix.DecodeFile[float64](s.Path)
				if err != nil {
					return err
				}
				if err := pipe.Run(im); err != nil {
					return fmt.Errorf("sample %s: %w", s.Path, err)
				}
				if im.Elements() != dim {
					return fmt.Errorf("sample %s: %d elements after transforms, want %d", s.Path, im.Elements(), dim)
				}
				for i, v := range im.Data {
					sum[i] += v
				}
			}
			partials[w] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mean := make([]float64, dim)
	for _, part := range partials {
		for i, v := range part {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(samples))
	}

	return &pix.Image[float64]{Data: mean, Rows: height, Cols: width, Channels: channels}, nil
}

// newMeanCmd - Erstellt den mean Command
func newMeanCmd() *cobra.Command {
	meanCmd := &cobra.Command{
		Use:   "mean CONFIG",
		Short: "Compute the dataset mean image and write the mean store",
		Args:  cobra.ExactArgs(1),
		RunE:  MeanHandler,
	}
	meanCmd.Flags().StringP("out", "o", "mean.json", "Output path for the mean store")
	return meanCmd
}
