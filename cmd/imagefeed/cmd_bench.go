// cmd_bench.go - Bench Command
// Hauptfunktionen: BenchHandler, runBench
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/pix"
	"github.com/7blacky7/imagefeed/reader"
)

type benchResult struct {
	samples  int
	total    time.Duration
	perBatch []time.Duration
}

// BenchHandler - Misst den Minibatch-Durchsatz eines Datensatzes
func BenchHandler(cmd *cobra.Command, args []string) error {
	cfg, err := kvconfig.Load(args[0])
	if err != nil {
		return err
	}
	mbSize, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}
	batches, err := cmd.Flags().GetInt("batches")
	if err != nil {
		return err
	}
	if batches <= 0 {
		return fmt.Errorf("invalid batch count %d", batches)
	}
	precision, err := precisionOf(cmd)
	if err != nil {
		return err
	}

	var res *benchResult
	switch precision {
	case "float32":
		res, err = runBench[float32](cfg, mbSize, batches)
	case "float64":
		res, err = runBench[float64](cfg, mbSize, batches)
	}
	if err != nil {
		return err
	}

	rate := float64(res.samples) / res.total.Seconds()
	avg := res.total / time.Duration(len(res.perBatch))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"SAMPLES", "BATCHES", "ELAPSED", "SAMPLES/SEC", "AVG BATCH", "MIN", "MAX"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.Append([]string{
		strconv.Itoa(res.samples),
		strconv.Itoa(len(res.perBatch)),
		res.total.Round(time.Millisecond).String(),
		fmt.Sprintf("%.1f", rate),
		avg.Round(time.Microsecond).String(),
		slices.Min(res.perBatch).Round(time.Microsecond).String(),
		slices.Max(res.perBatch).Round(time.Microsecond).String(),
	})
	table.Render()

	return nil
}

// runBench - Zieht Minibatches und misst die Latenz jedes Abrufs
// Laeuft der Datensatz aus, beginnt die naechste Epoche
func runBench[T pix.Float](cfg kvconfig.Params, mbSize, batches int) (*benchResult, error) {
	r := reader.New[T]()
	if err := r.Init(cfg); err != nil {
		return nil, err
	}
	defer r.Close()

	if r.NumSamples() == 0 {
		return nil, errors.New("dataset is empty")
	}
	if err := r.StartMinibatchLoop(mbSize, 0, reader.FullDataSweep); err != nil {
		return nil, err
	}

	feat := reader.NewTensorMatrix[T]()
	lab := reader.NewTensorMatrix[T]()
	dests := map[string]reader.Destination[T]{
		r.FeatureSection(): feat,
		r.LabelSection():   lab,
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))

	var res benchResult
	epoch := 0
	for len(res.perBatch) < batches {
		start := time.Now()
		if err := r.GetMinibatch(dests); err != nil {
			if errors.Is(err, io.EOF) {
				epoch++
				if err := r.StartMinibatchLoop(mbSize, epoch, reader.FullDataSweep); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		elapsed := time.Since(start)
		res.perBatch = append(res.perBatch, elapsed)
		res.total += elapsed
		res.samples += feat.Dense().Shape()[1]

		if tty {
			fmt.Printf("\rbatch %d/%d", len(res.perBatch), batches)
		}
	}
	if tty {
		fmt.Println()
	}

	return &res, nil
}

// newBenchCmd - Erstellt den bench Command
func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench CONFIG",
		Short: "Measure minibatch throughput of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  BenchHandler,
	}
	benchCmd.Flags().Int("batch", 32, "Minibatch size")
	benchCmd.Flags().Int("batches", 16, "Number of minibatches to fetch")
	return benchCmd
}
