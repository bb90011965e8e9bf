// cmd_inspect.go - Inspect Command
// Hauptfunktionen: InspectHandler
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/7blacky7/imagefeed/kvconfig"
	"github.com/7blacky7/imagefeed/reader"
)

// InspectHandler - Prueft Konfiguration und Datensatz und zeigt eine Uebersicht
func InspectHandler(cmd *cobra.Command, args []string) error {
	cfg, err := kvconfig.Load(args[0])
	if err != nil {
		return err
	}

	// Init prueft Abschnitte, Transform-Parameter, Manifest und Labels
	r := reader.New[float32]()
	if err := r.Init(cfg); err != nil {
		return err
	}
	defer r.Close()

	mapPath, err := cfg.RequiredString("file")
	if err != nil {
		return err
	}
	samples, err := reader.LoadManifest(mapPath)
	if err != nil {
		return err
	}

	classes := make(map[int]int)
	for _, s := range samples {
		classes[s.Label]++
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"SECTION", "KIND", "DIM"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk([][]string{
		{r.FeatureSection(), "features", strconv.Itoa(r.FeatureDim())},
		{r.LabelSection(), "labels", strconv.Itoa(r.LabelDim())},
	})
	table.Render()

	fmt.Println()

	var data [][]string
	for _, class := range slices.Sorted(maps.Keys(classes)) {
		data = append(data, []string{strconv.Itoa(class), strconv.Itoa(classes[class])})
	}

	table = tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"CLASS", "SAMPLES"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	fmt.Printf("\n%d samples in %d classes\n", len(samples), len(classes))
	return nil
}

// newInspectCmd - Erstellt den inspect Command
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CONFIG",
		Short: "Validate a dataset configuration and show a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  InspectHandler,
	}
}
