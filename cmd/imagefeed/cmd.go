// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs, precisionOf
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/7blacky7/imagefeed/envconfig"
	"github.com/7blacky7/imagefeed/logutil"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// precisionOf - Liest das precision-Flag aus und validiert es
func precisionOf(cmd *cobra.Command) (string, error) {
	p, err := cmd.Flags().GetString("precision")
	if err != nil {
		return "", err
	}
	switch p {
	case "float32", "float64":
		return p, nil
	}
	return "", fmt.Errorf("unsupported precision %q, must be float32 or float64", p)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "imagefeed",
		Short:         "Minibatch feeder for labeled image datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
			slog.Debug("imagefeed config", "env", envconfig.Values())
		},
	}

	rootCmd.PersistentFlags().String("precision", "float32", "Element type of the packed buffers (float32 or float64)")

	inspectCmd := newInspectCmd()
	meanCmd := newMeanCmd()
	benchCmd := newBenchCmd()
	dumpCmd := newDumpCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{inspectCmd, meanCmd, benchCmd, dumpCmd} {
		appendEnvDocs(cmd, []envconfig.EnvVar{
			envVars["IMAGEFEED_DEBUG"],
			envVars["IMAGEFEED_NUM_PARALLEL"],
			envVars["IMAGEFEED_SEED"],
		})
	}

	rootCmd.AddCommand(
		inspectCmd,
		meanCmd,
		benchCmd,
		dumpCmd,
	)

	return rootCmd
}
