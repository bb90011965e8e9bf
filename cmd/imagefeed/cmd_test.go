// cmd_test.go - Tests fuer das imagefeed CLI
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/imagefeed/pix"
)

// cliColors sind die einfarbigen Testbilder des CLI-Datensatzes
var cliColors = []color.NRGBA{
	{10, 20, 30, 255},
	{40, 50, 60, 255},
	{70, 80, 90, 255},
	{100, 110, 120, 255},
}

// writeCLIDataset legt vier PNGs, Manifest und JSON-Konfiguration an
func writeCLIDataset(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()

	var manifest string
	for i, c := range cliColors {
		path := filepath.Join(dir, fmt.Sprintf("%c.png", 'a'+i))
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
		manifest += fmt.Sprintf("%s\t%d\n", path, i%2)
	}
	mapPath := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(mapPath, []byte(manifest), 0o644))

	cfg := map[string]any{
		"features":  map[string]any{"width": 2, "height": 2, "channels": 3},
		"labels":    map[string]any{"labelDim": 2},
		"file":      mapPath,
		"randomize": "none",
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	cfgPath = filepath.Join(dir, "dataset.json")
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))
	return dir, cfgPath
}

func TestNewCLI(t *testing.T) {
	root := NewCLI()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"inspect", "mean", "bench", "dump"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("precision"))
}

func TestPrecisionOf(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("precision", "float32", "")

	p, err := precisionOf(cmd)
	require.NoError(t, err)
	assert.Equal(t, "float32", p)

	require.NoError(t, cmd.Flags().Set("precision", "float64"))
	p, err = precisionOf(cmd)
	require.NoError(t, err)
	assert.Equal(t, "float64", p)

	require.NoError(t, cmd.Flags().Set("precision", "int8"))
	_, err = precisionOf(cmd)
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	_, cfgPath := writeCLIDataset(t)

	root := NewCLI()
	root.SetArgs([]string{"inspect", cfgPath})
	assert.NoError(t, root.Execute())
}

func TestInspectCommandBadConfig(t *testing.T) {
	root := NewCLI()
	root.SetArgs([]string{"inspect", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, root.Execute())
}

func TestMeanCommand(t *testing.T) {
	dir, cfgPath := writeCLIDataset(t)
	outPath := filepath.Join(dir, "mean.json")

	root := NewCLI()
	root.SetArgs([]string{"mean", cfgPath, "-o", outPath})
	require.NoError(t, root.Execute())

	mean, err := pix.LoadMean[float64](outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, mean.Cols)
	assert.Equal(t, 2, mean.Rows)
	assert.Equal(t, 3, mean.Channels)

	// Mittel der vier einfarbigen Bilder: (55, 65, 75) je Pixel
	want := []float64{55, 65, 75}
	for i, v := range mean.Data {
		assert.Equal(t, want[i%3], v, "Element %d", i)
	}
}

func TestBenchCommand(t *testing.T) {
	_, cfgPath := writeCLIDataset(t)

	root := NewCLI()
	root.SetArgs([]string{"bench", cfgPath, "--batch", "2", "--batches", "3"})
	assert.NoError(t, root.Execute())
}

func TestDumpCommand(t *testing.T) {
	dir, cfgPath := writeCLIDataset(t)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	root := NewCLI()
	root.SetArgs([]string{"dump", cfgPath, "--batch", "2", "--dir", outDir, "--precision", "float64"})
	require.NoError(t, root.Execute())

	for _, name := range []string{"features.npy", "labels.npy"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), "%s ist leer", name)
	}
}
