package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jaimp/internal/games/jaimp/levelgen"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

var (
	flagIndex int
	flagCols  int
	flagRows  int
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Print an ASCII preview of a generated chunk",
	Long: `Generate chunks from a seed and print one of them.

The first run of 'jaimp play --seed N' walks the same chunks, so this is
a quick way to inspect a level before playing it.

Legend:
  =  solid    ^  hazard    #  goal    ~  bounce    *  shield

Examples:
  jaimp chunk --seed 7
  jaimp chunk --seed 7 --index 3 --cols 160`,
	Args: cobra.NoArgs,
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().IntVar(&flagIndex, "index", 0, "Chunk index in the level (0 = first)")
	chunkCmd.Flags().IntVar(&flagCols, "cols", 120, "Preview width in characters")
	chunkCmd.Flags().IntVar(&flagRows, "rows", 24, "Preview height in characters")
}

func runChunk(cmd *cobra.Command, _ []string) error {
	if flagIndex < 0 {
		return fmt.Errorf("index must not be negative, got %d", flagIndex)
	}
	if flagCols < 10 || flagRows < 5 {
		return fmt.Errorf("preview must be at least 10x5, got %dx%d", flagCols, flagRows)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	params := levelgen.NewParams(cfg)

	r := rand.New(rand.NewSource(flagSeed))
	var data levelgen.ChunkData
	for i := 0; i <= flagIndex; i++ {
		data = levelgen.Generate(r, params)
	}

	printChunk(cmd.OutOrStdout(), data, params, flagCols, flagRows)
	return nil
}

var kindGlyphs = map[world.PlatformKind]rune{
	world.Solid:  '=',
	world.Hazard: '^',
	world.Goal:   '#',
	world.Bounce: '~',
}

// renderChunk rasterizes the top edge of every platform and the centre of
// every power-up onto a cols x rows grid, followed by a ground ruler.
func renderChunk(data levelgen.ChunkData, p levelgen.Params, cols, rows int) []string {
	colW := p.ChunkLength / float64(cols)
	rowH := p.ViewportHeight / float64(rows)

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	put := func(col, row int, r rune) {
		if row >= 0 && row < rows && col >= 0 && col < cols {
			grid[row][col] = r
		}
	}

	for _, pl := range data.Platforms {
		row := int(pl.Y / rowH)
		from := int(pl.X / colW)
		to := max(from+1, int(math.Ceil((pl.X+pl.W)/colW)))
		for c := from; c < to; c++ {
			put(c, row, kindGlyphs[pl.Kind])
		}
	}
	for _, pu := range data.PowerUps {
		put(int((pu.X+pu.Size/2)/colW), int((pu.Y+pu.Size/2)/rowH), '*')
	}

	lines := make([]string, 0, rows+1)
	for _, row := range grid {
		lines = append(lines, strings.TrimRight(string(row), " "))
	}
	lines = append(lines, strings.Repeat("-", cols))
	return lines
}

func printChunk(w io.Writer, data levelgen.ChunkData, p levelgen.Params, cols, rows int) {
	fmt.Fprintf(w, "Chunk %d of seed %d  (length %.0f, %d platforms, %d shields)\n",
		flagIndex, flagSeed, p.ChunkLength, len(data.Platforms), len(data.PowerUps))
	fmt.Fprintf(w, "Features: %s\n\n", strings.Join(data.Features, ", "))

	for _, line := range renderChunk(data, p, cols, rows) {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-7s  %8s  %6s  %6s\n", "Kind", "X", "Y", "Width")
	for _, pl := range data.Platforms {
		fmt.Fprintf(w, "  %-7s  %8.1f  %6.1f  %6.1f\n", pl.Kind, pl.X, pl.Y, pl.W)
	}
}
