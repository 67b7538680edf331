package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/jaimp/internal/games/jaimp/levelgen"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

func TestRenderChunk(t *testing.T) {
	p := levelgen.Params{ViewportHeight: 550, ChunkLength: 3600}
	data := levelgen.ChunkData{
		Platforms: []world.Platform{
			{X: 100, Y: 400, W: 250, H: 20, Kind: world.Solid},
			{X: 1000, Y: 525, W: 90, H: 20, Kind: world.Hazard},
		},
		PowerUps: []world.PowerUp{world.NewPowerUp(200, 300, 25, world.Shield)},
	}

	lines := renderChunk(data, p, 36, 11)
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}

	tests := []struct {
		row  int
		want string
	}{
		{6, "  *"},
		{8, " ==="},
		{10, "          ^"},
		{11, strings.Repeat("-", 36)},
	}
	for _, tt := range tests {
		if lines[tt.row] != tt.want {
			t.Errorf("row %d = %q, want %q", tt.row, lines[tt.row], tt.want)
		}
	}
	for _, row := range []int{0, 5, 7, 9} {
		if lines[row] != "" {
			t.Errorf("row %d = %q, want empty", row, lines[row])
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, want := expandHome("~/.jaimp/jaimp.log"), filepath.Join(home, ".jaimp", "jaimp.log"); got != want {
		t.Errorf("expandHome() = %q, want %q", got, want)
	}
	if got := expandHome("/tmp/x.log"); got != "/tmp/x.log" {
		t.Errorf("expandHome() changed an absolute path: %q", got)
	}
}
