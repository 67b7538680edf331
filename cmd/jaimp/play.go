package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jaimp/internal/audio"
	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/platform/tui"
	"github.com/vovakirdan/jaimp/internal/registry"
	"github.com/vovakirdan/jaimp/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: jaimp).

Controls:
  A/Left, D/Right  - Move
  Space/W/Up       - Jump (twice in the air; a third jump spends a shield)
  S/Down           - Crouch
  P/Esc            - Pause
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Any key starts a run on the title screen and restarts after game over.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  jaimp play
  jaimp play jaimp_rush
  jaimp play --seed 42 --mute
  jaimp play --config ./my-jaimp.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := defaultMode
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'jaimp list' to see available modes)", mode)
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("config loaded", "source", source)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return playMode(mode, cfg, runtimeConfig(), store, logger)
}

// playMode runs one mode until the player quits and drains the audio pool.
func playMode(mode string, cfg config.JaimpConfig, rt core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	sound := audio.New(cfg.Audio, logger)
	defer shutdownAudio(sound, logger)

	game, err := registry.Create(mode, registry.Env{
		Config: &cfg,
		Audio:  sound,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return tui.Run(game, rt, tui.Options{
		Store:    store,
		Logger:   logger,
		Viewport: cfg.Viewport,
		Input:    cfg.Input,
	})
}

func shutdownAudio(sound *audio.Service, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), sound.ShutdownTimeout())
	defer cancel()
	if err := sound.Shutdown(ctx); err != nil {
		logger.Warn("audio shutdown", "err", err)
	}
	logger.Debug("audio stopped", "played", sound.Played(), "dropped", sound.Dropped())
}
