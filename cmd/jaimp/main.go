// jaimp is an endless side-scrolling platformer for the terminal.
//
// Usage:
//
//	jaimp play [mode]        - Play a mode (default: jaimp)
//	jaimp menu               - Pick a mode interactively
//	jaimp list               - List available modes
//	jaimp scores [mode]      - Show the best runs of a mode
//	jaimp chunk              - Print an ASCII preview of a generated chunk
//	jaimp config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for a reproducible first level
//	--db <path>           - Set database path (default: ~/.jaimp/runs.db)
//	--config <path>       - Load configuration from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination (default: ~/.jaimp/jaimp.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/games/jaimp"
	"github.com/vovakirdan/jaimp/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jaimp",
	Short: "JAIMP - an endless platformer in your terminal",
	Long: `JAIMP is an endless side-scrolling platformer. Run right across
procedurally generated chunks, double-jump, bounce and collect shields
while fireballs fly in from the right.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  list     - Show all modes
  scores   - View the best runs
  chunk    - Preview a generated chunk
  config   - Print the effective configuration

Examples:
  jaimp play
  jaimp play jaimp_rush --difficulty hard
  jaimp chunk --seed 7 --index 2
  jaimp scores --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.jaimp/jaimp.log", "Log file path")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration and applies the difficulty preset.
func loadConfig() (config.JaimpConfig, string, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.JaimpConfig{}, "", err
	}
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.JaimpConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, source, nil
}

// openLogger opens the log file. The returned function closes it.
// The TUI owns the terminal, so nothing is logged to stdout or stderr.
func openLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse log level: %w", err)
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "jaimp",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// runtimeConfig builds the platform config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens run history. Failure is a warning: the game works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history disabled", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// defaultMode is played when no mode is named.
const defaultMode = jaimp.ModeClassic
