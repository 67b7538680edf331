package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jaimp/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start JAIMP in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab to
browse the best runs. After you quit a mode you return to the menu.

Examples:
  jaimp menu
  jaimp menu --fps 30
  jaimp menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
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

	rt := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, rt)
		if err != nil {
			return err
		}
		rt = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if err := playMode(result.GameID, cfg, rt, store, logger); err != nil {
				return err
			}
		}
	}
}
