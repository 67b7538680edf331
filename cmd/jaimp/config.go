package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jaimp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration JAIMP would play with, as YAML.

The search order is --config, ~/.jaimp/configs/jaimp.yaml,
./configs/jaimp.yaml and finally the built-in defaults. The output is a
complete file and can be saved as a starting point.

Examples:
  jaimp config > ~/.jaimp/configs/jaimp.yaml
  jaimp config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}
