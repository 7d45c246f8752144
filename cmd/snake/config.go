package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagWriteConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the settings file",
	Long: `Print the effective settings as YAML, after the settings file and the
command-line overrides are applied.

With --write, the default settings are written to the settings path
(--config, or ~/.snake/config.yaml) so they can be edited.

Examples:
  snake config
  snake config --difficulty hard
  snake config --write`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWriteConfig, "write", false, "Write the default settings file")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagWriteConfig {
		path := flagConfig
		if path == "" {
			path = config.UserConfigPath()
		}
		if _, err := os.Stat(path); err == nil {
			fail("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fail("%v", err)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	settings, path := loadSettings()
	data, err := yaml.Marshal(settings)
	if err != nil {
		fail("encoding settings: %v", err)
	}
	fmt.Printf("# saved to %s\n", path)
	os.Stdout.Write(data)
}
