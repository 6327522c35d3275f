package cmd

import (
	"github.com/cottand/dupe/config"
	"github.com/cottand/dupe/generate"
	"github.com/spf13/cobra"
)

var ConfigCmd = &cobra.Command{
	Use:          "config [" + config.DefaultFile + "]",
	Short:        "Generate duplicable handles listed in a config file",
	RunE:         runConfig,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var configLogLevel *int

func init() {
	configLogLevel = logLevelFlag(ConfigCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	setLogLevel(configLogLevel)

	path := config.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	targets, err := cfg.GenerateTargets()
	if err != nil {
		return err
	}
	src, err := generate.Source(cfg.Options(), targets...)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), cfg.OutputPath(), src)
}
