package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logger     *logrus.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mlassistant",
		Short: "mlassistant is a tool to induce decision and probability trees",
		Long:  `A tool to grow decision and probability trees from your data, cross-validate them, and use them to make predictions`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress and splits to STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for the command flags")
	rootCmd.AddCommand(versionCmd(), growCmd(config), validateCmd(config), predictCmd(config), clustersCmd(config))
	return rootCmd
}
