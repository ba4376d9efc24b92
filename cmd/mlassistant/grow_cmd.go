package main

import (
	"fmt"

	mlassistant "github.com/ergocortex/MLAssistant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type growCmdConfig struct {
	trainCmdConfig
	probability bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{trainCmdConfig: trainCmdConfig{inputCmdConfig: inputCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree (or a probability tree) from a set of data to predict a certain feature and print it.`,
		Run: func(cmd *cobra.Command, args []string) {
			f := prepare(cmd, rootConfig, config, &config.inputCmdConfig)
			c, opts, err := config.options()
			if err != nil {
				exit(cmd, err, 1)
			}
			config.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", f.RowCount(), len(f.Attributes()), f.Class().Name())
			if config.probability {
				pt := mlassistant.NewProbabilityTree(c, opts...)
				if err = pt.Train(f); err != nil {
					exit(cmd, fmt.Errorf("growing the tree: %v", err), 8)
				}
				fmt.Fprint(cmd.OutOrStdout(), pt)
				return
			}
			dt := mlassistant.NewDecisionTree(c, opts...)
			if err = dt.Train(f); err != nil {
				exit(cmd, fmt.Errorf("growing the tree: %v", err), 8)
			}
			config.Logf("Done")
			fmt.Fprint(cmd.OutOrStdout(), dt)
		},
	}
	config.addFlags(cmd)
	cmd.Flags().Bool("probability", false, "grow a probability tree instead of a decision tree")
	return cmd
}

func (gcc *growCmdConfig) load(v *viper.Viper) {
	gcc.trainCmdConfig.load(v)
	gcc.probability = v.GetBool("probability")
}
