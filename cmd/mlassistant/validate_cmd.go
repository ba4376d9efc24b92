package main

import (
	"fmt"

	mlassistant "github.com/ergocortex/MLAssistant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type validateCmdConfig struct {
	trainCmdConfig
	folds     int
	normalize bool
}

func validateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &validateCmdConfig{trainCmdConfig: trainCmdConfig{inputCmdConfig: inputCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Cross-validate decision trees on a set of data",
		Long:  `Perform a k-fold cross-validation of decision trees grown from a set of data and print the resulting confusion matrix.`,
		Run: func(cmd *cobra.Command, args []string) {
			f := prepare(cmd, rootConfig, config, &config.inputCmdConfig)
			c, opts, err := config.options()
			if err != nil {
				exit(cmd, err, 1)
			}
			config.Logf("Cross-validating with %d folds over %d samples ...", config.folds, f.RowCount())
			dt := mlassistant.NewDecisionTree(c, opts...)
			cm, err := dt.CrossValidate(f, config.folds)
			if err != nil {
				exit(cmd, fmt.Errorf("cross-validating: %v", err), 8)
			}
			if config.normalize {
				cm.Normalize(float64(config.folds))
			}
			fmt.Fprint(cmd.OutOrStdout(), cm)
		},
	}
	config.addFlags(cmd)
	cmd.Flags().IntP("folds", "k", 10, "number of folds to split the samples in")
	cmd.Flags().Bool("normalize", false, "divide the counts of the confusion matrix by the number of folds")
	return cmd
}

func (vcc *validateCmdConfig) load(v *viper.Viper) {
	vcc.trainCmdConfig.load(v)
	vcc.folds = v.GetInt("folds")
	vcc.normalize = v.GetBool("normalize")
}

func (vcc *validateCmdConfig) Validate() error {
	if err := vcc.trainCmdConfig.Validate(); err != nil {
		return err
	}
	if vcc.folds < 2 {
		return fmt.Errorf("at least 2 folds are required, got %d", vcc.folds)
	}
	return nil
}
