package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	mlassistant "github.com/ergocortex/MLAssistant"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type predictCmdConfig struct {
	trainCmdConfig
	samples        string
	undefinedValue string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{trainCmdConfig: trainCmdConfig{inputCmdConfig: inputCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict values for samples",
		Long: `Grow a decision tree from a set of data and use it to predict the class of samples read from a CSV file,
or of a single sample whose values are asked for on STDIN when no file is given.`,
		Run: func(cmd *cobra.Command, args []string) {
			f := prepare(cmd, rootConfig, config, &config.inputCmdConfig)
			c, opts, err := config.options()
			if err != nil {
				exit(cmd, err, 1)
			}
			dt := mlassistant.NewDecisionTree(c, opts...)
			if err = dt.Train(f); err != nil {
				exit(cmd, fmt.Errorf("growing the tree: %v", err), 8)
			}
			config.Logf("%v", dt)
			if config.samples == "" {
				s := newReadSample(cmd.InOrStdin(), cmd.OutOrStdout(), f.Features(), config.undefinedValue)
				p, err := dt.Predict(s)
				if err != nil {
					exit(cmd, fmt.Errorf("making prediction: %v", err), 9)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %v\n", f.Class().Name(), p)
				return
			}
			file, err := os.Open(config.samples)
			if err != nil {
				exit(cmd, fmt.Errorf("opening samples: %v", err), 4)
			}
			defer file.Close()
			samples, err := readSamples(file, f.Features(), config.undefinedValue)
			if err != nil {
				exit(cmd, err, 4)
			}
			for i, s := range samples {
				p, err := dt.Predict(s)
				if err != nil {
					exit(cmd, fmt.Errorf("predicting sample %d: %v", i+1, err), 9)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %v\n", i+1, p)
			}
		},
	}
	config.addFlags(cmd)
	cmd.Flags().StringP("samples", "s", "", "path to a CSV file with samples to predict (defaults to asking for a single sample on STDIN)")
	cmd.Flags().StringP("undefined-value", "u", "?", "value representing an undefined feature value")
	return cmd
}

func (pcc *predictCmdConfig) load(v *viper.Viper) {
	pcc.trainCmdConfig.load(v)
	pcc.samples = v.GetString("samples")
	pcc.undefinedValue = v.GetString("undefined-value")
}

/*
readSamples reads a CSV with a header naming features and returns a sample
for every other line. Columns not naming a feature are ignored, and cells
holding the undefined value are left out of their sample.
*/
func readSamples(r io.Reader, features []feature.Feature, undefinedValue string) ([]feature.Row, error) {
	byName := make(map[string]feature.Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading samples header: %v", err)
	}
	var samples []feature.Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		row := make(feature.Row)
		for i, cell := range record {
			f, ok := byName[header[i]]
			if !ok || cell == undefinedValue || cell == "" {
				continue
			}
			v, err := feature.Parse(f, cell)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			row[f.Name()] = v
		}
		samples = append(samples, row)
	}
	return samples, nil
}
