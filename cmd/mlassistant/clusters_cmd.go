package main

import (
	"fmt"
	"strings"

	mlassistant "github.com/ergocortex/MLAssistant"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func clustersCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{inputCmdConfig: inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Print the class distribution of a set of data",
		Long:  `Grow a probability tree from a set of data and print the probability of every value of the class feature together with the leaves leading to it.`,
		Run: func(cmd *cobra.Command, args []string) {
			f := prepare(cmd, rootConfig, config, &config.inputCmdConfig)
			c, opts, err := config.options()
			if err != nil {
				exit(cmd, err, 1)
			}
			pt := mlassistant.NewProbabilityTree(c, opts...)
			if err = pt.Train(f); err != nil {
				exit(cmd, fmt.Errorf("growing the tree: %v", err), 8)
			}
			clusters, err := pt.Clusters()
			if err != nil {
				exit(cmd, fmt.Errorf("computing clusters: %v", err), 8)
			}
			fmt.Fprintln(cmd.OutOrStdout(), clustersTable(f.Class().Name(), clusters))
		},
	}
	config.addFlags(cmd)
	return cmd
}

func clustersTable(class string, clusters []tree.ProbabilityCluster) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{class, "probability", "leaves"})
	var total float64
	for _, c := range clusters {
		leaves := make([]string, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			leaves = append(leaves, fmt.Sprintf("%d", id))
		}
		w.AppendRow(table.Row{c.Value, fmt.Sprintf("%.4f", c.Probability), strings.Join(leaves, ",")})
		total += c.Probability
	}
	w.AppendFooter(table.Row{"total", fmt.Sprintf("%.4f", total), ""})
	return w.Render()
}
