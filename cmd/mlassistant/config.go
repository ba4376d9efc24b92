package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "MLASSISTANT"

/*
settings returns a viper instance with the flags of the given command bound
to it, so that every flag can also be set through an MLASSISTANT_ prefixed
environment variable (with dashes replaced by underscores) or a key in the
config file, in decreasing order of precedence after the command line.
*/
func (rc *rootCmdConfig) settings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if rc.configFile != "" {
		v.SetConfigFile(rc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %v", rc.configFile, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %v", err)
	}
	return v, nil
}
