package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var osExit = os.Exit

func exit(cmd *cobra.Command, err error, code int) {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	osExit(code)
}
