package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

/*
Logger returns the logger of the command, writing to STDERR. Only warnings
and errors are logged unless the verbose flag is set, in which case splits
are logged too. It is built on first use, once flags have been parsed.
*/
func (rc *rootCmdConfig) Logger() *logrus.Logger {
	if rc.logger != nil {
		return rc.logger
	}
	rc.logger = logrus.New()
	rc.logger.SetOutput(os.Stderr)
	rc.logger.SetLevel(logrus.WarnLevel)
	if rc.verbose {
		rc.logger.SetLevel(logrus.DebugLevel)
	}
	return rc.logger
}

// Logf logs a progress message when the verbose flag is set
func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if !rc.verbose {
		return
	}
	rc.Logger().Infof(format, a...)
}
