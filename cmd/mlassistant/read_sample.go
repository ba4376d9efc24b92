package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ergocortex/MLAssistant/feature"
)

/*
readSample is a sample whose values are asked for and read from a reader
line by line the first time a tree needs them.

A line with the undefined value marks the feature as not defined, which
stops the prediction at the node that needed it. Lines that cannot be parsed
as a valid value of the feature are rejected and another one is read. Running
out of lines leaves the feature undefined too.
*/
type readSample struct {
	obtainedValues map[string]feature.Value
	undefinedValue string
	scanner        *bufio.Scanner
	out            io.Writer
	features       map[string]feature.Feature
}

func newReadSample(r io.Reader, out io.Writer, features []feature.Feature, undefinedValue string) *readSample {
	byName := make(map[string]feature.Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	return &readSample{make(map[string]feature.Value), undefinedValue, bufio.NewScanner(r), out, byName}
}

func (rs *readSample) ValueFor(attribute string) (feature.Value, bool) {
	if v, ok := rs.obtainedValues[attribute]; ok {
		return v, v != nil
	}
	f, ok := rs.features[attribute]
	if !ok {
		return nil, false
	}
	rs.requestValueFor(f)
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if line == rs.undefinedValue {
			break
		}
		v, err := feature.Parse(f, line)
		if err == nil {
			rs.obtainedValues[attribute] = v
			return v, true
		}
		fmt.Fprintf(rs.out, "Invalid value %q: %v\n", line, err)
		rs.requestValueFor(f)
	}
	rs.obtainedValues[attribute] = nil
	return nil, false
}

func (rs *readSample) requestValueFor(f feature.Feature) {
	var hint string
	if df, ok := f.(*feature.DiscreteFeature); ok && len(df.AvailableValues()) > 0 {
		values := make([]string, 0, len(df.AvailableValues()))
		for _, v := range df.AvailableValues() {
			values = append(values, v.String())
		}
		hint = fmt.Sprintf(" (one of %s)", strings.Join(values, ", "))
	}
	fmt.Fprintf(rs.out, "Value for %s%s? (enter %q if undefined) ", f.Name(), hint, rs.undefinedValue)
}
