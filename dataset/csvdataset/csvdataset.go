/*
Package csvdataset reads dataset.Frames from CSV streams.
*/
package csvdataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
)

/*
Read takes an io.Reader for a CSV stream, a slice of features and the name of
the class feature and returns a dataset.Frame with the rows parsed from the
reader, the class column last, or an error.

The header or first row of the CSV content is expected to name the columns.
Columns not matching any of the given features are skipped, and every feature
must have a column.
*/
func Read(reader io.Reader, features []feature.Feature, class string) (*dataset.Frame, error) {
	b, err := dataset.NewBuilder(features, class)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	err = checkHeader(header, b.Features())
	if err != nil {
		return nil, err
	}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		raw := make(map[string]interface{}, len(header))
		for i, name := range header {
			raw[name] = record[i]
		}
		if err = b.Add(raw); err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
	}
	return b.Frame()
}

/*
ReadFile takes a filepath string, a slice of features and the name of the
class feature, opens the file and uses Read to return the frame in it. An
empty filepath reads from STDIN.
*/
func ReadFile(filepath string, features []feature.Feature, class string) (*dataset.Frame, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening CSV file: %v", err)
		}
		defer f.Close()
	}
	frame, err := Read(f, features, class)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return frame, err
}

func checkHeader(header []string, features []feature.Feature) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, f := range features {
		if !present[f.Name()] {
			return fmt.Errorf("parsing header: no column for feature %s", f.Name())
		}
	}
	return nil
}
